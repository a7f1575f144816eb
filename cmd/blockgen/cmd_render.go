package main

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockgen/pkg/engine"
)

type renderFlags struct {
	data        string
	sample      string
	output      string
	interactive bool
}

func newRenderCmd(a *app) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render a template to MJML",
		Example: "  " + appName + " render --sample newsletter --dialect django --execute\n" +
			"  " + appName + " render email.yaml --data customer.json --mode testing",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEngineFlags(cmd, &a.cfg)

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			if flags.interactive {
				if err := runWizard(commandContext(cmd), a.driver, &a.cfg, &flags, path == ""); err != nil {
					return err
				}
			}

			tmpl, data, err := a.readTemplate(path, flags.sample)
			if err != nil {
				return err
			}
			if flags.data != "" {
				extra, err := readData(flags.data)
				if err != nil {
					return err
				}
				if data == nil {
					data = extra
				} else {
					data = maps.Clone(data)
					maps.Copy(data, extra)
				}
			}

			a.logger.Debug("resolved config", "config", describeConfig(a.cfg))
			mode, err := a.mode()
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}

			result, err := eng.Generate(commandContext(cmd), engine.Request{
				Template: tmpl,
				Data:     data,
				Mode:     mode,
				Execute:  a.cfg.Execute,
			})
			if err != nil {
				return err
			}

			a.logger.Info("rendered template",
				"source", tmpl.Source,
				"dialect", result.Dialect,
				"mode", result.Mode,
				"executed", result.Executed,
				"subject", result.Subject,
			)
			return writeOutput(cmd, flags.output, result.Markup)
		},
	}

	cmd.Flags().StringVar(&flags.data, "data", "", "JSON or YAML data file")
	cmd.Flags().StringVar(&flags.sample, "sample", "", "render a bundled sample template")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for render options")
	addEngineFlags(cmd)
	return cmd
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().String("dialect", "", "tag template dialect (liquid, django, inline)")
	cmd.Flags().String("mode", "", "render mode (production, testing)")
	cmd.Flags().Bool("execute", false, "execute django output with the data")
	cmd.Flags().String("theme", "", "theme name from the config")
	cmd.Flags().String("variant", "", "theme variant")
	cmd.Flags().String("presets", "", "JSON or YAML attribute presets file")
}

// applyEngineFlags copies explicitly set flags over the config values.
func applyEngineFlags(cmd *cobra.Command, cfg *config) {
	flags := cmd.Flags()
	str := func(name string, target *string) {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	str("dialect", &cfg.Dialect)
	str("mode", &cfg.Mode)
	str("theme", &cfg.Theme)
	str("variant", &cfg.Variant)
	str("presets", &cfg.Presets)
	if flags.Changed("execute") {
		cfg.Execute, _ = flags.GetBool("execute")
	}
}

func describeConfig(cfg config) string {
	return fmt.Sprintf("dialect=%s mode=%s execute=%t theme=%s variant=%s", cfg.Dialect, cfg.Mode, cfg.Execute, cfg.Theme, cfg.Variant)
}

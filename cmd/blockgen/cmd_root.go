package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockgen/internal/prompt"
	"github.com/goliatone/go-blockgen/pkg/document"
	"github.com/goliatone/go-blockgen/pkg/engine"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// app carries state shared by the commands of one invocation.
type app struct {
	cfg    config
	logger *slog.Logger
	driver prompt.Driver
	stdin  io.Reader

	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{driver: prompt.NewSurveyDriver(), stdin: os.Stdin})
}

func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Render block email templates to MJML",
		Long: appName + " renders block-based email templates into MJML markup.\n\n" +
			"Advanced blocks are wrapped in condition and loop tags for liquid or django,\n" +
			"or evaluated in place with the inline dialect.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigFile, "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(newRenderCmd(a), newBlocksCmd(a), newNoWrapCmd(a), newValidateCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	explicit := cmd.Flags().Changed("config")
	cfg, err := loadConfig(a.configPath, explicit)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	return nil
}

// engine builds an engine from the resolved configuration.
func (a *app) engine() (*engine.Engine, error) {
	options := []engine.Option{
		engine.WithDialect(a.cfg.Dialect),
		engine.WithLogger(a.logger),
	}
	selector, err := a.cfg.themeSelector()
	if err != nil {
		return nil, err
	}
	if selector != nil {
		options = append(options, engine.WithThemeSelector(selector, a.cfg.Theme, a.cfg.Variant))
	}
	if a.cfg.Presets != "" {
		presets, err := engine.LoadAttributePresets(os.DirFS("."), a.cfg.Presets)
		if err != nil {
			return nil, err
		}
		options = append(options, engine.WithTransformers(presets))
	}
	return engine.New(options...), nil
}

func (a *app) mode() (render.Mode, error) {
	return render.ParseMode(a.cfg.Mode)
}

// readTemplate loads a template from a path, "-" for stdin, or a bundled
// sample when sample is set. The sample's data set is returned too.
func (a *app) readTemplate(path, sample string) (document.Template, map[string]any, error) {
	if sample != "" {
		store, err := document.LoadFS(document.SamplesFS())
		if err != nil {
			return document.Template{}, nil, err
		}
		tmpl, ok := store.Template(sample)
		if !ok {
			return document.Template{}, nil, fmt.Errorf("unknown sample %q (have %v)", sample, store.Templates())
		}
		data, _ := store.Data(sample)
		return tmpl, data, nil
	}

	if path == "" {
		return document.Template{}, nil, fmt.Errorf("a template path or --sample is required")
	}
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(a.stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return document.Template{}, nil, fmt.Errorf("read template: %w", err)
	}
	tmpl, err := document.Parse(raw, path)
	return tmpl, nil, err
}

func readData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	return document.ParseData(raw, path)
}

func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", path)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

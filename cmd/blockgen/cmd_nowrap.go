package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/document"
)

func newNoWrapCmd(a *app) *cobra.Command {
	var (
		idx     string
		disable bool
		sample  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "nowrap [template]",
		Short: "Toggle the no-wrap layout of a section and print the template",
		Long: "nowrap collapses every child of the section at --idx into one group\n" +
			"(or expands that group again with --disable) and prints the updated\n" +
			"template as JSON.",
		Example: "  " + appName + " nowrap email.json --idx 'content.children.[0]'",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			tmpl, _, err := a.readTemplate(path, sample)
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}

			updated, err := eng.SetNoWrap(commandContext(cmd), tmpl.Content, idx, !disable)
			if err != nil {
				return err
			}
			tmpl.Content = updated

			raw, err := document.Marshal(tmpl)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, string(raw))
		},
	}

	cmd.Flags().StringVar(&idx, "idx", block.RootIdx+".children.[0]", "editor path of the section")
	cmd.Flags().BoolVar(&disable, "disable", false, "expand the wrapping group instead")
	cmd.Flags().StringVar(&sample, "sample", "", "use a bundled sample template")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

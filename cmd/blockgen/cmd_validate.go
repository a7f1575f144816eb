package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var sample string

	cmd := &cobra.Command{
		Use:   "validate [template]",
		Short: "Check block nesting and attributes",
		Args:  cobra.MaximumNArgs(1),
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
			if err := eng.Validate(tmpl.Content); err != nil {
				return fmt.Errorf("%s is invalid:\n%w", describeSource(tmpl.Source, sample), err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", describeSource(tmpl.Source, sample))
			return err
		},
	}
	cmd.Flags().StringVar(&sample, "sample", "", "use a bundled sample template")
	return cmd
}

func describeSource(source, sample string) string {
	if sample != "" {
		return "sample " + sample
	}
	if source == "" {
		return "template"
	}
	return source
}

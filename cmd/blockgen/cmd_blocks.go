package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockgen/pkg/block"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleAdv    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newBlocksCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List registered block types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEngineFlags(cmd, &a.cfg)
			eng, err := a.engine()
			if err != nil {
				return err
			}
			if err := eng.Err(); err != nil {
				return err
			}

			rows := blockRows(eng.Registry().Definitions())
			if plain {
				for _, row := range rows {
					fmt.Fprintln(cmd.OutOrStdout(), strings.Join(row, "\t"))
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), blocksTable(rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "tab separated output without styling")
	addEngineFlags(cmd)
	return cmd
}

func blockRows(defs []block.Definition) [][]string {
	sort.Slice(defs, func(i, j int) bool { return defs[i].Type < defs[j].Type })
	rows := make([][]string, 0, len(defs))
	for _, def := range defs {
		parents := make([]string, 0, len(def.ValidParentTypes))
		for _, parent := range def.ValidParentTypes {
			parents = append(parents, string(parent))
		}
		parentList := strings.Join(parents, ",")
		if parentList == "" {
			parentList = "-"
		}
		kind := "base"
		if def.Type.Advanced() {
			kind = "advanced"
		}
		rows = append(rows, []string{string(def.Type), def.Name, kind, parentList})
	}
	return rows
}

func blocksTable(rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers("TYPE", "NAME", "KIND", "PARENTS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if row >= 0 && row < len(rows) && rows[row][2] == "advanced" && col == 0 {
				return styleAdv
			}
			return styleCell
		}).
		String()
}

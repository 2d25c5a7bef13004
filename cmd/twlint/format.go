package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/twlint"
)

var formatCmd = &cobra.Command{
	Use:     "format",
	Aliases: []string{"fmt"},
	Short:   "Sort, group and wrap class lists in place",
	Long: `Rewrite template literal class lists into canonical form: sorted by
stylesheet order, grouped by variant and wrapped to the print width.
Only the format rule runs. With --check nothing is written and the
command fails when a class list needs formatting.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		check, _ := cmd.Flags().GetBool("check")
		return runLint(cmd, func(c *twlint.LintConfig) {
			c.Rules = twlint.RuleConfig{Format: true}
			c.Fix = !check
			c.Strict = check
		})
	},
}

func init() {
	addScanFlags(formatCmd)
	formatCmd.Flags().Bool("check", false, "Report unformatted class lists without rewriting them")
}

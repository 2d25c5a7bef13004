package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "twlint",
	Short: "Linter and formatter for utility class lists",
	Long: `Lint utility class lists in JSX/TSX sources against a compiled stylesheet.
Reports duplicate and unknown classes, and sorts, groups and wraps
template literal class lists into canonical order.`,
	// Default behavior: run lint when no subcommand is given.
	// We must call loadConfig here because PreRunE of lintCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runLint(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")
	rootCmd.PersistentFlags().StringSlice("stylesheet", nil, "Compiled CSS file(s) defining the known classes")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

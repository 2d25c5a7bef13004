package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twlint"
)

// errIssuesFound fails the run once the results have been printed
var errIssuesFound = errors.New("lint issues found")

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint class lists in JSX/TSX files",
	Long: `Check class lists in class attributes and helper calls (cn, clsx, ...).
Detects duplicate classes, classes missing from the stylesheet, and
template literal class lists that are not canonically formatted.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLint(cmd, nil)
	},
}

func init() {
	addScanFlags(lintCmd)
	f := lintCmd.Flags()
	f.StringSlice("disable", nil, "Rules to turn off: duplicates|unknown|format")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Bool("fix", false, "Rewrite unformatted class lists in place")
	f.String("output-format", "", "Output format: issues|summary|full|json|markdown")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (duplicates) suffix on issues")
	f.Int("concurrency", 0, "Files analyzed in parallel (0=number of CPUs)")
}

// addScanFlags registers the flags shared by lint and format
func addScanFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("paths", defaultPaths, "File patterns to scan for class lists")
	f.StringSlice("callees", twlint.DefaultCallees, "Functions whose string arguments are class lists")
	f.StringSlice("attributes", twlint.DefaultAttributes, "Attributes holding class lists")
	f.Int("print-width", twlint.DefaultPrintWidth, "Line width for formatted class lists")
	f.Int("extra-indentation", twlint.DefaultExtraIndentation, "Indentation added to formatted class lists")
}

// runLint is shared between `twlint`, `twlint lint` and `twlint format`.
// adjust, when set, overrides the configuration built from flags and files.
func runLint(cmd *cobra.Command, adjust func(*twlint.LintConfig)) error {
	lintConfig := buildLintConfig()
	if adjust != nil {
		adjust(&lintConfig)
	}

	lintResult, err := twlint.Lint(cmd.Context(), lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := twlint.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		twlint.WriteOutput(cmd.OutOrStdout(), lintResult, format, lintConfig)
	}

	if failed(lintResult, lintConfig) {
		return errIssuesFound
	}
	return nil
}

// failed applies the exit code policy.
//
// Default "Soft Gate": only errors fail the build. Strict mode fails on any
// issue, except formatting issues whose replacement --fix actually applied.
func failed(result *twlint.LintResult, config twlint.LintConfig) bool {
	if result.ErrorCount > 0 {
		return true
	}
	if !config.Strict {
		return false
	}
	// Skipped replacements (overlapping or out of range) still count
	return result.WarningCount-result.FixedCount > 0
}

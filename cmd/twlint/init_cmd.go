package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .twlint.yaml",
	Long:  `Create a .twlint.yaml in the current directory listing every setting with its default.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# twlint configuration

verbose: false

# Compiled stylesheet(s); their class selectors are the known classes
stylesheet:
  - dist/output.css

lint:
  paths:
    - "src/**/*.jsx"
    - "src/**/*.tsx"
    - "app/**/*.jsx"
    - "app/**/*.tsx"
  callees: [cn, cx, className, clsx, classNames]
  attributes: [className, class]
  print-width: 80
  extra-indentation: 2
  rules:
    duplicates: true
    unknown: true
    format: true
  strict: false
  fix: false
  output-format: issues    # issues | summary | full | json | markdown
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
  concurrency: 0           # 0 = number of CPUs
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}

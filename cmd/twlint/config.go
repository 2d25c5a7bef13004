package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/twlint"
)

const defaultConfigPath = ".twlint.yaml"

var k = koanf.New(".")

// defaultPaths covers the usual React source layouts
var defaultPaths = []string{
	"src/**/*.jsx",
	"src/**/*.tsx",
	"app/**/*.jsx",
	"app/**/*.tsx",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Without a koanf instance posflag
	// skips every flag the user did not set, so flag defaults never shadow
	// the file or env values.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TWLINT_* prefix)
	if err := k.Load(env.Provider("TWLINT_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to its config key.
//
//	TWLINT_VERBOSE               -> verbose
//	TWLINT_LINT_STRICT           -> lint.strict
//	TWLINT_LINT_PRINT_WIDTH      -> lint.print-width
//	TWLINT_LINT_RULES_DUPLICATES -> lint.rules.duplicates
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "TWLINT_"))
	for _, section := range []string{"lint_rules_", "lint_"} {
		if rest, ok := strings.CutPrefix(s, section); ok {
			return strings.ReplaceAll(section, "_", ".") + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(s, "_", "-")
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig() twlint.LintConfig {
	config := twlint.LintConfig{
		Paths:            getStringsWithFallback("paths", "lint.paths", defaultPaths),
		Stylesheets:      getStringsWithFallback("stylesheet", "stylesheet", nil),
		Callees:          getStringsWithFallback("callees", "lint.callees", twlint.DefaultCallees),
		Attributes:       getStringsWithFallback("attributes", "lint.attributes", twlint.DefaultAttributes),
		PrintWidth:       getIntWithFallback("print-width", "lint.print-width", twlint.DefaultPrintWidth),
		ExtraIndentation: getIntWithFallback("extra-indentation", "lint.extra-indentation", twlint.DefaultExtraIndentation),
		Rules: twlint.RuleConfig{
			Duplicates: ruleEnabled(twlint.LinterDuplicates),
			Unknown:    ruleEnabled(twlint.LinterUnknown),
			Format:     ruleEnabled(twlint.LinterFormat),
		},
		Verbose:            getBoolWithFallback("verbose", "verbose", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		Fix:                getBoolWithFallback("fix", "lint.fix", false),
		Concurrency:        getIntWithFallback("concurrency", "lint.concurrency", 0),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}

	config.Logger = newLogger(config.Verbose)
	return config
}

// ruleEnabled reads lint.rules.<name>; a rule named by --disable is always off.
func ruleEnabled(name string) bool {
	for _, rule := range getStringsWithFallback("disable", "lint.disable", nil) {
		if rule == name {
			return false
		}
	}
	key := "lint.rules." + name
	if k.Exists(key) {
		return k.Bool(key)
	}
	return true
}

// newLogger writes diagnostics to stderr, debug level only when verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback is getStringWithFallback for lists. A plain string
// value, as set by an environment variable, is split on commas.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	for _, key := range []string{flagKey, configKey} {
		if v, ok := k.Get(key).(string); ok && v != "" {
			return splitList(v)
		}
		if v := k.Strings(key); len(v) > 0 {
			return v
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

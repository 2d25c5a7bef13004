package twlint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/twlint/internal/classlist"
	"github.com/yacobolo/twlint/internal/stylesheet"
)

// Defaults for the formatting budget
const (
	DefaultPrintWidth       = 80
	DefaultExtraIndentation = 2
)

// RuleConfig toggles the individual rules
type RuleConfig struct {
	Duplicates bool
	Unknown    bool
	Format     bool
}

// AllRules enables every rule
func AllRules() RuleConfig {
	return RuleConfig{Duplicates: true, Unknown: true, Format: true}
}

// LintConfig holds linting configuration
type LintConfig struct {
	Paths       []string // Patterns to scan (e.g., "src/**/*.tsx")
	Stylesheets []string // Compiled utility CSS used to resolve classes
	Callees     []string // Helper calls whose string arguments are class lists
	Attributes  []string // JSX attributes holding class lists

	PrintWidth       int // Line budget for formatted class lists
	ExtraIndentation int // Spaces added in front of every formatted line
	Rules            RuleConfig

	Verbose     bool
	Strict      bool // Exit with code 1 if any issue is found
	Fix         bool // Rewrite files with the formatting replacements
	Concurrency int  // Files analyzed in parallel (0 = GOMAXPROCS)

	// golangci-style output configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (duplicates) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)

	Logger *slog.Logger // nil discards diagnostics
}

// Validate checks the values a user can get wrong
func (c LintConfig) Validate() error {
	if c.PrintWidth <= 0 {
		return fmt.Errorf("print-width must be positive, got %d", c.PrintWidth)
	}
	if c.ExtraIndentation < 0 {
		return fmt.Errorf("extra-indentation must not be negative, got %d", c.ExtraIndentation)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

func (c LintConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Resolvers supplies the CSS knowledge the rules need
type Resolvers struct {
	Declarations classlist.DeclarationResolver
	Ranks        classlist.RankResolver
}

// LintResult contains linting analysis results
type LintResult struct {
	// Issues in golangci-lint format
	Issues []Issue

	// Statistics
	FilesScanned   int
	FilesSkipped   int
	ClassStrings   int // Class lists found
	TokensAnalyzed int // Classes across all class lists
	KnownClasses   int // Classes defined by the stylesheets
	ErrorCount     int
	WarningCount   int
	DuplicateCount int
	UnknownCount   int
	FormatCount    int
	TruncatedCount int // Issues removed due to limits

	FixedFiles []string // Files rewritten by --fix
	FixedCount int      // Replacements applied by --fix
}

// fileResult is the analysis of a single file
type fileResult struct {
	issues       []Issue
	classStrings int
	tokens       int
}

// Lint loads the stylesheets and lints the configured paths
func Lint(ctx context.Context, config LintConfig) (*LintResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(config.Stylesheets) == 0 {
		return nil, errors.New("no stylesheet configured")
	}

	idx, err := stylesheet.Load(config.Stylesheets...)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylesheet: %w", err)
	}
	config.logger().Debug("stylesheet loaded", "files", len(config.Stylesheets), "classes", idx.Len())

	result, err := LintWith(ctx, config, Resolvers{Declarations: idx.Declarations, Ranks: idx.Ranks})
	if err != nil {
		return nil, err
	}
	result.KnownClasses = idx.Len()
	return result, nil
}

// LintWith lints the configured paths against the given resolvers
func LintWith(ctx context.Context, config LintConfig, resolvers Resolvers) (*LintResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	log := config.logger()

	files, stats, err := ExpandPaths(config.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}
	log.Debug("files discovered", "scanned", stats.FilesScanned, "skipped", stats.FilesSkipped)

	locator := NewLocator(config.Attributes, config.Callees)
	results := make([]fileResult, len(files))

	limit := config.Concurrency
	if limit == 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// #nosec G304 - path comes from the configured globs
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			issues, classStrings, tokens, err := LintSource(file, string(content), locator, config, resolvers)
			if err != nil {
				return fmt.Errorf("lint %s: %w", file, err)
			}
			results[i] = fileResult{issues: issues, classStrings: classStrings, tokens: tokens}
			log.Debug("file analyzed", "file", file, "class_strings", classStrings, "issues", len(issues))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LintResult{
		FilesScanned: stats.FilesScanned,
		FilesSkipped: stats.FilesSkipped,
	}
	for _, fr := range results {
		result.Issues = append(result.Issues, fr.issues...)
		result.ClassStrings += fr.classStrings
		result.TokensAnalyzed += fr.tokens
	}
	countIssues(result)

	if config.Fix {
		fixed, applied, err := ApplyFixes(result.Issues)
		if err != nil {
			return nil, fmt.Errorf("failed to apply fixes: %w", err)
		}
		result.FixedFiles = fixed
		result.FixedCount = applied
		log.Debug("fixes applied", "files", len(fixed), "replacements", applied)
	}

	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}

	return result, nil
}

// LintSource runs the enabled rules over every class string in content.
// It returns the issues plus the number of class strings and tokens seen.
func LintSource(file, content string, locator *Locator, config LintConfig, resolvers Resolvers) ([]Issue, int, int, error) {
	lines := newLineIndex(content)
	var issues []Issue
	tokens := 0

	found := locator.Find(file, content)
	for _, cs := range found {
		csIssues, n, err := lintClassString(cs, lines, config, resolvers)
		if err != nil {
			return nil, 0, 0, err
		}
		issues = append(issues, csIssues...)
		tokens += n
	}
	return issues, len(found), tokens, nil
}

func lintClassString(cs ClassString, lines lineIndex, config LintConfig, resolvers Resolvers) ([]Issue, int, error) {
	tokens := classlist.Tokenize(cs.Text)
	var issues []Issue

	if config.Rules.Duplicates {
		dups, err := classlist.FindDuplicates(tokens, resolvers.Declarations)
		if err != nil {
			return nil, 0, err
		}
		for _, d := range dups {
			issue := newTokenIssue(cs, lines, d.Token, classlist.Occurrence(tokens, d.Index))
			issue.FromLinter = LinterDuplicates
			issue.Severity = SeverityError
			issue.Text = fmt.Sprintf(IssueDuplicateClass, d.Token, d.First)
			issues = append(issues, issue)
		}
	}

	if config.Rules.Unknown {
		unknowns, err := classlist.FindUnknowns(tokens, resolvers.Declarations)
		if err != nil {
			return nil, 0, err
		}
		for _, u := range unknowns {
			issue := newTokenIssue(cs, lines, u.Token, classlist.Occurrence(tokens, u.Index))
			issue.FromLinter = LinterUnknown
			issue.Severity = SeverityError
			issue.Text = fmt.Sprintf(IssueUnknownClass, u.Token)
			issues = append(issues, issue)
		}
	}

	// Only template literals can hold a multi-line class list
	if config.Rules.Format && cs.IsTemplate() {
		issue, err := formatIssue(cs, lines, config, resolvers)
		if err != nil {
			return nil, 0, err
		}
		if issue != nil {
			issues = append(issues, *issue)
		}
	}

	return issues, len(tokens), nil
}

// newTokenIssue positions an issue on the n-th occurrence of token
func newTokenIssue(cs ClassString, lines lineIndex, token string, n int) Issue {
	line, column := cs.Line, cs.Column
	if lineOffset, colOffset, ok := classlist.Locate(cs.Text, token, n); ok {
		line += lineOffset
		if lineOffset == 0 {
			column += colOffset
		} else {
			column = colOffset + 1
		}
	}
	return Issue{
		SourceLines: []string{lines.text(line)},
		Pos: IssuePos{
			Filename: cs.File,
			Line:     line,
			Column:   column,
		},
	}
}

func formatIssue(cs ClassString, lines lineIndex, config LintConfig, resolvers Resolvers) (*Issue, error) {
	opts := classlist.RenderOptions{
		Indent:      cs.Indent,
		ExtraIndent: strings.Repeat(" ", config.ExtraIndentation),
		Width:       config.PrintWidth,
	}
	rendered, err := classlist.Format(cs.Text, resolvers.Ranks, opts)
	if err != nil {
		return nil, err
	}
	if rendered == cs.Text {
		return nil, nil
	}

	last := cs.Line + strings.Count(cs.Text, "\n")
	issue := &Issue{
		FromLinter:  LinterFormat,
		Text:        IssueUnformatted,
		Severity:    SeverityWarning,
		SourceLines: []string{lines.text(cs.Line)},
		Pos: IssuePos{
			Filename: cs.File,
			Line:     cs.Line,
			Column:   cs.Column,
		},
		Replacement: &Replacement{
			NewText: string(cs.Delim) + rendered + string(cs.Delim),
			Offset:  cs.Offset - 1,
			Length:  len(cs.Text) + 2,
		},
	}
	if last > cs.Line {
		issue.LineRange = &LineRange{From: cs.Line, To: last}
	}
	return issue, nil
}

func countIssues(result *LintResult) {
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
		switch issue.FromLinter {
		case LinterDuplicates:
			result.DuplicateCount++
		case LinterUnknown:
			result.UnknownCount++
		case LinterFormat:
			result.FormatCount++
		}
	}
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	// Apply max-issues-per-linter
	if config.MaxIssuesPerLinter > 0 {
		perLinter := make(map[string]int)
		var kept []Issue
		for _, issue := range issues {
			if perLinter[issue.FromLinter] < config.MaxIssuesPerLinter {
				kept = append(kept, issue)
				perLinter[issue.FromLinter]++
			}
		}
		issues = kept
	}

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	truncatedCount := originalCount - len(issues)
	return issues, truncatedCount
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}

package twlint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twlint/internal/classlist"
	"github.com/yacobolo/twlint/internal/stylesheet"
)

const testCSS = `.flex { display: flex; }
.block { display: block; }
.p-4 { padding: 1rem; }
.m-2 { margin: 0.5rem; }
.hover\:p-4:hover { padding: 1rem; }
`

func testResolvers(t *testing.T) Resolvers {
	t.Helper()
	idx, err := stylesheet.Parse(testCSS)
	require.NoError(t, err)
	return Resolvers{Declarations: idx.Declarations, Ranks: idx.Ranks}
}

func testConfig() LintConfig {
	return LintConfig{
		Callees:          DefaultCallees,
		Attributes:       DefaultAttributes,
		PrintWidth:       DefaultPrintWidth,
		ExtraIndentation: DefaultExtraIndentation,
		Rules:            AllRules(),
	}
}

func lintString(t *testing.T, content string, config LintConfig) []Issue {
	t.Helper()
	locator := NewLocator(config.Attributes, config.Callees)
	issues, _, _, err := LintSource("page.tsx", content, locator, config, testResolvers(t))
	require.NoError(t, err)
	return issues
}

func TestLintSource(t *testing.T) {
	content := "export const Page = () => (\n" +
		"  <div className=\"flex block p-44\">\n" +
		"    <span className={`\n" +
		"      p-4 flex\n" +
		"    `} />\n" +
		"  </div>\n" +
		")\n"

	config := testConfig()
	locator := NewLocator(config.Attributes, config.Callees)
	issues, classStrings, tokens, err := LintSource("page.tsx", content, locator, config, testResolvers(t))
	require.NoError(t, err)
	assert.Equal(t, 2, classStrings)
	assert.Equal(t, 5, tokens)
	require.Len(t, issues, 3)

	dup := issues[0]
	assert.Equal(t, LinterDuplicates, dup.FromLinter)
	assert.Equal(t, SeverityError, dup.Severity)
	assert.Equal(t, `duplicate class "block" conflicts with "flex"`, dup.Text)
	assert.Equal(t, IssuePos{Filename: "page.tsx", Line: 2, Column: 24}, dup.Pos)
	assert.Equal(t, []string{`  <div className="flex block p-44">`}, dup.SourceLines)

	unknown := issues[1]
	assert.Equal(t, LinterUnknown, unknown.FromLinter)
	assert.Equal(t, `unknown class "p-44"`, unknown.Text)
	assert.Equal(t, IssuePos{Filename: "page.tsx", Line: 2, Column: 30}, unknown.Pos)

	format := issues[2]
	assert.Equal(t, LinterFormat, format.FromLinter)
	assert.Equal(t, SeverityWarning, format.Severity)
	assert.Equal(t, IssuePos{Filename: "page.tsx", Line: 3, Column: 23}, format.Pos)
	assert.Equal(t, &LineRange{From: 3, To: 5}, format.LineRange)
	require.NotNil(t, format.Replacement)
	assert.Equal(t, "`flex p-4`", format.Replacement.NewText)
	assert.Equal(t, strings.Index(content, "`"), format.Replacement.Offset)
	assert.Equal(t, len("`\n      p-4 flex\n    `"), format.Replacement.Length)
}

func TestLintSourceLocatesRepeatedTokens(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantPos IssuePos
	}{
		{
			name:    "same line",
			content: `cn("p-4 m-2 p-4")`,
			wantPos: IssuePos{Filename: "page.tsx", Line: 1, Column: 13},
		},
		{
			name:    "later line",
			content: "const c = cn(`\n  p-4\n  m-2 p-4\n`)",
			wantPos: IssuePos{Filename: "page.tsx", Line: 3, Column: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := lintString(t, tt.content, testConfig())
			require.NotEmpty(t, issues)
			assert.Equal(t, LinterDuplicates, issues[0].FromLinter)
			assert.Equal(t, tt.wantPos, issues[0].Pos)
		})
	}
}

func TestLintSourceFormatting(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string // empty when no formatting issue is expected
	}{
		{
			name:    "canonical single line",
			content: "<div className={`flex p-4`} />",
		},
		{
			name:    "quoted strings are never formatted",
			content: `<div className="p-4 flex" />`,
		},
		{
			name:    "unsorted single line",
			content: "<div className={`p-4 flex`} />",
			want:    "`flex p-4`",
		},
		{
			name:    "variants split into groups",
			content: "<div className={`hover:p-4 p-4 flex`} />",
			want:    "`\n  flex p-4\n\n  hover:p-4\n`",
		},
		{
			name:    "closing delimiter follows the line indent",
			content: "\t\t<div className={`hover:p-4 flex`} />",
			want:    "`\n  \t\tflex\n\n  \t\thover:p-4\n\t\t`",
		},
		{
			name:    "canonical multi-line",
			content: "<div className={`\n  flex p-4\n\n  hover:p-4\n`} />",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := lintString(t, tt.content, testConfig())
			if tt.want == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			require.NotNil(t, issues[0].Replacement)
			assert.Equal(t, tt.want, issues[0].Replacement.NewText)
		})
	}
}

func TestLintSourceRules(t *testing.T) {
	content := "<div className={`block flex p-44`} />"

	tests := []struct {
		name    string
		rules   RuleConfig
		linters []string
	}{
		{name: "all", rules: AllRules(), linters: []string{LinterDuplicates, LinterUnknown, LinterFormat}},
		{name: "duplicates only", rules: RuleConfig{Duplicates: true}, linters: []string{LinterDuplicates}},
		{name: "unknown only", rules: RuleConfig{Unknown: true}, linters: []string{LinterUnknown}},
		{name: "format only", rules: RuleConfig{Format: true}, linters: []string{LinterFormat}},
		{name: "none", rules: RuleConfig{}, linters: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			config.Rules = tt.rules

			var linters []string
			for _, issue := range lintString(t, content, config) {
				linters = append(linters, issue.FromLinter)
			}
			assert.Equal(t, tt.linters, linters)
		})
	}
}

func TestLintSourceResolverContract(t *testing.T) {
	config := testConfig()
	resolvers := Resolvers{
		Declarations: func(tokens []string) []classlist.Declaration {
			return make([]classlist.Declaration, len(tokens)-1)
		},
	}

	locator := NewLocator(config.Attributes, config.Callees)
	_, _, _, err := LintSource("page.tsx", `<div className="flex p-4" />`, locator, config, resolvers)
	require.ErrorIs(t, err, classlist.ErrResolverContract)
}

func TestLintConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*LintConfig)
		wantErr string
	}{
		{name: "defaults", modify: func(*LintConfig) {}},
		{name: "zero width", modify: func(c *LintConfig) { c.PrintWidth = 0 }, wantErr: "print-width"},
		{name: "negative indentation", modify: func(c *LintConfig) { c.ExtraIndentation = -1 }, wantErr: "extra-indentation"},
		{name: "zero indentation", modify: func(c *LintConfig) { c.ExtraIndentation = 0 }},
		{name: "negative concurrency", modify: func(c *LintConfig) { c.Concurrency = -2 }, wantErr: "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLintEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()

	cssFile := filepath.Join(tmpDir, "output.css")
	require.NoError(t, os.WriteFile(cssFile, []byte(testCSS), 0644))

	files := map[string]string{
		"a.tsx": `export const A = () => <div className="flex block" />` + "\n",
		"b.tsx": "export const B = () => <div className={cn(`p-4 flex`, \"m-2 typo\")} />\n",
		"c.tsx": `export const C = () => <div className="flex p-4" />` + "\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644))
	}

	config := testConfig()
	config.Paths = []string{filepath.Join(tmpDir, "*.tsx")}
	config.Stylesheets = []string{cssFile}
	config.Concurrency = 2

	result, err := Lint(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesScanned)
	assert.Equal(t, 4, result.ClassStrings)
	assert.Equal(t, 8, result.TokensAnalyzed)
	assert.Equal(t, 5, result.KnownClasses)
	assert.Equal(t, 1, result.DuplicateCount)
	assert.Equal(t, 1, result.UnknownCount)
	assert.Equal(t, 1, result.FormatCount)
	assert.Equal(t, 2, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
	assert.Empty(t, result.FixedFiles)

	// Files are reported in glob order whatever the scheduling
	require.Len(t, result.Issues, 3)
	assert.Equal(t, filepath.Join(tmpDir, "a.tsx"), result.Issues[0].Pos.Filename)
	assert.Equal(t, filepath.Join(tmpDir, "b.tsx"), result.Issues[1].Pos.Filename)
	assert.Equal(t, LinterFormat, result.Issues[1].FromLinter)
	assert.Equal(t, LinterUnknown, result.Issues[2].FromLinter)
}

func TestLintFix(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "page.tsx")
	require.NoError(t, os.WriteFile(file, []byte("<div className={`hover:p-4 p-4 flex`} />\n"), 0644))

	config := testConfig()
	config.Paths = []string{filepath.Join(tmpDir, "*.tsx")}
	config.Fix = true

	result, err := LintWith(context.Background(), config, testResolvers(t))
	require.NoError(t, err)
	assert.Equal(t, []string{file}, result.FixedFiles)
	assert.Equal(t, 1, result.FixedCount)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "<div className={`\n  flex p-4\n\n  hover:p-4\n`} />\n", string(content))

	// A fixed file is a fixed point
	config.Fix = false
	result, err = LintWith(context.Background(), config, testResolvers(t))
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
}

func TestLintNestedStylesheet(t *testing.T) {
	tmpDir := t.TempDir()

	// Breakpoint and pseudo variants nested inside the class rule
	css := `@layer utilities {
  .p-4 { padding: 1rem; }
  .hover\:p-4 {
    &:hover {
      @media (hover: hover) { padding: 1rem; }
    }
  }
  .md\:p-4 {
    @media (width >= 48rem) { padding: 1rem; }
  }
}
`
	cssFile := filepath.Join(tmpDir, "tw.css")
	require.NoError(t, os.WriteFile(cssFile, []byte(css), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "page.tsx"),
		[]byte(`<div className="p-4 md:p-4 hover:p-4 md:p-4 typo" />`+"\n"), 0644))

	config := testConfig()
	config.Paths = []string{filepath.Join(tmpDir, "*.tsx")}
	config.Stylesheets = []string{cssFile}

	result, err := Lint(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, 3, result.KnownClasses)

	require.Len(t, result.Issues, 2)
	assert.Equal(t, fmt.Sprintf(IssueDuplicateClass, "md:p-4", "md:p-4"), result.Issues[0].Text)
	assert.Equal(t, 38, result.Issues[0].Pos.Column)
	assert.Equal(t, fmt.Sprintf(IssueUnknownClass, "typo"), result.Issues[1].Text)
}

func TestLintMissingStylesheet(t *testing.T) {
	config := testConfig()
	_, err := Lint(context.Background(), config)
	require.Error(t, err)

	config.Stylesheets = []string{filepath.Join(t.TempDir(), "missing.css")}
	_, err = Lint(context.Background(), config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load stylesheet")
}

func TestLimitIssues(t *testing.T) {
	issues := []Issue{
		{FromLinter: LinterUnknown, Text: `unknown class "a"`},
		{FromLinter: LinterUnknown, Text: `unknown class "a"`},
		{FromLinter: LinterUnknown, Text: `unknown class "a"`},
		{FromLinter: LinterUnknown, Text: `unknown class "b"`},
		{FromLinter: LinterFormat, Text: IssueUnformatted},
		{FromLinter: LinterFormat, Text: IssueUnformatted},
	}

	tests := []struct {
		name          string
		maxPerLinter  int
		maxSame       int
		wantCount     int
		wantTruncated int
	}{
		{name: "unlimited", wantCount: 6},
		{name: "per linter", maxPerLinter: 2, wantCount: 4, wantTruncated: 2},
		{name: "same issues", maxSame: 1, wantCount: 3, wantTruncated: 3},
		{name: "both", maxPerLinter: 3, maxSame: 2, wantCount: 4, wantTruncated: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := limitIssues(issues, LintConfig{
				MaxIssuesPerLinter: tt.maxPerLinter,
				MaxSameIssues:      tt.maxSame,
			})
			assert.Len(t, got, tt.wantCount)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}

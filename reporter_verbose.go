package twlint

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// VerboseReporter handles detailed statistics
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs detailed linting statistics
func (r *VerboseReporter) PrintStatistics(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Class List Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	fmt.Fprintf(r.w, "Files Scanned:      %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:      %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "Class Lists:        %d\n", result.ClassStrings)
	fmt.Fprintf(r.w, "Classes Analyzed:   %d\n", result.TokensAnalyzed)
	if result.KnownClasses > 0 {
		fmt.Fprintf(r.w, "Stylesheet Classes: %d\n", result.KnownClasses)
	}
}

// PrintRuleBreakdown shows how many issues each rule raised
func (r *VerboseReporter) PrintRuleBreakdown(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Rules", r.useColors))
	fmt.Fprintln(r.w, "-----")

	fmt.Fprintf(r.w, "Duplicate Classes:  %s\n", r.count(result.DuplicateCount, StyleRed))
	fmt.Fprintf(r.w, "Unknown Classes:    %s\n", r.count(result.UnknownCount, StyleRed))
	fmt.Fprintf(r.w, "Unformatted Lists:  %s\n", r.count(result.FormatCount, StyleYellow))
}

// PrintTopUnknown lists the unknown classes seen most often, likely typos
func (r *VerboseReporter) PrintTopUnknown(result LintResult) {
	freq := make(map[string]int)
	for _, issue := range result.Issues {
		if issue.FromLinter == LinterUnknown {
			freq[issue.Text]++
		}
	}
	if len(freq) == 0 {
		return
	}

	texts := make([]string, 0, len(freq))
	for text := range freq {
		texts = append(texts, text)
	}
	sort.Slice(texts, func(i, j int) bool {
		if freq[texts[i]] != freq[texts[j]] {
			return freq[texts[i]] > freq[texts[j]]
		}
		return texts[i] < texts[j]
	})

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Most Frequent Unknown Classes", r.useColors))
	fmt.Fprintln(r.w, "-----------------------------")
	for i, text := range texts {
		if i >= 10 {
			break
		}
		fmt.Fprintf(r.w, "%d. %s - %s\n", i+1, text, pluralizeCount(freq[text], "occurrence", "occurrences"))
	}
}

func (r *VerboseReporter) count(n int, style lipgloss.Style) string {
	text := fmt.Sprintf("%d", n)
	if n == 0 {
		return text
	}
	return RenderStyle(style, text, r.useColors)
}

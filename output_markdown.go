package twlint

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteMarkdown writes a shareable Markdown report
func WriteMarkdown(w io.Writer, result *LintResult) error {
	var b strings.Builder

	errors, warnings := 0, 0
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	b.WriteString("# Class List Report\n\n")
	fmt.Fprintf(&b, "*%s*\n\n", time.Now().Format("2006-01-02 15:04"))

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| **Status** | %s |\n", markdownStatus(result))
	fmt.Fprintf(&b, "| **Total Issues** | %d (%d errors, %d warnings) |\n", len(result.Issues), errors, warnings)
	fmt.Fprintf(&b, "| **Files Scanned** | %d |\n", result.FilesScanned)
	fmt.Fprintf(&b, "| **Class Lists** | %d |\n", result.ClassStrings)
	if result.TruncatedCount > 0 {
		fmt.Fprintf(&b, "| **Truncated** | %d |\n", result.TruncatedCount)
	}
	b.WriteString("\n")

	b.WriteString("## 📊 Rules\n\n")
	b.WriteString("| Rule | Issues |\n")
	b.WriteString("|------|--------|\n")
	fmt.Fprintf(&b, "| %s | %d |\n", LinterDuplicates, result.DuplicateCount)
	fmt.Fprintf(&b, "| %s | %d |\n", LinterUnknown, result.UnknownCount)
	fmt.Fprintf(&b, "| %s | %d |\n", LinterFormat, result.FormatCount)
	b.WriteString("\n")

	writeIssueTable(&b, "## ❌ Errors", result.Issues, SeverityError)
	writeIssueTable(&b, "## ⚠️ Warnings", result.Issues, SeverityWarning)

	if result.FormatCount > 0 && len(result.FixedFiles) == 0 {
		b.WriteString("## ✅ Recommendations\n\n")
		b.WriteString("- Run `twlint lint --fix` to format class lists\n\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("*Generated by twlint v1.0*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func markdownStatus(result *LintResult) string {
	switch {
	case result.ErrorCount > 0:
		return "🔴 Needs Attention"
	case result.WarningCount > 0:
		return "🟡 Unformatted"
	default:
		return "🟢 Clean"
	}
}

func writeIssueTable(b *strings.Builder, heading string, issues []Issue, severity string) {
	var rows []Issue
	for _, issue := range issues {
		if issue.Severity == severity {
			rows = append(rows, issue)
		}
	}
	if len(rows) == 0 {
		return
	}

	b.WriteString(heading + "\n\n")
	b.WriteString("| Location | Rule | Message |\n")
	b.WriteString("|----------|------|---------|\n")
	for _, issue := range rows {
		fmt.Fprintf(b, "| `%s:%d:%d` | %s | %s |\n",
			issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column,
			issue.FromLinter, escapeMarkdown(issue.Text))
	}
	b.WriteString("\n")
}

// escapeMarkdown escapes characters that break table cells
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

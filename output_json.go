package twlint

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int      `json:"total_issues"`
	Errors       int      `json:"errors"`
	Warnings     int      `json:"warnings"`
	Truncated    int      `json:"truncated"`
	FilesScanned int      `json:"files_scanned"`
	FixedFiles   []string `json:"fixed_files,omitempty"`
}

// JSONStats contains per-rule and scan statistics
type JSONStats struct {
	ClassStrings   int `json:"class_strings"`
	TokensAnalyzed int `json:"tokens_analyzed"`
	KnownClasses   int `json:"known_classes"`
	Duplicates     int `json:"duplicates"`
	Unknown        int `json:"unknown"`
	Unformatted    int `json:"unformatted"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File        string           `json:"file"`
	Line        int              `json:"line"`
	Column      int              `json:"column"`
	Severity    string           `json:"severity"`
	Message     string           `json:"message"`
	Linter      string           `json:"linter"`
	Source      string           `json:"source,omitempty"` // Optional source line
	Replacement *JSONReplacement `json:"replacement,omitempty"`
}

// JSONReplacement is the fix attached to a formatting issue
type JSONReplacement struct {
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
	NewText string `json:"new_text"`
}

// WriteJSON writes the lint result as JSON
func WriteJSON(w io.Writer, result *LintResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts LintResult to JSONOutput
func buildJSONOutput(result *LintResult) JSONOutput {
	var errors, warnings int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
		if r := issue.Replacement; r != nil {
			jsonIssues[i].Replacement = &JSONReplacement{
				Offset:  r.Offset,
				Length:  r.Length,
				NewText: r.NewText,
			}
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
			FixedFiles:   result.FixedFiles,
		},
		Stats: JSONStats{
			ClassStrings:   result.ClassStrings,
			TokensAnalyzed: result.TokensAnalyzed,
			KnownClasses:   result.KnownClasses,
			Duplicates:     result.DuplicateCount,
			Unknown:        result.UnknownCount,
			Unformatted:    result.FormatCount,
		},
		Issues: jsonIssues,
	}
}

package twlint

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "duplicates", "unknown", "format"
	Text        string       `json:"Text"`        // "unknown class \"p-44\""
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos     `json:"Pos"`         // File location
	LineRange   *LineRange   `json:"LineRange"`   // Lines spanned by a multi-line class list
	Replacement *Replacement `json:"Replacement"` // Fix applied by --fix
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/components/Button.tsx"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, exact start of the class)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// Replacement replaces Length bytes at Offset with NewText.
type Replacement struct {
	NewText string `json:"NewText"` // canonical class list, delimiters included
	Offset  int    `json:"Offset"`  // byte offset of the opening delimiter
	Length  int    `json:"Length"`  // length of the replaced literal
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Linter names, one per rule
const (
	LinterDuplicates = "duplicates"
	LinterUnknown    = "unknown"
	LinterFormat     = "format"
)

// Issue texts
const (
	IssueDuplicateClass = "duplicate class %q conflicts with %q"
	IssueUnknownClass   = "unknown class %q"
	IssueUnformatted    = "class list is not canonically formatted"
)

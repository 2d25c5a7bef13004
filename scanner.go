package twlint

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Default locator names, matching the usual React class helpers.
var (
	DefaultCallees    = []string{"cn", "cx", "className", "clsx", "classNames"}
	DefaultAttributes = []string{"className", "class"}
)

// ClassString is a string literal holding a class list
type ClassString struct {
	File   string
	Text   string // literal body without delimiters
	Offset int    // byte offset of the body in the file
	Line   int    // 1-based line of the body start
	Column int    // 1-based column of the body start
	Indent string // leading whitespace of Line
	Delim  byte   // '"', '\'' or '`'
}

// IsTemplate reports whether the class list is a template literal
func (cs ClassString) IsTemplate() bool {
	return cs.Delim == '`'
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

// Locator finds class strings in source text
type Locator struct {
	attribute *regexp.Regexp
	callee    *regexp.Regexp
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// NewLocator builds a locator for the given attribute and callee names.
// An empty list disables that kind of match.
func NewLocator(attributes, callees []string) *Locator {
	l := &Locator{}
	if len(attributes) > 0 {
		// className="..."  className={"..."}  className={`...`}
		l.attribute = regexp.MustCompile(`(?:^|[\s{(,])(?:` + alternation(attributes) + `)\s*=\s*(?:\{\s*)?["'` + "`]")
	}
	if len(callees) > 0 {
		// cn(  clsx (
		l.callee = regexp.MustCompile(`(?:^|[^\w.$])(?:` + alternation(callees) + `)\s*\(`)
	}
	return l
}

func alternation(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	return strings.Join(quoted, "|")
}

// Find returns every class string in content, ordered by offset.
// Template literals with ${} interpolation are not plain class lists and are skipped.
func (l *Locator) Find(file, content string) []ClassString {
	lines := newLineIndex(content)
	seen := make(map[int]bool)
	var found []ClassString

	collect := func(open int) {
		end, ok := literalEnd(content, open)
		if !ok || seen[open] {
			return
		}
		seen[open] = true
		body := content[open+1 : end]
		if content[open] == '`' && strings.Contains(body, "${") {
			return
		}
		line, column := lines.position(open + 1)
		found = append(found, ClassString{
			File:   file,
			Text:   body,
			Offset: open + 1,
			Line:   line,
			Column: column,
			Indent: lines.indent(line),
			Delim:  content[open],
		})
	}

	if l.attribute != nil {
		for _, m := range l.attribute.FindAllStringIndex(content, -1) {
			collect(m[1] - 1)
		}
	}
	if l.callee != nil {
		for _, m := range l.callee.FindAllStringIndex(content, -1) {
			for _, open := range callLiterals(content, m[1]) {
				collect(open)
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Offset < found[j].Offset
	})
	return found
}

// literalEnd returns the index of the closing delimiter of the literal
// opened at open. Quoted strings may not span lines.
func literalEnd(content string, open int) (int, bool) {
	delim := content[open]
	for i := open + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '\n':
			if delim != '`' {
				return 0, false
			}
		case delim:
			return i, true
		}
	}
	return 0, false
}

// callLiterals returns the opening offsets of the string literals passed
// directly as arguments of the call whose argument list starts at start.
// Literals nested in objects, arrays or inner calls are ignored.
func callLiterals(content string, start int) []int {
	var opens []int
	depth := 0
	for i := start; i < len(content); i++ {
		switch c := content[i]; c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return opens
			}
			depth--
		case '"', '\'', '`':
			end, ok := literalEnd(content, i)
			if !ok {
				return opens
			}
			if depth == 0 {
				opens = append(opens, i)
			}
			i = end
		}
	}
	return opens
}

// lineIndex maps byte offsets to 1-based line and column numbers
type lineIndex struct {
	content string
	starts  []int
}

func newLineIndex(content string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{content: content, starts: starts}
}

func (li lineIndex) position(offset int) (line, column int) {
	i := sort.SearchInts(li.starts, offset+1) - 1
	return i + 1, offset - li.starts[i] + 1
}

// text returns the 1-based line without its newline
func (li lineIndex) text(line int) string {
	if line < 1 || line > len(li.starts) {
		return ""
	}
	start := li.starts[line-1]
	end := len(li.content)
	if line < len(li.starts) {
		end = li.starts[line] - 1
	}
	return strings.TrimSuffix(li.content[start:end], "\r")
}

func (li lineIndex) indent(line int) string {
	text := li.text(line)
	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// isVendored reports dependency folders and minified bundles
func isVendored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "node_modules" {
			return true
		}
	}
	return strings.Contains(filepath.Base(path), ".min.")
}

// shouldSkipFile determines if a file should be excluded from scanning
//
// Two-layer filtering:
// 1. Pattern check (fast): node_modules and *.min.* bundles
// 2. Gitignore check: only for relative paths, absolute paths (like /tmp/...)
// are outside the project
func shouldSkipFile(path string) bool {
	if isVendored(path) {
		return true
	}

	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// ExpandPaths expands glob patterns to the files to scan
func ExpandPaths(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}

package classlist

import "strings"

// RenderOptions controls the canonical layout of a class list.
type RenderOptions struct {
	Indent      string // base indentation of the line holding the class list
	ExtraIndent string // added in front of every rendered line
	Width       int    // print width budget per line
}

// Render packs every group into lines and joins them. Lines in a group are
// separated by a newline, groups by a blank line.
//
// When everything fits on one line the trimmed line is returned as is.
// Otherwise the body is wrapped in a leading newline and a trailing
// newline plus Indent, so the closing delimiter lines up with the source.
func Render(groups [][]string, opts RenderOptions) string {
	prefix := opts.ExtraIndent + opts.Indent
	blocks := make([]string, 0, len(groups))
	for _, group := range groups {
		var lines []string
		for _, line := range Pack(group, opts.Width) {
			lines = append(lines, prefix+strings.Join(line, " "))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	text := strings.Join(blocks, "\n\n")
	if !strings.Contains(text, "\n") {
		return strings.TrimSpace(text)
	}
	return "\n" + text + "\n" + opts.Indent
}

// Format returns the canonical rendering of a class list:
// Tokenize, Sort, Group, then Render.
func Format(text string, resolve RankResolver, opts RenderOptions) (string, error) {
	sorted, err := Sort(Tokenize(text), resolve)
	if err != nil {
		return "", err
	}
	return Render(Group(sorted), opts), nil
}

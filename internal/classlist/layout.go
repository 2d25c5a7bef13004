package classlist

import "unicode/utf8"

// Group splits an ordered token sequence into maximal contiguous runs
// sharing the same variant prefix.
//
// ["p-4", "m-2", "focus:p-4", "group"] => [["p-4", "m-2"], ["focus:p-4"], ["group"]]
func Group(tokens []string) [][]string {
	var groups [][]string
	prev := ""
	for i, token := range tokens {
		prefix := VariantPrefix(token)
		if i == 0 || prefix != prev {
			groups = append(groups, []string{token})
		} else {
			last := len(groups) - 1
			groups[last] = append(groups[last], token)
		}
		prev = prefix
	}
	return groups
}

// Pack greedily fills lines so that space-joined tokens fit in width.
// A line always takes its first token, even when that token alone is wider
// than width, so no token is ever dropped.
func Pack(group []string, width int) [][]string {
	var lines [][]string
	var line []string
	lineWidth := 0
	for _, token := range group {
		n := utf8.RuneCountInString(token)
		if len(line) > 0 && lineWidth+1+n > width {
			lines = append(lines, line)
			line = nil
		}
		if len(line) == 0 {
			line = []string{token}
			lineWidth = n
			continue
		}
		line = append(line, token)
		lineWidth += 1 + n
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

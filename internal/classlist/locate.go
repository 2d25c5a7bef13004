package classlist

import (
	"strings"
	"unicode"
)

// Occurrence returns how many tokens before index equal tokens[index].
func Occurrence(tokens []string, index int) int {
	n := 0
	for _, t := range tokens[:index] {
		if t == tokens[index] {
			n++
		}
	}
	return n
}

// Locate finds the n-th (0-based) whitespace delimited occurrence of token
// in text by scanning line by line. It returns the 0-based line offset and
// the 0-based byte column within that line.
func Locate(text, token string, n int) (line, column int, ok bool) {
	for lineNum, lineText := range strings.Split(text, "\n") {
		start := -1
		for i, r := range lineText + " " {
			if !unicode.IsSpace(r) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 && lineText[start:i] == token {
				if n == 0 {
					return lineNum, start, true
				}
				n--
			}
			start = -1
		}
	}
	return 0, 0, false
}

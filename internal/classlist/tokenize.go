package classlist

import "strings"

// Tokenize splits a class list on runs of whitespace.
// Empty input yields an empty, non-nil slice.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	if fields == nil {
		return []string{}
	}
	return fields
}

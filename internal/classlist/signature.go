package classlist

import (
	"regexp"
	"strings"
)

var (
	// propertyPattern matches "name:" at the start of a line or after { or ;
	// so selectors like "&:hover" and media queries like "(hover: hover)" stay out.
	propertyPattern = regexp.MustCompile(`(?m)(?:^|[{;])\s*([-\w]+)\s*:`)

	// nestedSelectorPattern matches a line holding only a pseudo selector opener:
	// "&:hover {", ":focus-visible {", "&::placeholder {".
	nestedSelectorPattern = regexp.MustCompile(`(?m)^[ \t]*&?::?([^\s{][^{\n]*?)[ \t]*\{[ \t]*$`)
)

// splitVariants splits a token on ':' outside of brackets and parentheses,
// so arbitrary values like "bg-[url(http://x)]" stay in one segment.
//
// focus:hover:p-4 => ["focus", "hover", "p-4"]
func splitVariants(token string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				parts = append(parts, token[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, token[start:])
}

// VariantPrefix returns the modifier chain of a token.
//
// focus:hover:p-4 => "focus:hover"
func VariantPrefix(token string) string {
	parts := splitVariants(token)
	return strings.Join(parts[:len(parts)-1], ":")
}

// Utility returns the final segment of a token.
//
// focus:hover:p-4 => "p-4"
func Utility(token string) string {
	parts := splitVariants(token)
	return parts[len(parts)-1]
}

// PropertyNames lists declared property names in order of first appearance.
func PropertyNames(css string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range propertyPattern.FindAllStringSubmatch(css, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// NestedSelectors lists nested pseudo selector openers in order.
func NestedSelectors(css string) []string {
	var names []string
	for _, m := range nestedSelectorPattern.FindAllStringSubmatch(css, -1) {
		names = append(names, m[1])
	}
	return names
}

// Signature returns the duplicate detection key of a token:
// its variant prefix, nested selectors and property names, space joined.
// Two tokens with the same signature style the same thing.
func Signature(token, css string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{
		VariantPrefix(token),
		strings.Join(NestedSelectors(css), " "),
		strings.Join(PropertyNames(css), " "),
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

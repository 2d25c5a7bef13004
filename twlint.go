// Package twlint lints utility class lists in JSX/TSX sources.
//
// twlint finds class strings passed to class attributes and helper calls
// such as cn() or clsx(), then checks them against the compiled stylesheet
// of a utility framework.
//
// # Rules
//
//   - duplicates: a class styling the same properties, under the same
//     variants, as an earlier class in the list
//   - unknown: a class the stylesheet does not define
//   - format: a template literal class list that is not sorted, grouped by
//     variant and wrapped to the print width
//
// # Linting
//
//	result, err := twlint.Lint(ctx, twlint.LintConfig{
//		Paths:       []string{"src/**/*.tsx"},
//		Stylesheets: []string{"dist/output.css"},
//		Callees:     twlint.DefaultCallees,
//		Attributes:  twlint.DefaultAttributes,
//		PrintWidth:  80,
//		Rules:       twlint.AllRules(),
//	})
//
// # CLI Tool
//
//	go install github.com/yacobolo/twlint/cmd/twlint@latest
package twlint

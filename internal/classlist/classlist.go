// Package classlist analyzes and formats utility class lists.
//
// A class list is a whitespace separated string such as
// "flex p-4 hover:p-2". The package works on the token sequence only:
// CSS knowledge is injected through two batched resolvers, one returning
// the generated declaration text per token and one returning a canonical
// rank per token.
//
// # Analysis
//
//   - FindDuplicates reports tokens that style the same thing as an
//     earlier token (same variant prefix and same declared properties).
//   - FindUnknowns reports tokens the resolver does not know.
//
// # Formatting
//
// Format sorts tokens by rank, groups them by variant prefix, wraps each
// group to a width budget and renders the result:
//
//	out, err := classlist.Format("p-4 flex hover:p-2", ranks, classlist.RenderOptions{
//		ExtraIndent: "  ",
//		Width:       80,
//	})
//	// out == "\n  flex p-4\n\n  hover:p-2\n"
//
// Every function is pure. Resolvers are called at most once per call.
package classlist

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrResolverContract is returned when a resolver breaks index correspondence
// with its input.
var ErrResolverContract = errors.New("resolver contract violation")

// Declaration is the CSS generated for a single token.
type Declaration struct {
	CSS   string // rule text, may be nested
	Found bool   // false when the token is not a utility
}

// Rank pairs a token with its canonical sort key. A nil Order means the
// token has no defined order and sorts last.
type Rank struct {
	Token string
	Order *big.Int
}

// DeclarationResolver returns one Declaration per token, same length and order.
type DeclarationResolver func(tokens []string) []Declaration

// RankResolver returns one Rank per token, same length and order.
type RankResolver func(tokens []string) []Rank

// resolveDeclarations calls resolve once and checks the result length.
func resolveDeclarations(tokens []string, resolve DeclarationResolver) ([]Declaration, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	decls := resolve(tokens)
	if len(decls) != len(tokens) {
		return nil, fmt.Errorf("%w: declarations: got %d results for %d tokens",
			ErrResolverContract, len(decls), len(tokens))
	}
	return decls, nil
}

// resolveRanks calls resolve once and checks the pairing.
func resolveRanks(tokens []string, resolve RankResolver) ([]Rank, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	ranks := resolve(tokens)
	if len(ranks) != len(tokens) {
		return nil, fmt.Errorf("%w: ranks: got %d results for %d tokens",
			ErrResolverContract, len(ranks), len(tokens))
	}
	for i, r := range ranks {
		if r.Token != tokens[i] {
			return nil, fmt.Errorf("%w: ranks: result %d is for %q, want %q",
				ErrResolverContract, i, r.Token, tokens[i])
		}
	}
	return ranks, nil
}

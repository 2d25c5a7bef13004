package classlist

import (
	"math/big"
	"sort"
)

// Sort orders tokens by their canonical rank. Ranked tokens ascend, unranked
// tokens go last, and equal ranks keep their input order.
func Sort(tokens []string, resolve RankResolver) ([]string, error) {
	ranks, err := resolveRanks(tokens, resolve)
	if err != nil {
		return nil, err
	}

	sorted := make([]Rank, len(ranks))
	copy(sorted, ranks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rankLess(sorted[i].Order, sorted[j].Order)
	})

	result := make([]string, len(sorted))
	for i, r := range sorted {
		result[i] = r.Token
	}
	return result, nil
}

// rankLess: a before b when a is ranked and b is not, or both ranked and a < b.
func rankLess(a, b *big.Int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Cmp(b) < 0
}

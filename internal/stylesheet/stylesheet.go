// Package stylesheet resolves utility classes against a compiled stylesheet.
//
// The compiled output of a utility framework lists every generated class
// in canonical order. Parsing it once gives both resolvers the classlist
// package needs: the declaration text of a class and its rank, which is
// the position of its first rule in the file.
package stylesheet

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/yacobolo/twlint/internal/classlist"
)

// rule is one block of the stylesheet: a ruleset or a conditional at-rule.
type rule struct {
	header   string
	decls    []string
	children []*rule
}

// fragment is a rule selecting a class, plus the headers that wrap it when
// rendered under that class (enclosing at-rules, then the relative selector).
type fragment struct {
	wrappers []string
	rule     *rule
}

type entry struct {
	selector  string // escaped class as written in the stylesheet
	rank      int
	fragments []fragment
	css       string // rendered once parsing is done
}

// Index maps class names to their rules.
type Index struct {
	classes map[string]*entry
	order   []string
}

var (
	_ classlist.DeclarationResolver = (*Index)(nil).Declarations
	_ classlist.RankResolver        = (*Index)(nil).Ranks
)

func newIndex() *Index {
	return &Index{classes: make(map[string]*entry)}
}

// Load reads and indexes one or more stylesheets. Ranks continue across
// files in the order given.
func Load(paths ...string) (*Index, error) {
	idx := newIndex()
	for _, path := range paths {
		// #nosec G304 - path comes from trusted configuration
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read stylesheet: %w", err)
		}
		if err := idx.parse(string(content)); err != nil {
			return nil, fmt.Errorf("parse stylesheet %s: %w", path, err)
		}
	}
	return idx, nil
}

// Parse indexes stylesheet content.
func Parse(content string) (*Index, error) {
	idx := newIndex()
	if err := idx.parse(content); err != nil {
		return nil, err
	}
	return idx, nil
}

// Len returns the number of distinct classes.
func (idx *Index) Len() int {
	return len(idx.order)
}

// Has reports whether the stylesheet defines class.
func (idx *Index) Has(class string) bool {
	_, ok := idx.classes[class]
	return ok
}

// Classes returns every class in rank order.
func (idx *Index) Classes() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// Declarations resolves the CSS of each token, nested under the class selector.
func (idx *Index) Declarations(tokens []string) []classlist.Declaration {
	out := make([]classlist.Declaration, len(tokens))
	for i, token := range tokens {
		if e, ok := idx.classes[token]; ok {
			out[i] = classlist.Declaration{CSS: e.css, Found: true}
		}
	}
	return out
}

// Ranks resolves the canonical order of each token. Unknown tokens are unranked.
func (idx *Index) Ranks(tokens []string) []classlist.Rank {
	out := make([]classlist.Rank, len(tokens))
	for i, token := range tokens {
		out[i] = classlist.Rank{Token: token}
		if e, ok := idx.classes[token]; ok {
			out[i].Order = big.NewInt(int64(e.rank))
		}
	}
	return out
}

func (idx *Index) add(class, selector string, f fragment) {
	e, ok := idx.classes[class]
	if !ok {
		e = &entry{selector: selector, rank: len(idx.order)}
		idx.classes[class] = e
		idx.order = append(idx.order, class)
	}
	e.fragments = append(e.fragments, f)
}

// render prints the class as one nested block:
//
//	.hover\:p-4 {
//	  &:hover {
//	    padding: 1rem;
//	  }
//	}
func (e *entry) render() string {
	var b strings.Builder
	b.WriteString("." + e.selector + " {\n")
	for _, f := range e.fragments {
		depth := 1
		for _, w := range f.wrappers {
			writeLine(&b, depth, w+" {")
			depth++
		}
		writeBody(&b, depth, f.rule)
		for depth > 1 {
			depth--
			writeLine(&b, depth, "}")
		}
	}
	b.WriteString("}")
	return b.String()
}

func writeBody(b *strings.Builder, depth int, r *rule) {
	for _, d := range r.decls {
		writeLine(b, depth, d)
	}
	for _, child := range r.children {
		writeLine(b, depth, child.header+" {")
		writeBody(b, depth+1, child)
		writeLine(b, depth, "}")
	}
}

func writeLine(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(text)
	b.WriteByte('\n')
}

package stylesheet

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// skippedAtRules hold no class rules worth indexing.
var skippedAtRules = map[string]bool{
	"@keyframes":           true,
	"@-webkit-keyframes":   true,
	"@font-face":           true,
	"@property":            true,
	"@page":                true,
	"@counter-style":       true,
	"@font-feature-values": true,
}

// frame is an open block on the parser stack.
type frame struct {
	rule    *rule
	atRule  bool // conditional at-rule such as @media or @supports
	layer   bool // @layer block, transparent for rendering
	skipped bool
}

// parserState maintains context while parsing a stylesheet
type parserState struct {
	idx   *Index
	stack []frame
}

// parse walks the token stream of content. Blocks are tracked by hand so
// nested rules and nested at-rules, as emitted by Tailwind v4, are read as
// blocks rather than as declarations.
func (idx *Index) parse(content string) error {
	state := &parserState{idx: idx}
	lexer := css.NewLexer(parse.NewInputString(content))

	var prelude []css.Token
	depth := 0 // open parentheses and brackets in the prelude
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != io.EOF {
				return err
			}
			// Unclosed blocks end with the input
			state.statement(prelude)
			for _, e := range idx.classes {
				e.css = e.render()
			}
			return nil

		case css.CommentToken, css.CDOToken, css.CDCToken:
			continue

		case css.LeftBraceToken:
			state.open(prelude)
			prelude, depth = nil, 0

		case css.RightBraceToken:
			// The last declaration of a block may omit its semicolon
			state.statement(prelude)
			state.pop()
			prelude, depth = nil, 0

		case css.SemicolonToken:
			if depth > 0 {
				prelude = append(prelude, token(tt, data))
				continue
			}
			state.statement(prelude)
			prelude = nil

		default:
			switch tt {
			case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
				depth++
			case css.RightParenthesisToken, css.RightBracketToken:
				if depth > 0 {
					depth--
				}
			}
			prelude = append(prelude, token(tt, data))
		}
	}
}

// token copies lexer data, which points into the lexer buffer
func token(tt css.TokenType, data []byte) css.Token {
	return css.Token{TokenType: tt, Data: append([]byte(nil), data...)}
}

// trimWhitespace drops leading and trailing whitespace tokens
func trimWhitespace(tokens []css.Token) []css.Token {
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// open starts the block introduced by prelude: an at-rule or a ruleset
func (s *parserState) open(prelude []css.Token) {
	prelude = trimWhitespace(prelude)
	if len(prelude) > 0 && prelude[0].TokenType == css.AtKeywordToken {
		s.beginAtRule(string(prelude[0].Data), trimWhitespace(prelude[1:]))
		return
	}
	s.beginRuleset(prelude)
}

// statement handles a prelude ended by ';' or '}'. At-rule statements such
// as "@layer theme, base;" carry nothing to index.
func (s *parserState) statement(prelude []css.Token) {
	prelude = trimWhitespace(prelude)
	if len(prelude) == 0 || prelude[0].TokenType == css.AtKeywordToken {
		return
	}
	for i, t := range prelude {
		if t.TokenType == css.ColonToken {
			name := strings.TrimSpace(joinTokens(prelude[:i]))
			if name != "" {
				s.declaration(name, prelude[i+1:])
			}
			return
		}
	}
}

func (s *parserState) top() *frame {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

func (s *parserState) pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *parserState) skipping() bool {
	top := s.top()
	return top != nil && top.skipped
}

func (s *parserState) beginAtRule(name string, values []css.Token) {
	name = strings.ToLower(name)
	f := frame{
		rule:    &rule{header: strings.TrimSpace(name + " " + joinTokens(values))},
		atRule:  true,
		layer:   name == "@layer",
		skipped: s.skipping() || skippedAtRules[name],
	}
	if top := s.top(); top != nil && !top.atRule && !f.skipped {
		// nested inside a ruleset: becomes part of its body
		top.rule.children = append(top.rule.children, f.rule)
		f.atRule = false
	}
	s.stack = append(s.stack, f)
}

func (s *parserState) beginRuleset(values []css.Token) {
	r := &rule{}
	f := frame{rule: r, skipped: s.skipping()}
	top := s.top()

	switch {
	case f.skipped:
	case top != nil && !top.atRule:
		// nested ruleset, kept verbatim under its parent
		r.header = joinTokens(values)
		top.rule.children = append(top.rule.children, r)
	default:
		wrappers := s.wrappers()
		for _, selector := range splitSelectorList(values) {
			class, escaped, relative, ok := subjectClass(selector)
			if !ok {
				continue
			}
			ws := wrappers
			if relative != "&" {
				ws = append(append([]string{}, wrappers...), relative)
			}
			s.idx.add(class, escaped, fragment{wrappers: ws, rule: r})
		}
	}
	s.stack = append(s.stack, f)
}

func (s *parserState) declaration(name string, values []css.Token) {
	top := s.top()
	if top == nil || top.skipped {
		return
	}
	top.rule.decls = append(top.rule.decls, name+": "+strings.TrimSpace(joinTokens(values))+";")
}

// wrappers returns the headers of the open conditional at-rules, outermost first.
func (s *parserState) wrappers() []string {
	var ws []string
	for _, f := range s.stack {
		if f.atRule && !f.layer {
			ws = append(ws, f.rule.header)
		}
	}
	return ws
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.Write(t.Data)
	}
	return b.String()
}

// splitSelectorList splits a selector list on top-level commas.
func splitSelectorList(tokens []css.Token) [][]css.Token {
	var list [][]css.Token
	depth := 0
	start := 0
	for i, t := range tokens {
		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				list = append(list, tokens[start:i])
				start = i + 1
			}
		}
	}
	return append(list, tokens[start:])
}

// subjectClass finds the class a complex selector styles: the first class of
// the last compound selector holding one. The rest of the selector is
// returned relative to it, with & standing for the class.
//
//	.hover\:p-4:hover              => hover:p-4, "&:hover"
//	.dark .dark\:p-4               => dark:p-4,  ".dark &"
//	.space-x-4 > :not(:last-child) => space-x-4, "& > :not(:last-child)"
func subjectClass(tokens []css.Token) (class, escaped, relative string, ok bool) {
	subject := -1
	compoundHasClass := false
	depth := 0
	for i, t := range tokens {
		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.WhitespaceToken:
			if depth == 0 {
				compoundHasClass = false
			}
		case css.DelimToken:
			if depth != 0 {
				continue
			}
			switch string(t.Data) {
			case ">", "+", "~":
				compoundHasClass = false
			case ".":
				if i+1 < len(tokens) && tokens[i+1].TokenType == css.IdentToken && !compoundHasClass {
					subject = i
					compoundHasClass = true
				}
			}
		}
	}
	if subject < 0 {
		return "", "", "", false
	}

	escaped = string(tokens[subject+1].Data)
	before := strings.TrimLeft(joinTokens(tokens[:subject]), " ")
	after := strings.TrimRight(joinTokens(tokens[subject+2:]), " ")
	return unescapeIdent(escaped), escaped, before + "&" + after, true
}

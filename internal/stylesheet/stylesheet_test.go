package stylesheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/twlint/internal/classlist"
)

const utilitiesCSS = `@layer theme {
  :root { --spacing: 0.25rem; }
}
@layer utilities {
  .flex { display: flex; }
  .block { display: block; }
  .p-4 { padding: 1rem; }
  .hover\:p-4:hover { padding: 1rem; }
  @media (min-width: 768px) {
    .md\:p-4 { padding: 1rem; }
  }
  .w-1\/2 { width: 50%; }
  .a, .b:focus { color: red; }
}
@keyframes spin {
  to { transform: rotate(360deg); }
}
`

func TestParse(t *testing.T) {
	idx, err := Parse(utilitiesCSS)
	require.NoError(t, err)

	assert.Equal(t, []string{"flex", "block", "p-4", "hover:p-4", "md:p-4", "w-1/2", "a", "b"}, idx.Classes())
	assert.Equal(t, 8, idx.Len())
	assert.True(t, idx.Has("w-1/2"))
	assert.False(t, idx.Has("w-1\\/2"))
	assert.False(t, idx.Has("spin"))
}

func TestDeclarations(t *testing.T) {
	idx, err := Parse(utilitiesCSS)
	require.NoError(t, err)

	tokens := []string{"p-4", "hover:p-4", "md:p-4", "nope", "b"}
	decls := idx.Declarations(tokens)
	require.Len(t, decls, len(tokens))

	assert.True(t, decls[0].Found)
	assert.Equal(t, ".p-4 {\n  padding: 1rem;\n}", decls[0].CSS)

	assert.True(t, decls[1].Found)
	assert.Contains(t, decls[1].CSS, "  &:hover {\n")
	assert.Equal(t, []string{"hover"}, classlist.NestedSelectors(decls[1].CSS))
	assert.Equal(t, []string{"padding"}, classlist.PropertyNames(decls[1].CSS))

	assert.True(t, decls[2].Found)
	assert.Contains(t, decls[2].CSS, "@media")
	assert.Equal(t, []string{"padding"}, classlist.PropertyNames(decls[2].CSS))
	assert.Empty(t, classlist.NestedSelectors(decls[2].CSS))

	assert.False(t, decls[3].Found)
	assert.Empty(t, decls[3].CSS)

	assert.Equal(t, []string{"focus"}, classlist.NestedSelectors(decls[4].CSS))
	assert.Equal(t, []string{"color"}, classlist.PropertyNames(decls[4].CSS))
}

func TestRanks(t *testing.T) {
	idx, err := Parse(utilitiesCSS)
	require.NoError(t, err)

	ranks := idx.Ranks([]string{"p-4", "nope", "flex"})
	require.Len(t, ranks, 3)
	assert.Equal(t, "p-4", ranks[0].Token)
	assert.Equal(t, int64(2), ranks[0].Order.Int64())
	assert.Equal(t, "nope", ranks[1].Token)
	assert.Nil(t, ranks[1].Order)
	assert.Equal(t, int64(0), ranks[2].Order.Int64())
}

func TestIndexDrivesClasslist(t *testing.T) {
	idx, err := Parse(utilitiesCSS)
	require.NoError(t, err)

	dups, err := classlist.FindDuplicates([]string{"flex", "p-4", "block", "hover:p-4", "md:p-4"}, idx.Declarations)
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, "block", dups[0].Token)
	assert.Equal(t, "flex", dups[0].First)

	unknowns, err := classlist.FindUnknowns([]string{"group", "flex", "typo"}, idx.Declarations)
	require.NoError(t, err)
	require.Len(t, unknowns, 1)
	assert.Equal(t, "typo", unknowns[0].Token)

	sorted, err := classlist.Sort([]string{"typo", "w-1/2", "p-4", "flex"}, idx.Ranks)
	require.NoError(t, err)
	assert.Equal(t, []string{"flex", "p-4", "w-1/2", "typo"}, sorted)
}

// tailwindV4CSS mirrors Tailwind v4 output: variants are nested rules and
// nested at-rules inside the class rule.
const tailwindV4CSS = `@layer theme, base, components, utilities;
@layer utilities {
  .flex {
    display: flex;
  }
  .p-4 {
    padding: calc(var(--spacing) * 4);
  }
  .space-x-4 {
    :where(& > :not(:last-child)) {
      --tw-space-x-reverse: 0;
      margin-inline-start: calc(calc(var(--spacing) * 4) * var(--tw-space-x-reverse));
    }
  }
  .hover\:p-4 {
    &:hover {
      @media (hover: hover) {
        padding: calc(var(--spacing) * 4);
      }
    }
  }
  .md\:p-4 {
    @media (width >= 48rem) {
      padding: calc(var(--spacing) * 4)
    }
  }
  .focus\:p-4 {
    &:focus {
      padding: calc(var(--spacing) * 4);
    }
  }
}
@property --tw-space-x-reverse {
  syntax: "*";
  inherits: false;
  initial-value: 0;
}
`

func TestParseNestedRules(t *testing.T) {
	idx, err := Parse(tailwindV4CSS)
	require.NoError(t, err)

	assert.Equal(t, []string{"flex", "p-4", "space-x-4", "hover:p-4", "md:p-4", "focus:p-4"}, idx.Classes())

	decls := idx.Declarations([]string{"hover:p-4", "md:p-4", "space-x-4", "p-4"})

	assert.Equal(t, ".hover\\:p-4 {\n"+
		"  &:hover {\n"+
		"    @media (hover: hover) {\n"+
		"      padding: calc(var(--spacing) * 4);\n"+
		"    }\n"+
		"  }\n"+
		"}", decls[0].CSS)
	assert.Equal(t, []string{"hover"}, classlist.NestedSelectors(decls[0].CSS))
	assert.Equal(t, []string{"padding"}, classlist.PropertyNames(decls[0].CSS))

	assert.Contains(t, decls[1].CSS, "  @media (width >= 48rem) {\n    padding: calc(var(--spacing) * 4);\n  }\n")
	assert.Empty(t, classlist.NestedSelectors(decls[1].CSS))
	assert.Equal(t, []string{"padding"}, classlist.PropertyNames(decls[1].CSS))

	assert.Equal(t, []string{"where(& > :not(:last-child))"}, classlist.NestedSelectors(decls[2].CSS))
	assert.Equal(t, []string{"--tw-space-x-reverse", "margin-inline-start"}, classlist.PropertyNames(decls[2].CSS))

	assert.Equal(t, ".p-4 {\n  padding: calc(var(--spacing) * 4);\n}", decls[3].CSS)
}

func TestNestedVariantsDriveDuplicates(t *testing.T) {
	idx, err := Parse(tailwindV4CSS)
	require.NoError(t, err)

	// Same property under different nested selectors never collides
	dups, err := classlist.FindDuplicates([]string{"p-4", "hover:p-4", "focus:p-4", "md:p-4"}, idx.Declarations)
	require.NoError(t, err)
	assert.Empty(t, dups)

	hover := idx.Declarations([]string{"hover:p-4"})[0].CSS
	focus := idx.Declarations([]string{"focus:p-4"})[0].CSS
	assert.Equal(t, "hover padding", classlist.Signature("p-4", hover))
	assert.Equal(t, "focus padding", classlist.Signature("p-4", focus))
}

func TestParseRecoversFromUnclosedBlocks(t *testing.T) {
	idx, err := Parse(".a { color: red; .b { color: blue }")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, idx.Classes())
	assert.Contains(t, idx.Declarations([]string{"a"})[0].CSS, "  .b {\n    color: blue;\n  }\n")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.css")
	second := filepath.Join(dir, "b.css")
	require.NoError(t, os.WriteFile(first, []byte(".flex { display: flex; }"), 0644))
	require.NoError(t, os.WriteFile(second, []byte(".p-4 { padding: 1rem; }\n.flex { display: flex; }"), 0644))

	idx, err := Load(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"flex", "p-4"}, idx.Classes())

	_, err = Load(filepath.Join(dir, "missing.css"))
	require.Error(t, err)
}

func TestUnescapeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "flex", want: "flex"},
		{in: `hover\:p-4`, want: "hover:p-4"},
		{in: `w-1\/2`, want: "w-1/2"},
		{in: `p-0\.5`, want: "p-0.5"},
		{in: `\32 xl\:p-4`, want: "2xl:p-4"},
		{in: `bg-\[\#ff0000\]`, want: "bg-[#ff0000]"},
		{in: `trailing\`, want: `trailing\`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeIdent(tt.in))
		})
	}
}

func tok(tt css.TokenType, data string) css.Token {
	return css.Token{TokenType: tt, Data: []byte(data)}
}

func TestSubjectClass(t *testing.T) {
	dot := tok(css.DelimToken, ".")
	ws := tok(css.WhitespaceToken, " ")

	tests := []struct {
		name         string
		tokens       []css.Token
		wantClass    string
		wantRelative string
		wantOK       bool
	}{
		{
			name:         "plain class",
			tokens:       []css.Token{dot, tok(css.IdentToken, "flex")},
			wantClass:    "flex",
			wantRelative: "&",
			wantOK:       true,
		},
		{
			name:         "pseudo class",
			tokens:       []css.Token{dot, tok(css.IdentToken, `hover\:p-4`), tok(css.ColonToken, ":"), tok(css.IdentToken, "hover")},
			wantClass:    "hover:p-4",
			wantRelative: "&:hover",
			wantOK:       true,
		},
		{
			name: "descendant of a marker class",
			tokens: []css.Token{
				dot, tok(css.IdentToken, "group"), tok(css.ColonToken, ":"), tok(css.IdentToken, "hover"), ws,
				dot, tok(css.IdentToken, `group-hover\:underline`),
			},
			wantClass:    "group-hover:underline",
			wantRelative: ".group:hover &",
			wantOK:       true,
		},
		{
			name: "child combinator without a class",
			tokens: []css.Token{
				dot, tok(css.IdentToken, "space-x-4"), ws, tok(css.DelimToken, ">"), ws,
				tok(css.ColonToken, ":"), tok(css.FunctionToken, "not("), tok(css.ColonToken, ":"),
				tok(css.IdentToken, "last-child"), tok(css.RightParenthesisToken, ")"),
			},
			wantClass:    "space-x-4",
			wantRelative: "& > :not(:last-child)",
			wantOK:       true,
		},
		{
			name: "class inside a functional pseudo is not the subject",
			tokens: []css.Token{
				dot, tok(css.IdentToken, `dark\:p-4`), tok(css.ColonToken, ":"), tok(css.FunctionToken, "where("),
				dot, tok(css.IdentToken, "dark"), tok(css.RightParenthesisToken, ")"),
			},
			wantClass:    "dark:p-4",
			wantRelative: "&:where(.dark)",
			wantOK:       true,
		},
		{
			name:   "no class",
			tokens: []css.Token{tok(css.ColonToken, ":"), tok(css.IdentToken, "root")},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, _, relative, ok := subjectClass(tt.tokens)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantRelative, relative)
		})
	}
}

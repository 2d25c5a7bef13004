package classlist

import "strings"

// structuralMarkers generate no CSS themselves; they only name an element
// for group-* and peer-* variants.
var structuralMarkers = map[string]bool{
	"group": true,
	"peer":  true,
}

// Unknown is a token that does not resolve to a utility.
type Unknown struct {
	Token string
	Index int // first position of Token in the input
}

// IsStructural reports whether a token is a structural marker such as
// "group", "peer", "group/item" or "md:peer".
func IsStructural(token string) bool {
	utility := Utility(token)
	if i := strings.IndexByte(utility, '/'); i >= 0 {
		utility = utility[:i]
	}
	return structuralMarkers[utility]
}

// FindUnknowns reports tokens with no declaration, once per distinct token,
// in order of first appearance. Structural markers are never reported.
func FindUnknowns(tokens []string, resolve DeclarationResolver) ([]Unknown, error) {
	decls, err := resolveDeclarations(tokens, resolve)
	if err != nil {
		return nil, err
	}

	var unknowns []Unknown
	seen := make(map[string]bool)
	for i, token := range tokens {
		if decls[i].Found || seen[token] || IsStructural(token) {
			continue
		}
		seen[token] = true
		unknowns = append(unknowns, Unknown{Token: token, Index: i})
	}
	return unknowns, nil
}

package classlist

// Duplicate is a token that styles the same thing as an earlier token.
type Duplicate struct {
	Token      string // later occurrence, reported
	Index      int    // position of Token in the input
	First      string // first token holding the signature
	FirstIndex int    // position of First in the input
	Signature  string
}

// FindDuplicates walks tokens in input order and reports every token whose
// signature was already held by an earlier token. The first holder is
// never reported. Unknown tokens are skipped.
func FindDuplicates(tokens []string, resolve DeclarationResolver) ([]Duplicate, error) {
	decls, err := resolveDeclarations(tokens, resolve)
	if err != nil {
		return nil, err
	}

	var duplicates []Duplicate
	firstSeen := make(map[string]int)
	for i, token := range tokens {
		if !decls[i].Found {
			continue
		}
		sig := Signature(token, decls[i].CSS)
		if first, ok := firstSeen[sig]; ok {
			duplicates = append(duplicates, Duplicate{
				Token:      token,
				Index:      i,
				First:      tokens[first],
				FirstIndex: first,
				Signature:  sig,
			})
			continue
		}
		firstSeen[sig] = i
	}
	return duplicates, nil
}

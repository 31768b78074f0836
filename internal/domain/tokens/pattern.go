package tokens

import "slices"

// Wildcard pattern symbols. Any other symbol is the literal token text.
const (
	SymbolString = "STR"
	SymbolIdent  = "ID"
	SymbolNumber = "NUM"
)

// Pattern maps every token to its wildcard symbol. The result always has the
// same length as toks.
func Pattern(toks []string) []string {
	pattern := make([]string, len(toks))

	for i, tok := range toks {
		switch {
		case IsStringLiteral(tok):
			pattern[i] = SymbolString
		case IsIdentifier(tok) && !IsKeyword(tok):
			pattern[i] = SymbolIdent
		case tok != "" && isDigit(tok[0]):
			pattern[i] = SymbolNumber
		default:
			pattern[i] = tok
		}
	}

	return pattern
}

// Match compares two token sequences using wildcards for identifiers, string
// literals and numbers. Keywords, operators, punctuation and comments must
// match exactly.
func Match(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		ka, kb := Classify(a[i]), Classify(b[i])
		if ka != kb {
			return false
		}

		if ka.Literal() && a[i] != b[i] {
			return false
		}
	}

	return true
}

// SamePattern reports whether two pattern sequences are identical.
func SamePattern(a, b []string) bool {
	return slices.Equal(a, b)
}

package similarity

import "colfmt.dev/pkg/colfmt/internal/domain/tokens"

// IsMultiline reports whether line belongs to a construct that spans lines:
// it leaves a string open, leaves brackets unbalanced, or ends with a
// backslash continuation. A line the lexer rejects counts as multi-line so
// that it is passed through untouched.
func IsMultiline(line string) bool {
	toks, err := tokens.Lex(line)
	if err != nil {
		return true
	}

	if len(toks) == 0 {
		return false
	}

	balance := 0

	for _, tok := range toks {
		if tok.Unterminated {
			return true
		}

		switch {
		case tokens.IsOpener(tok.Text):
			balance++
		case tokens.IsCloser(tok.Text):
			balance--
		}
	}

	return balance != 0 || toks[len(toks)-1].Text == `\`
}

// Package align groups consecutive lines of the same shape into blocks and
// lays each block out in columns.
package align

import (
	"strings"

	"colfmt.dev/pkg/colfmt/internal/domain/tokens"
)

// FormatTokens prefixes every token after the first with the delimiter that
// spacing heuristics choose for it: either nothing or a single space.
// Delimiters already present on the input are replaced, so formatting
// formatted tokens is a no-op.
func FormatTokens(raw []string) []string {
	formatted := make([]string, len(raw))
	if len(raw) == 0 {
		return formatted
	}

	toks := make([]string, len(raw))
	for i, tok := range raw {
		toks[i] = strings.TrimLeft(tok, " ")
	}

	formatted[0] = toks[0]

	isDef := toks[0] == "def"
	isLambda := toks[0] == "lambda"
	inParams := isLambda
	depth := 0

	for i := 1; i < len(toks); i++ {
		switch toks[i-1] {
		case "(":
			depth++

			if isDef {
				inParams = true
			}
		case ")":
			depth--

			if isDef && depth == 0 {
				inParams = false
			}
		}

		if isLambda && depth == 0 && toks[i] == ":" {
			inParams = false
		}

		formatted[i] = delimiter(toks[i-1], toks[i], inParams, depth) + toks[i]
	}

	return formatted
}

func delimiter(prev, next string, inParams bool, depth int) string {
	switch {
	case inParams && (prev == "=" || next == "="):
		return ""
	case tokens.IsOperator(prev) || tokens.IsOperator(next):
		if depth > 1 && (isSign(prev) || isSign(next)) {
			return ""
		}

		return " "
	case tokens.IsOpener(prev):
		return ""
	case tokens.IsCloser(next):
		return ""
	case next == "," || next == ":" || next == ";":
		return ""
	case next == "(" && isCallee(prev):
		return ""
	}

	return " "
}

func isSign(tok string) bool {
	return tok == "+" || tok == "-"
}

// isCallee reports whether an opening paren after tok reads as a call.
func isCallee(tok string) bool {
	switch tokens.Classify(tok) {
	case tokens.Identifier, tokens.StringLiteral, tokens.Numeric:
		return true
	default:
		return false
	}
}

// Justification selects how a column is padded to its width.
type Justification byte

// Supported justifications. Lower-case variants are accepted as well.
const (
	JustifyLeft   Justification = 'L'
	JustifyRight  Justification = 'R'
	JustifyCenter Justification = 'C'
)

// JoinTokens concatenates tokens into one right-trimmed line. Unless
// skipFormatting is set, the tokens are run through FormatTokens first.
//
// When widths and justs both have one entry per token, every column with a
// positive width is padded to it. Otherwise the layout is ignored.
func JoinTokens(toks []string, widths []int, justs []Justification, skipFormatting bool) string {
	formatted := toks
	if !skipFormatting {
		formatted = FormatTokens(toks)
	}

	useLayout := len(widths) > 0 && len(widths) == len(formatted) &&
		len(justs) > 0 && len(justs) == len(formatted)

	var b strings.Builder

	for i, tok := range formatted {
		if useLayout {
			tok = pad(tok, widths[i], justs[i])
		}

		b.WriteString(tok)
	}

	return strings.TrimRightFunc(b.String(), isTrimSpace)
}

func pad(tok string, width int, just Justification) string {
	padding := width - len(tok)
	if width <= 0 || padding <= 0 {
		return tok
	}

	switch just {
	case JustifyLeft, 'l':
		return tok + strings.Repeat(" ", padding)
	case JustifyRight, 'r':
		return strings.Repeat(" ", padding) + tok
	case JustifyCenter, 'c':
		left := padding / 2
		return strings.Repeat(" ", left) + tok + strings.Repeat(" ", padding-left)
	}

	return tok
}

func isTrimSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r'
}

// rstrip removes trailing ASCII whitespace.
func rstrip(s string) string {
	return strings.TrimRightFunc(s, isTrimSpace)
}

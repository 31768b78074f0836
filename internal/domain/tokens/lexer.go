// Package tokens splits single source lines into tokens and derives the
// wildcard patterns used to decide whether two lines share the same shape.
package tokens

import "unicode/utf8"

// Token is one lexical span of a line. Whitespace is never a token.
type Token struct {
	Text string
	// Unterminated is set for string literals that ran into the end of the line.
	Unterminated bool
}

// Kind derives the token kind from its text.
func (t Token) Kind() Kind {
	return Classify(t.Text)
}

// multiCharOperators is scanned in order and the first match wins. No entry
// may be a prefix of a later entry, otherwise the later one is unreachable.
var multiCharOperators = []string{
	"...", "==", "!=", "<=", ">=", "//", "**", "->", "+=",
	"-=", "*=", "/=", "%=", "&=", "|=", "^=", ">>", "<<",
}

// Tokenize returns the token texts of a single line.
//
// Unterminated string literals are returned truncated at the end of the line;
// that is not an error.
func Tokenize(line string) ([]string, error) {
	toks, err := Lex(line)
	if err != nil {
		return nil, err
	}

	return Texts(toks), nil
}

// Texts returns the text of every token.
func Texts(toks []Token) []string {
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
	}

	return texts
}

// Lex scans a single line left to right.
func Lex(line string) ([]Token, error) {
	c := &cursor{line: line}
	toks := make([]Token, 0, len(line)/2)

	for !c.eof() {
		b := c.peek()

		var (
			tok Token
			err error
		)

		switch {
		case isSpace(b):
			c.bump()
			continue
		case b == '#':
			start := c.off
			c.off = len(line)
			tok.Text, err = c.spanFrom(start, "scan comment")
		case (b == 'f' || b == 'F') && isQuote(c.peekAt(1)):
			tok, err = c.scanString(true)
		case isQuote(b):
			tok, err = c.scanString(false)
		case isIdentStart(b):
			tok.Text, err = c.scanWhile(isIdentPart, "scan identifier")
		case isDigit(b):
			tok.Text, err = c.scanWhile(isNumberPart, "scan number")
		default:
			tok.Text, err = c.scanOperatorOrPunct()
		}

		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
	}

	return toks, nil
}

func (c *cursor) scanWhile(accept func(byte) bool, op string) (string, error) {
	start := c.off
	for !c.eof() && accept(c.peek()) {
		c.bump()
	}

	return c.spanFrom(start, op)
}

func (c *cursor) scanOperatorOrPunct() (string, error) {
	start := c.off

	for _, op := range multiCharOperators {
		if c.hasPrefix(op) {
			c.advance(len(op))
			return c.spanFrom(start, "scan operator")
		}
	}

	size := 1
	if c.peek() >= utf8.RuneSelf {
		if _, n := utf8.DecodeRuneInString(c.line[c.off:]); n > 1 {
			size = n
		}
	}

	c.advance(size)

	return c.spanFrom(start, "scan punctuation")
}

// scanString consumes a quoted literal starting at the cursor. A backslash
// always skips itself and the following byte.
func (c *cursor) scanString(prefixed bool) (Token, error) {
	start := c.off
	if prefixed {
		c.bump()
	}

	if c.eof() {
		return Token{}, &IndexError{Op: "scan string literal", Index: c.off, Len: len(c.line)}
	}

	quote := c.peek()

	width := 1
	if c.peekAt(1) == quote && c.peekAt(2) == quote {
		width = 3
	}

	c.advance(width)

	closed := false
	for !closed && !c.eof() {
		b := c.peek()

		switch {
		case b == '\\':
			c.advance(2)
		case b != quote:
			c.bump()
		case width == 1:
			c.bump()

			closed = true
		case c.peekAt(1) == quote && c.peekAt(2) == quote:
			c.advance(3)

			closed = true
		default:
			c.bump()
		}
	}

	text, err := c.spanFrom(start, "scan string literal")
	if err != nil {
		return Token{}, err
	}

	return Token{Text: text, Unterminated: !closed}, nil
}

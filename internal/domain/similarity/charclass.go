// Package similarity scores how visually alike two lines are and brackets
// runs of alike lines with fmt: off/on sentinels.
package similarity

import (
	"errors"
	"fmt"
	"strings"
)

// CharClass buckets a byte for the substitution matrix.
type CharClass uint8

// Character classes. The order is part of the public contract: override
// files and callers may refer to classes by name or index.
const (
	Uppercase CharClass = iota
	Lowercase
	Digit
	Whitespace
	ParenOpen
	ParenClose
	BracketOpen
	BracketClose
	BraceOpen
	BraceClose
	Dot
	Comma
	Colon
	Semicolon
	Plus
	Minus
	Asterisk
	Slash
	Backslash
	VerticalBar
	Ampersand
	LessThan
	GreaterThan
	Equal
	Percent
	Hash
	AtSign
	Exclamation
	Question
	Caret
	Tilde
	Backtick
	QuoteSingle
	QuoteDouble
	Underscore
	Dollar
	Other

	// NumClasses is the number of character classes.
	NumClasses = int(Other) + 1
)

var classNames = [NumClasses]string{
	"UPPERCASE", "LOWERCASE", "DIGIT", "WHITESPACE",
	"PAREN_OPEN", "PAREN_CLOSE", "BRACKET_OPEN", "BRACKET_CLOSE", "BRACE_OPEN", "BRACE_CLOSE",
	"DOT", "COMMA", "COLON", "SEMICOLON", "PLUS", "MINUS", "ASTERISK", "SLASH", "BACKSLASH",
	"VERTICAL_BAR", "AMPERSAND", "LESS_THAN", "GREATER_THAN", "EQUAL", "PERCENT", "HASH",
	"AT_SIGN", "EXCLAMATION", "QUESTION", "CARET", "TILDE", "BACKTICK", "QUOTE_SINGLE",
	"QUOTE_DOUBLE", "UNDERSCORE", "DOLLAR", "OTHER",
}

// ErrUnknownClass is returned for class names or indices outside the table.
var ErrUnknownClass = errors.New("unknown character class")

func (c CharClass) String() string {
	if c.Valid() {
		return classNames[c]
	}

	return fmt.Sprintf("CharClass(%d)", uint8(c))
}

// Valid reports whether c is one of the defined classes.
func (c CharClass) Valid() bool {
	return int(c) < NumClasses
}

// ParseCharClass resolves a class by its upper-case name, e.g. "PAREN_OPEN".
// Matching ignores case and surrounding whitespace.
func ParseCharClass(name string) (CharClass, error) {
	want := strings.ToUpper(strings.TrimSpace(name))

	for i, n := range classNames {
		if n == want {
			return CharClass(i), nil
		}
	}

	return Other, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

var punctClasses = map[byte]CharClass{
	'(': ParenOpen, ')': ParenClose, '[': BracketOpen, ']': BracketClose,
	'{': BraceOpen, '}': BraceClose, '.': Dot, ',': Comma, ':': Colon,
	';': Semicolon, '+': Plus, '-': Minus, '*': Asterisk, '/': Slash,
	'\\': Backslash, '|': VerticalBar, '&': Ampersand, '<': LessThan,
	'>': GreaterThan, '=': Equal, '%': Percent, '#': Hash, '@': AtSign,
	'!': Exclamation, '?': Question, '^': Caret, '~': Tilde, '`': Backtick,
	'\'': QuoteSingle, '"': QuoteDouble, '_': Underscore, '$': Dollar,
}

// Classify maps every byte to exactly one class. Bytes outside ASCII fall
// into Other.
func Classify(b byte) CharClass {
	switch {
	case b >= 'A' && b <= 'Z':
		return Uppercase
	case b >= 'a' && b <= 'z':
		return Lowercase
	case b >= '0' && b <= '9':
		return Digit
	case b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r':
		return Whitespace
	}

	if c, ok := punctClasses[b]; ok {
		return c
	}

	return Other
}

func isAlnum(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

package tokens

// Kind classifies a token. It is always derived from the token text, never
// stored on its own.
type Kind uint8

const (
	// Identifier is a name that is not a reserved keyword.
	Identifier Kind = iota
	// Keyword is a reserved Python word such as "def" or "None".
	Keyword
	// StringLiteral is a quoted literal, optionally f-prefixed.
	StringLiteral
	// Numeric is a digit-led literal.
	Numeric
	// Operator is an arithmetic, comparison, bitwise or assignment operator.
	Operator
	// Punctuation is any other single or multi-character symbol.
	Punctuation
	// Comment is a '#' comment running to the end of the line.
	Comment
)

var kindNames = [...]string{
	Identifier:    "identifier",
	Keyword:       "keyword",
	StringLiteral: "string",
	Numeric:       "numeric",
	Operator:      "operator",
	Punctuation:   "punctuation",
	Comment:       "comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// Literal reports whether tokens of this kind only match tokens with the same text.
func (k Kind) Literal() bool {
	return k == Keyword || k == Operator || k == Punctuation || k == Comment
}

var keywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {}, "def": {},
	"del": {}, "elif": {}, "else": {}, "except": {}, "finally": {}, "for": {},
	"from": {}, "global": {}, "if": {}, "import": {}, "in": {}, "is": {},
	"lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {}, "raise": {},
	"return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

var operators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "%": {}, "**": {}, "//": {}, "==": {}, "!=": {},
	"<": {}, ">": {}, "<=": {}, ">=": {}, "=": {}, "->": {}, "+=": {}, "-=": {}, "*=": {},
	"/=": {}, "%=": {}, "&": {}, "|": {}, "^": {}, ">>": {}, "<<": {}, "~": {},
}

// Classify derives the kind of a token from its text.
func Classify(text string) Kind {
	switch {
	case IsStringLiteral(text):
		return StringLiteral
	case IsIdentifier(text):
		if IsKeyword(text) {
			return Keyword
		}

		return Identifier
	case text != "" && isDigit(text[0]):
		return Numeric
	case text != "" && text[0] == '#':
		return Comment
	case IsOperator(text):
		return Operator
	}

	return Punctuation
}

// IsKeyword reports whether text is a reserved Python keyword.
func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}

// IsOperator reports whether text is one of the spacing-relevant operators.
func IsOperator(text string) bool {
	_, ok := operators[text]
	return ok
}

// IsOpener reports whether text opens a bracket.
func IsOpener(text string) bool {
	return text == "(" || text == "[" || text == "{"
}

// IsCloser reports whether text closes a bracket.
func IsCloser(text string) bool {
	return text == ")" || text == "]" || text == "}"
}

// IsStringLiteral reports whether text starts a quoted or f-prefixed literal.
func IsStringLiteral(text string) bool {
	if text == "" {
		return false
	}

	if isQuote(text[0]) {
		return true
	}

	return len(text) >= 2 && (text[0] == 'f' || text[0] == 'F') && isQuote(text[1])
}

// IsIdentifier reports whether text is an ASCII identifier or keyword.
func IsIdentifier(text string) bool {
	if text == "" || !isIdentStart(text[0]) {
		return false
	}

	for i := 1; i < len(text); i++ {
		if !isIdentPart(text[i]) {
			return false
		}
	}

	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

func isQuote(b byte) bool {
	return b == '\'' || b == '"'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentStart(b byte) bool {
	return isLetter(b) || b == '_'
}

func isIdentPart(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '_'
}

func isNumberPart(b byte) bool {
	return isDigit(b) || b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-'
}

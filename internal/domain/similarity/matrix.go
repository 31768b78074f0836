package similarity

import "fmt"

// Default tuning constants.
const (
	identityWeight   = 1.0
	keyClassWeight   = 5.0
	assignmentWeight = 10.0
	caseWeight       = 0.3
	letterDigit      = 0.2
	bracketSibling   = 0.3
	operatorSibling  = 0.4
)

// keyClasses score higher when they line up, since they carry most of the
// visual structure of aligned code.
var keyClasses = []CharClass{
	Equal, Colon, Comma, BracketOpen, ParenOpen, Plus, Minus, Asterisk, Slash, Uppercase,
}

// Weight is one entry of the substitution matrix.
type Weight struct {
	From  CharClass
	To    CharClass
	Value float64
}

// defaultWeights lists every non-zero entry of the default matrix. Entries
// later in the list override earlier ones.
func defaultWeights() []Weight {
	weights := make([]Weight, 0, NumClasses+32)

	for c := range NumClasses {
		weights = append(weights, Weight{CharClass(c), CharClass(c), identityWeight})
	}

	for _, c := range keyClasses {
		weights = append(weights, Weight{c, c, keyClassWeight})
	}

	weights = append(weights, Weight{Equal, Equal, assignmentWeight})

	symmetric := func(a, b CharClass, v float64) {
		weights = append(weights, Weight{a, b, v}, Weight{b, a, v})
	}

	symmetric(Uppercase, Lowercase, caseWeight)
	symmetric(Uppercase, Digit, letterDigit)
	symmetric(Lowercase, Digit, letterDigit)

	symmetric(ParenOpen, BracketOpen, bracketSibling)
	symmetric(ParenOpen, BraceOpen, bracketSibling)
	symmetric(BracketOpen, BraceOpen, bracketSibling)
	symmetric(ParenClose, BracketClose, bracketSibling)
	symmetric(ParenClose, BraceClose, bracketSibling)
	symmetric(BracketClose, BraceClose, bracketSibling)

	symmetric(Plus, Minus, operatorSibling)
	symmetric(Asterisk, Slash, operatorSibling)
	symmetric(LessThan, GreaterThan, operatorSibling)

	return weights
}

// Matrix holds a similarity weight for every ordered pair of classes.
// Weights are not required to be symmetric.
type Matrix struct {
	w [NumClasses][NumClasses]float64
}

// DefaultMatrix returns the tuned default weights.
func DefaultMatrix() Matrix {
	var m Matrix

	for _, w := range defaultWeights() {
		m.w[w.From][w.To] = w.Value
	}

	return m
}

// Get returns the weight for the ordered pair (a, b). Invalid classes weigh 0.
func (m *Matrix) Get(a, b CharClass) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}

	return m.w[a][b]
}

// Set overrides the weight for the ordered pair (a, b).
func (m *Matrix) Set(a, b CharClass, value float64) error {
	if !a.Valid() {
		return fmt.Errorf("set weight: %w: %d", ErrUnknownClass, a)
	}

	if !b.Valid() {
		return fmt.Errorf("set weight: %w: %d", ErrUnknownClass, b)
	}

	if value < 0 {
		return fmt.Errorf("set weight %s/%s: negative weight %v", a, b, value)
	}

	m.w[a][b] = value

	return nil
}

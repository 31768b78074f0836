package similarity

import (
	"math"
	"strings"
)

const (
	alignmentShare = 0.7
	lengthShare    = 0.3
)

// Score rates how alike two lines look column by column under m. Lines with
// different indentation widths never score above zero.
func (m *Matrix) Score(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	if indentWidth(a) != indentWidth(b) {
		return 0
	}

	shorter := min(len(a), len(b))
	longer := max(len(a), len(b))

	var sum float64

	for i := range shorter {
		if isAlnum(a[i]) && isAlnum(b[i]) && a[i] != b[i] {
			continue
		}

		sum += m.Get(Classify(a[i]), Classify(b[i]))
	}

	alignment := sum / math.Sqrt(float64(longer))
	lengthPenalty := 1 - float64(longer-shorter)/float64(longer)

	return alignmentShare*alignment + lengthShare*lengthPenalty
}

// indentWidth is the offset of the first byte that is neither space nor tab,
// or -1 for a line made only of those.
func indentWidth(line string) int {
	n := len(line) - len(strings.TrimLeft(line, " \t"))
	if n == len(line) {
		return -1
	}

	return n
}

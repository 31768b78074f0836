package tokens

import "fmt"

// IndexError reports an out-of-range access while scanning or grouping lines.
// It carries the failing operation and index so callers can surface a precise
// message instead of recovering from a runtime panic.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range (length %d)", e.Op, e.Index, e.Len)
}

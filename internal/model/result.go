package model

// Operation names the transformation applied to a file.
type Operation string

const (
	// OperationAlign groups same-shaped lines and aligns them in columns.
	OperationAlign Operation = "align"
	// OperationMark brackets similar runs with fmt: off/on sentinels.
	OperationMark Operation = "mark"
	// OperationUnmark removes fmt: off/on sentinels.
	OperationUnmark Operation = "unmark"
)

// Result is the outcome of one operation on one file.
type Result struct {
	Source    Source
	Operation Operation
	Changed   bool
	// Formatted holds the new buffer. It is only kept when the caller asked
	// for the output to be printed.
	Formatted string
	Diff      string
	// Blocks counts the aligned blocks or marked regions in the output.
	Blocks int
	// Err is kept as text so results can be spilled to disk.
	Err string
}

// Failed reports whether processing the file failed.
func (r Result) Failed() bool {
	return r.Err != ""
}

// Estimate describes what colfmt would find in a file without rewriting it.
type Estimate struct {
	Source      Source
	AlignBlocks int
	OneLiners   int
	// SimilarityBlocks is -1 when no similarity threshold is configured.
	SimilarityBlocks int
}

// Summary aggregates results of a run.
type Summary struct {
	Files     int
	Changed   int
	Unchanged int
	Failed    int
	Blocks    int
}

// MatrixOverride replaces one weight of the similarity substitution matrix.
// Classes are given by name, e.g. "PAREN_OPEN".
type MatrixOverride struct {
	From   string  `toml:"from"`
	To     string  `toml:"to"`
	Weight float64 `toml:"weight"`
}

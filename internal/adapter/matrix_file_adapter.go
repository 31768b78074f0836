package adapter

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	m "colfmt.dev/pkg/colfmt/internal/model"
)

// MatrixFileAdapter loads substitution-matrix overrides.
type MatrixFileAdapter interface {
	Load(path m.Path) ([]m.MatrixOverride, error)
}

// TOMLMatrixFileAdapter reads overrides from a TOML file of the form
//
//	[[weight]]
//	from = "QUOTE_SINGLE"
//	to = "QUOTE_DOUBLE"
//	weight = 0.7
type TOMLMatrixFileAdapter struct{}

// NewMatrixFileAdapter constructs a TOMLMatrixFileAdapter.
func NewMatrixFileAdapter() *TOMLMatrixFileAdapter {
	return &TOMLMatrixFileAdapter{}
}

type matrixFile struct {
	Weights []m.MatrixOverride `toml:"weight"`
}

// Load parses the file at path. Unknown keys are rejected so that typos do
// not silently leave the default weights in place.
func (a *TOMLMatrixFileAdapter) Load(path m.Path) ([]m.MatrixOverride, error) {
	var file matrixFile

	meta, err := toml.DecodeFile(string(path), &file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	for i, w := range file.Weights {
		if strings.TrimSpace(w.From) == "" || strings.TrimSpace(w.To) == "" {
			return nil, fmt.Errorf("%s: weight %d: from and to are required", path, i)
		}

		if w.Weight < 0 {
			return nil, fmt.Errorf("%s: weight %d: negative weight %v", path, i, w.Weight)
		}
	}

	return file.Weights, nil
}

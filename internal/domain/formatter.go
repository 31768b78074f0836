// Package domain runs the colfmt engines over source files: the Formatter
// applies them to one buffer, the Workflow drives a whole run.
package domain

import (
	"fmt"
	"log/slog"

	"colfmt.dev/pkg/colfmt/internal/domain/align"
	"colfmt.dev/pkg/colfmt/internal/domain/buffer"
	"colfmt.dev/pkg/colfmt/internal/domain/similarity"
	m "colfmt.dev/pkg/colfmt/internal/model"
)

// Output is a formatted buffer together with the number of blocks the
// operation produced or removed.
type Output struct {
	Code   string
	Blocks int
}

// Counts is what an estimation finds in one buffer.
type Counts struct {
	AlignBlocks int
	OneLiners   int
	// SimilarityBlocks is -1 when no threshold was given.
	SimilarityBlocks int
}

// Formatter applies the text engines to whole buffers. Every call is
// independent, so a Formatter can be shared between workers.
type Formatter interface {
	Align(code string, opts align.Options) (Output, error)
	Mark(code string, threshold float64) (Output, error)
	Unmark(code string) Output
	Estimate(code string, threshold float64) (Counts, error)
	// ApplyOverrides replaces weights of the similarity matrix.
	ApplyOverrides(overrides []m.MatrixOverride) error
}

type formatter struct {
	detector *similarity.Detector
}

// NewFormatter returns a Formatter using the default similarity matrix.
func NewFormatter() Formatter {
	return &formatter{detector: similarity.NewDetector()}
}

// Align counts aligned blocks and wrapped one-liners as blocks.
func (f *formatter) Align(code string, opts align.Options) (Output, error) {
	res, err := align.Reformat(buffer.Split(code), opts)
	if err != nil {
		return Output{}, fmt.Errorf("align: %w", err)
	}

	return Output{Code: buffer.Join(res.Lines), Blocks: res.Blocks + res.OneLiners}, nil
}

func (f *formatter) Mark(code string, threshold float64) (Output, error) {
	marked, err := f.detector.Mark(code, threshold)
	if err != nil {
		return Output{}, err
	}

	return Output{Code: marked, Blocks: similarity.CountBlocks(marked)}, nil
}

func (f *formatter) Unmark(code string) Output {
	return Output{Code: similarity.Unmark(code), Blocks: similarity.CountBlocks(code)}
}

func (f *formatter) Estimate(code string, threshold float64) (Counts, error) {
	res, err := align.Reformat(buffer.Split(code), align.Options{})
	if err != nil {
		return Counts{}, fmt.Errorf("estimate: %w", err)
	}

	counts := Counts{AlignBlocks: res.Blocks, OneLiners: res.OneLiners}
	counts.SimilarityBlocks = -1

	if threshold > 0 {
		marked, err := f.detector.Mark(code, threshold)
		if err != nil {
			return Counts{}, fmt.Errorf("estimate: %w", err)
		}

		counts.SimilarityBlocks = similarity.CountBlocks(marked)
	}

	return counts, nil
}

func (f *formatter) ApplyOverrides(overrides []m.MatrixOverride) error {
	for i, override := range overrides {
		from, err := similarity.ParseCharClass(override.From)
		if err != nil {
			return fmt.Errorf("weight %d: from: %w", i+1, err)
		}

		to, err := similarity.ParseCharClass(override.To)
		if err != nil {
			return fmt.Errorf("weight %d: to: %w", i+1, err)
		}

		if err := f.detector.SetSubstitution(from, to, override.Weight); err != nil {
			return fmt.Errorf("weight %d: %w", i+1, err)
		}

		slog.Debug("matrix override", "from", from, "to", to, "weight", override.Weight)
	}

	return nil
}

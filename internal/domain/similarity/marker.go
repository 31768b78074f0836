package similarity

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"colfmt.dev/pkg/colfmt/internal/domain/buffer"
	"colfmt.dev/pkg/colfmt/internal/domain/tokens"
)

// ErrThresholdRequired is returned when Mark is called without a positive
// similarity threshold. There is no default threshold.
var ErrThresholdRequired = errors.New("similarity threshold must be set and greater than zero")

// Detector marks runs of similar lines as hands-off regions. Its matrix can
// be tuned while other goroutines are marking.
type Detector struct {
	mu     sync.RWMutex
	matrix Matrix
}

// NewDetector returns a detector using DefaultMatrix.
func NewDetector() *Detector {
	return &Detector{matrix: DefaultMatrix()}
}

// SetSubstitution overrides one matrix weight.
func (d *Detector) SetSubstitution(a, b CharClass, value float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.matrix.Set(a, b, value)
}

// Matrix returns a copy of the current weights.
func (d *Detector) Matrix() Matrix {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.matrix
}

// Score rates two lines with the current weights.
func (d *Detector) Score(a, b string) float64 {
	m := d.Matrix()
	return m.Score(a, b)
}

// Mark brackets every run of lines that score at least threshold against
// their predecessor with fmt: off/on sentinels. Lone one-line compound
// statements are bracketed on their own. Existing fmt: off/on regions and
// stray sentinel lines are copied unchanged and never scored against, so
// marking marked code changes nothing.
func (d *Detector) Mark(code string, threshold float64) (string, error) {
	lines := buffer.Split(code)

	out, err := d.MarkLines(lines, threshold)
	if err != nil {
		return "", err
	}

	if len(lines) == 0 {
		return code, nil
	}

	return buffer.Join(out), nil
}

// MarkLines is Mark over a pre-split buffer.
func (d *Detector) MarkLines(lines []string, threshold float64) ([]string, error) {
	if !(threshold > 0) {
		return nil, fmt.Errorf("mark: %w (got %v)", ErrThresholdRequired, threshold)
	}

	if len(lines) == 0 {
		return []string{}, nil
	}

	s := &markState{
		matrix:    d.Matrix(),
		threshold: threshold,
		out:       make([]string, 0, len(lines)+4),
		wrapEnd:   -1,
	}

	boundary := buffer.Protected(lines)
	for i, line := range lines {
		boundary[i] = boundary[i] || buffer.IsSentinel(line)
	}

	for i, line := range lines {
		switch {
		case boundary[i]:
			s.close()
			s.push(line)
		case i == 0 || boundary[i-1]:
			s.push(line)
		default:
			s.step(lines[i-1], line)
		}
	}

	s.close()

	return s.out, nil
}

// markState is the working state of a single Mark call.
type markState struct {
	matrix    Matrix
	threshold float64
	out       []string
	inBlock   bool
	// wrapEnd is the index in out of the closing sentinel of the last
	// one-liner wrap, or -1.
	wrapEnd int
}

func (s *markState) step(prev, curr string) {
	if IsMultiline(prev) || IsMultiline(curr) {
		s.close()
		s.push(curr)

		return
	}

	indent := buffer.Indentation(curr)

	if !s.inBlock && tokens.IsOneLineStatement(curr) {
		s.close()
		s.out = append(s.out, buffer.Wrap(indent, curr)...)
		s.wrapEnd = len(s.out) - 1

		return
	}

	score := s.matrix.Score(prev, curr)
	if score < s.threshold {
		s.close()
		s.push(curr)

		return
	}

	if !s.inBlock {
		s.open(indent)
	}

	s.push(curr)
}

func (s *markState) push(line string) {
	s.out = append(s.out, line)
}

// open starts a block at the previously emitted line. When that line closes
// a one-liner wrapped by this call, the wrap is extended instead of nesting a
// new one.
func (s *markState) open(indent string) {
	s.inBlock = true

	last := len(s.out) - 1
	if last == s.wrapEnd {
		s.out = s.out[:last]
		s.wrapEnd = -1
		slog.Debug("extend one-liner region", "line", len(s.out))

		return
	}

	prev := s.out[last]
	s.out[last] = indent + buffer.SentinelOff
	s.out = append(s.out, prev)
	slog.Debug("open similarity region", "line", last)
}

// close ends an open block. The closing sentinel takes the indentation of
// the most recent non-sentinel line.
func (s *markState) close() {
	if !s.inBlock {
		return
	}

	s.inBlock = false

	indent := ""

	for i := len(s.out) - 1; i >= 0; i-- {
		if !buffer.IsSentinel(s.out[i]) {
			indent = buffer.Indentation(s.out[i])
			break
		}
	}

	s.out = append(s.out, indent+buffer.SentinelOn)
	slog.Debug("close similarity region", "line", len(s.out)-1)
}

// CountBlocks counts the marked regions in code.
func CountBlocks(code string) int {
	return buffer.CountRegions(buffer.Split(code))
}

package align

import (
	"fmt"
	"log/slog"
	"strings"

	"colfmt.dev/pkg/colfmt/internal/domain/buffer"
	"colfmt.dev/pkg/colfmt/internal/domain/tokens"
)

// lengthTolerance is the largest raw-length difference between a line and
// the first line of the block it joins.
const lengthTolerance = 10

// Line is the record built once for every input line.
type Line struct {
	Index   int
	Raw     string
	Indent  string
	Content string
	Tokens  []string
	Pattern []string
}

// Blank reports whether the line has no content after its indentation.
func (l Line) Blank() bool {
	return l.Content == ""
}

// NewLines tokenizes every line and derives its pattern.
func NewLines(lines []string) ([]Line, error) {
	records := make([]Line, 0, len(lines))

	for i, raw := range lines {
		content := strings.TrimLeft(raw, " \t")
		rec := Line{
			Index:   i,
			Raw:     raw,
			Indent:  raw[:len(raw)-len(content)],
			Content: content,
		}

		if !rec.Blank() {
			toks, err := tokens.Tokenize(content)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}

			rec.Tokens = toks
			rec.Pattern = tokens.Pattern(toks)
		}

		records = append(records, rec)
	}

	return records, nil
}

// Group is either one blank line or a run of lines that share indentation,
// pattern and approximate length.
type Group struct {
	Lines []Line
	Blank bool
	// ClosedByBlank is set on a block that ended at a blank line.
	ClosedByBlank bool
}

// Aligned reports whether the group is laid out in columns.
func (g Group) Aligned() bool {
	return !g.Blank && len(g.Lines) > 1
}

// OneLiner reports whether the group is a lone one-line compound statement.
func (g Group) OneLiner() bool {
	return !g.Blank && len(g.Lines) == 1 && tokens.IsOneLineStatement(g.Lines[0].Raw)
}

// Groups partitions records into blocks. A line joins the open block only if
// it matches the block's first line, not merely its predecessor.
func Groups(records []Line) []Group {
	var (
		groups []Group
		block  []Line
	)

	flush := func(closedByBlank bool) {
		if len(block) > 0 {
			groups = append(groups, Group{Lines: block, ClosedByBlank: closedByBlank})
			block = nil
		}
	}

	for _, rec := range records {
		if rec.Blank() {
			flush(true)

			groups = append(groups, Group{Lines: []Line{rec}, Blank: true})

			continue
		}

		if len(block) > 0 && !joins(block[0], rec) {
			flush(false)
		}

		block = append(block, rec)
	}

	flush(false)

	return groups
}

func joins(anchor, rec Line) bool {
	return rec.Indent == anchor.Indent &&
		abs(len(rec.Raw)-len(anchor.Raw)) <= lengthTolerance &&
		tokens.SamePattern(rec.Pattern, anchor.Pattern)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

// Options controls ReformatLines.
type Options struct {
	// AddSentinels brackets every aligned block with fmt: off/on comments,
	// except blocks that end at a blank line.
	AddSentinels bool
	// Debug traces every processed line at debug level.
	Debug bool
}

// Result is the outcome of Reformat.
type Result struct {
	Lines []string
	// Blocks counts the groups laid out in columns.
	Blocks int
	// OneLiners counts the one-line statements that were wrapped.
	OneLiners int
}

// ReformatBuffer runs ReformatLines over a newline separated buffer.
func ReformatBuffer(code string, opts Options) (string, error) {
	out, err := ReformatLines(buffer.Split(code), opts)
	if err != nil {
		return "", err
	}

	return buffer.Join(out), nil
}

// ReformatLines aligns every block of matching lines into columns. Lone
// one-line compound statements are always wrapped in sentinels.
func ReformatLines(lines []string, opts Options) ([]string, error) {
	res, err := Reformat(lines, opts)
	if err != nil {
		return nil, err
	}

	return res.Lines, nil
}

// Reformat is ReformatLines that also counts what it changed. Lines inside
// an existing fmt: off/on region are copied unchanged.
func Reformat(lines []string, opts Options) (Result, error) {
	records, err := NewLines(lines)
	if err != nil {
		return Result{}, fmt.Errorf("reformat: %w", err)
	}

	protected := buffer.Protected(lines)
	res := Result{Lines: make([]string, 0, len(lines))}

	for start := 0; start < len(records); {
		if protected[start] {
			res.Lines = append(res.Lines, lines[start])
			start++

			continue
		}

		end := start
		for end < len(records) && !protected[end] {
			end++
		}

		for _, group := range Groups(records[start:end]) {
			if err := res.add(group, opts); err != nil {
				return Result{}, fmt.Errorf("reformat: %w", err)
			}
		}

		start = end
	}

	return res, nil
}

func (r *Result) add(group Group, opts Options) error {
	if opts.Debug {
		for _, rec := range group.Lines {
			slog.Debug("reformat", "line", rec.Index, "text", rec.Raw)
		}
	}

	emitted, err := emit(group, opts.AddSentinels)
	if err != nil {
		return err
	}

	switch {
	case group.Aligned():
		r.Blocks++
	case group.OneLiner():
		r.OneLiners++
	}

	r.Lines = append(r.Lines, emitted...)

	return nil
}

func emit(group Group, addSentinels bool) ([]string, error) {
	if len(group.Lines) == 0 {
		return nil, &tokens.IndexError{Op: "emit group", Index: 0, Len: 0}
	}

	first := group.Lines[0]

	switch {
	case group.Blank:
		return []string{rstrip(first.Raw)}, nil
	case group.OneLiner():
		return buffer.Wrap(first.Indent, rstrip(first.Raw)), nil
	case !group.Aligned():
		return []string{rstrip(first.Raw)}, nil
	}

	rows := alignRows(group.Lines)
	if addSentinels && !group.ClosedByBlank {
		return buffer.Wrap(first.Indent, rows...), nil
	}

	return rows, nil
}

// alignRows formats every member and pads each column to the widest cell in
// it. Shorter rows simply have fewer columns.
func alignRows(lines []Line) []string {
	formatted := make([][]string, len(lines))

	var widths []int

	for i, rec := range lines {
		formatted[i] = FormatTokens(rec.Tokens)

		for j, cell := range formatted[i] {
			if j == len(widths) {
				widths = append(widths, 0)
			}

			widths[j] = max(widths[j], len(cell))
		}
	}

	justs := make([]Justification, len(widths))
	for i := range justs {
		justs[i] = JustifyLeft
	}

	indent := lines[0].Indent
	rows := make([]string, 0, len(lines))

	for _, cells := range formatted {
		n := len(cells)
		rows = append(rows, indent+JoinTokens(cells, widths[:n], justs[:n], true))
	}

	return rows
}

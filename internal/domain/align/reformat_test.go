package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	off = "#             fmt: off"
	on  = "#             fmt: on"
)

func TestReformatLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		opts  Options
		want  []string
	}{
		{
			name:  "aligns assignment columns",
			lines: []string{"x = 1", "yy = 22"},
			want:  []string{"x  = 1", "yy = 22"},
		},
		{
			name:  "wraps lone one-liner",
			lines: []string{"if x: y = 1"},
			want:  []string{off, "if x: y = 1", on},
		},
		{
			name:  "wraps lone one-liner with its indentation",
			lines: []string{"    for i in xs: print(i)   "},
			want:  []string{"    " + off, "    for i in xs: print(i)", "    " + on},
		},
		{
			name:  "adds sentinels around aligned block",
			lines: []string{"  a = 1", "  bb = 2"},
			opts:  Options{AddSentinels: true},
			want:  []string{"  " + off, "  a  = 1", "  bb = 2", "  " + on},
		},
		{
			name:  "block ended by a blank line gets no sentinels",
			lines: []string{"a = 1", "bb = 2", "", "c = 3"},
			opts:  Options{AddSentinels: true},
			want:  []string{"a  = 1", "bb = 2", "", "c = 3"},
		},
		{
			name:  "block ended by a different line gets sentinels",
			lines: []string{"a = 1", "bb = 2", "print(a)"},
			opts:  Options{AddSentinels: true},
			want:  []string{off, "a  = 1", "bb = 2", on, "print(a)"},
		},
		{
			name:  "existing region is copied unchanged",
			lines: []string{off, "x = 1", "yy   =   22  ", on, "a = 1", "bb = 2"},
			want:  []string{off, "x = 1", "yy   =   22  ", on, "a  = 1", "bb = 2"},
		},
		{
			name:  "wrapped one-liner is not wrapped again",
			lines: []string{"x = 1", "  " + off, "  if x: y = 1", "  " + on, "z = 2"},
			want:  []string{"x = 1", "  " + off, "  if x: y = 1", "  " + on, "z = 2"},
		},
		{
			name:  "unclosed opening sentinel is an ordinary comment",
			lines: []string{off, "if x: y = 1"},
			want:  []string{off, off, "if x: y = 1", on},
		},
		{
			name:  "single plain line is only right-trimmed",
			lines: []string{"x = compute(a,b)   "},
			opts:  Options{AddSentinels: true},
			want:  []string{"x = compute(a,b)"},
		},
		{
			name:  "blank line splits blocks and is trimmed",
			lines: []string{"a = 1", "bb = 2", "   ", "c = 3"},
			want:  []string{"a  = 1", "bb = 2", "", "c = 3"},
		},
		{
			name:  "different indentation starts a new block",
			lines: []string{"a = 1", "  bb = 2"},
			want:  []string{"a = 1", "  bb = 2"},
		},
		{
			name:  "different pattern starts a new block",
			lines: []string{"a = 1", "bb = 'x'"},
			want:  []string{"a = 1", "bb = 'x'"},
		},
		{
			name: "length is measured against the first line of the block",
			lines: []string{
				"x = 1",
				"xxxxxxxx = 1",
				"xxxxxxxxxxxxxx = 1",
			},
			want: []string{
				"x        = 1",
				"xxxxxxxx = 1",
				"xxxxxxxxxxxxxx = 1",
			},
		},
		{
			name:  "normalizes spacing inside a block",
			lines: []string{"f(a,b)", "gg( c ,d )"},
			want:  []string{"f (a, b)", "gg(c, d)"},
		},
		{
			name:  "matching one-liners align instead of wrapping",
			lines: []string{"if x: y = 1", "if z: w = 2"},
			want:  []string{"if x: y = 1", "if z: w = 2"},
		},
		{
			name:  "comment lines pass through",
			lines: []string{"# heading  ", "x = 1"},
			want:  []string{"# heading", "x = 1"},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReformatLines(tt.lines, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReformatLines_Idempotent(t *testing.T) {
	input := []string{
		"name = 'alice'",
		"age  = 'thirty'",
		"",
		"    a = f(1, 2)",
		"    bbb = g(3, 4)",
		"if ok: run()",
	}

	for _, opts := range []Options{{}, {AddSentinels: true}} {
		once, err := ReformatLines(input, opts)
		require.NoError(t, err)

		twice, err := ReformatLines(once, opts)
		require.NoError(t, err)

		thrice, err := ReformatLines(twice, opts)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
		assert.Equal(t, once, thrice)
	}

	once, err := ReformatLines(input, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"name = 'alice'",
		"age  = 'thirty'",
		"",
		"    a   = f(1, 2)",
		"    bbb = g(3, 4)",
		off,
		"if ok: run()",
		on,
	}, once)
}

func TestReformat_Counts(t *testing.T) {
	res, err := Reformat([]string{
		"x = 1",
		"yy = 2",
		"",
		"if a: b()",
		off,
		"if c: d()",
		on,
		"print(x)",
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Blocks)
	assert.Equal(t, 1, res.OneLiners, "the wrapped one-liner is not counted")
	assert.Len(t, res.Lines, 10)
}

func TestReformatLines_DebugDoesNotChangeOutput(t *testing.T) {
	lines := []string{"x = 1", "yy = 22"}

	plain, err := ReformatLines(lines, Options{})
	require.NoError(t, err)

	traced, err := ReformatLines(lines, Options{Debug: true})
	require.NoError(t, err)

	assert.Equal(t, plain, traced)
}

func TestReformatBuffer(t *testing.T) {
	got, err := ReformatBuffer("x = 1\nyy = 22\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, "x  = 1\nyy = 22\n", got)

	got, err = ReformatBuffer("", Options{})
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = ReformatBuffer("a = 1\n\n\nb = 2", Options{})
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n\n\nb = 2\n", got)
}

func TestAlignRows_Ragged(t *testing.T) {
	rows := alignRows([]Line{
		{Tokens: []string{"a", "=", "1"}},
		{Tokens: []string{"bb", "=", "22", "# c"}},
	})

	assert.Equal(t, []string{"a  = 1", "bb = 22 # c"}, rows)
}

func TestGroups(t *testing.T) {
	records, err := NewLines([]string{
		"x = 1",
		"yy = 2",
		"",
		"if a: b()",
		"print(x)",
	})
	require.NoError(t, err)

	groups := Groups(records)
	require.Len(t, groups, 4)

	assert.True(t, groups[0].Aligned())
	assert.True(t, groups[0].ClosedByBlank)
	assert.Len(t, groups[0].Lines, 2)
	assert.True(t, groups[1].Blank)
	assert.False(t, groups[1].Aligned())
	assert.True(t, groups[2].OneLiner())
	assert.False(t, groups[2].ClosedByBlank)
	assert.False(t, groups[3].OneLiner())
	assert.False(t, groups[3].Aligned())
}

func TestNewLines(t *testing.T) {
	records, err := NewLines([]string{"\t  x = 'a'", "   "})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 0, records[0].Index)
	assert.Equal(t, "\t  ", records[0].Indent)
	assert.Equal(t, "x = 'a'", records[0].Content)
	assert.Equal(t, []string{"x", "=", "'a'"}, records[0].Tokens)
	assert.Equal(t, []string{"ID", "=", "STR"}, records[0].Pattern)

	assert.True(t, records[1].Blank())
	assert.Equal(t, "   ", records[1].Indent)
	assert.Nil(t, records[1].Tokens)
}

func TestEmit_EmptyGroup(t *testing.T) {
	_, err := emit(Group{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emit group")
}

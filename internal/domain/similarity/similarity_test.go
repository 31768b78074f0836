package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   byte
		want CharClass
	}{
		{'A', Uppercase},
		{'z', Lowercase},
		{'7', Digit},
		{' ', Whitespace},
		{'\t', Whitespace},
		{'(', ParenOpen},
		{'}', BraceClose},
		{'=', Equal},
		{'\\', Backslash},
		{'_', Underscore},
		{'"', QuoteDouble},
		{'$', Dollar},
		{0x00, Other},
		{0xC3, Other},
	}

	for _, tt := range tests {
		t.Run(string(rune(tt.in)), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassify_TotalOverBytes(t *testing.T) {
	for b := range 256 {
		assert.True(t, Classify(byte(b)).Valid(), "byte %d", b)
	}
}

func TestCharClass_Names(t *testing.T) {
	assert.Equal(t, 37, NumClasses)
	assert.Equal(t, "UPPERCASE", Uppercase.String())
	assert.Equal(t, "OTHER", Other.String())
	assert.Equal(t, "CharClass(99)", CharClass(99).String())

	for c := range NumClasses {
		parsed, err := ParseCharClass(CharClass(c).String())
		require.NoError(t, err)
		assert.Equal(t, CharClass(c), parsed)
	}

	got, err := ParseCharClass(" paren_open ")
	require.NoError(t, err)
	assert.Equal(t, ParenOpen, got)

	_, err = ParseCharClass("SMILEY")
	require.ErrorIs(t, err, ErrUnknownClass)
}

func TestDefaultMatrix(t *testing.T) {
	m := DefaultMatrix()

	tests := []struct {
		a, b CharClass
		want float64
	}{
		{Equal, Equal, 10},
		{Colon, Colon, 5},
		{Uppercase, Uppercase, 5},
		{Lowercase, Lowercase, 1},
		{Whitespace, Whitespace, 1},
		{Uppercase, Lowercase, 0.3},
		{Digit, Lowercase, 0.2},
		{BracketClose, BraceClose, 0.3},
		{GreaterThan, LessThan, 0.4},
		{QuoteSingle, QuoteDouble, 0},
		{Equal, Colon, 0},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"/"+tt.b.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Get(tt.a, tt.b), 1e-9)
		})
	}

	assert.Zero(t, m.Get(CharClass(99), Equal))
}

func TestMatrix_Set(t *testing.T) {
	m := DefaultMatrix()

	require.NoError(t, m.Set(QuoteSingle, QuoteDouble, 0.7))
	assert.InDelta(t, 0.7, m.Get(QuoteSingle, QuoteDouble), 1e-9)
	assert.Zero(t, m.Get(QuoteDouble, QuoteSingle), "weights are directional")

	require.ErrorIs(t, m.Set(CharClass(99), Equal, 1), ErrUnknownClass)
	require.ErrorIs(t, m.Set(Equal, CharClass(40), 1), ErrUnknownClass)
	require.Error(t, m.Set(Equal, Equal, -1))
}

func TestScore(t *testing.T) {
	m := DefaultMatrix()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"empty", "", "x = 1", 0},
		{"indentation differs", "x = 1", "  x = 1", 0},
		{"blank against code", "   ", "  x", 0},
		{"identical", "x = 1", "x = 1", 0.7*14/math.Sqrt(5) + 0.3},
		{"only length agrees", "a = 1", "bb = 2", 0.3 * 5 / 6},
		{"aligned assignments", "bb = 2", "cc = 3", 0.7*12/math.Sqrt(6) + 0.3},
		{"whitespace only", "   ", "   ", 0.7*3/math.Sqrt(3) + 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Score(tt.a, tt.b), 1e-9)
		})
	}
}

func TestDetector_SetSubstitutionChangesScore(t *testing.T) {
	d := NewDetector()
	before := d.Score("x = 1", "x = 1")

	require.NoError(t, d.SetSubstitution(Equal, Equal, 0))

	after := d.Score("x = 1", "x = 1")
	assert.Less(t, after, before)
	assert.InDelta(t, 0.7*4/math.Sqrt(5)+0.3, after, 1e-9)

	require.ErrorIs(t, d.SetSubstitution(CharClass(NumClasses), Equal, 1), ErrUnknownClass)
}

func TestIsMultiline(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", false},
		{"x = 1", false},
		{"s = 'a(b'", false},
		{"f(a, [b])", false},
		{`x = """start of docstring`, true},
		{"x = 'open", true},
		{"x = (1,", true},
		{")", true},
		{`x = 1 + \`, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMultiline(tt.line))
		})
	}
}

func TestMark(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		threshold float64
		want      string
	}{
		{
			name:      "similar run is bracketed",
			code:      "a = 1\nbb = 2\ncc = 3\n",
			threshold: 0.1,
			want:      off + "\na = 1\nbb = 2\ncc = 3\n" + on + "\n",
		},
		{
			name:      "strict threshold leaves code alone",
			code:      "a = 1\nbb = 2\ncc = 3\n",
			threshold: 100,
			want:      "a = 1\nbb = 2\ncc = 3\n",
		},
		{
			name:      "one-liner is wrapped on its own",
			code:      "x = 1\nif x: y = 1\nz = 2\n",
			threshold: 100,
			want:      "x = 1\n" + off + "\nif x: y = 1\n" + on + "\nz = 2\n",
		},
		{
			name:      "closing sentinel follows the block indentation",
			code:      "    a = 1\n    bb = 2\nc = 3\n",
			threshold: 0.1,
			want:      "    " + off + "\n    a = 1\n    bb = 2\n    " + on + "\nc = 3\n",
		},
		{
			name:      "multi-line constructs pass through",
			code:      "a = 1\nb = (1,\n2)\nc = 3\n",
			threshold: 0.1,
			want:      "a = 1\nb = (1,\n2)\nc = 3\n",
		},
		{
			name:      "block after one-liner extends its region",
			code:      "a = 0\nif x: y = 1\nab c: y = 1\n",
			threshold: 1,
			want:      "a = 0\n" + off + "\nif x: y = 1\nab c: y = 1\n" + on + "\n",
		},
		{
			name:      "stray closing sentinel is kept",
			code:      "x = 1\n" + on + "\na = 1\nbb = 2\n",
			threshold: 0.1,
			want:      "x = 1\n" + on + "\n" + off + "\na = 1\nbb = 2\n" + on + "\n",
		},
		{
			name:      "stray closing sentinel at the top is kept",
			code:      on + "\na = 1\n",
			threshold: 0.1,
			want:      on + "\na = 1\n",
		},
		{
			name:      "existing region is left alone",
			code:      off + "\nx = 1\nyy   = 2\n" + on + "\nz = 3\n",
			threshold: 0.1,
			want:      off + "\nx = 1\nyy   = 2\n" + on + "\nz = 3\n",
		},
		{
			name:      "missing trailing newline is added",
			code:      "a = 1",
			threshold: 1,
			want:      "a = 1\n",
		},
		{
			name:      "empty input",
			code:      "",
			threshold: 1,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDetector().Mark(tt.code, tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMark_MarkedCodeIsStable(t *testing.T) {
	tests := []struct {
		code      string
		threshold float64
	}{
		{"x = 1\nif x: y = 1\nz = 2\n", 100},
		{"a = 0\nif x: y = 1\nab c: y = 1\n", 1},
		{"a = 1\nbb = 2\ncc = 3\n\n    if a: b()\n    if c: d()\n", 0.1},
	}

	d := NewDetector()

	for _, tt := range tests {
		once, err := d.Mark(tt.code, tt.threshold)
		require.NoError(t, err)

		twice, err := d.Mark(once, tt.threshold)
		require.NoError(t, err)

		assert.Equal(t, once, twice, tt.code)
		assert.Equal(t, tt.code, Unmark(twice))
	}
}

func TestMark_ThresholdRequired(t *testing.T) {
	d := NewDetector()

	for _, threshold := range []float64{0, -1, math.NaN()} {
		_, err := d.Mark("a = 1\n", threshold)
		require.ErrorIs(t, err, ErrThresholdRequired)
	}
}

func TestMark_ConcurrentWithTuning(t *testing.T) {
	d := NewDetector()
	code := "a = 1\nbb = 2\ncc = 3\n"

	done := make(chan string, 8)
	for range 8 {
		go func() {
			got, err := d.Mark(code, 0.1)
			if err != nil {
				done <- err.Error()
				return
			}
			done <- got
		}()
	}

	for range 8 {
		require.NoError(t, d.SetSubstitution(Equal, Equal, 10))
	}

	for range 8 {
		assert.Equal(t, off+"\na = 1\nbb = 2\ncc = 3\n"+on+"\n", <-done)
	}
}

func TestUnmark(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"empty", "", ""},
		{"no sentinels", "a = 1\nb = 2\n", "a = 1\nb = 2\n"},
		{"drops sentinels", off + "\na = 1\n" + on + "\n", "a = 1\n"},
		{"drops indented sentinels", "  " + off + "\n  a = 1\n  " + on + "\n", "  a = 1\n"},
		{"collapses blank runs", "a\n\n  \n\nb\n", "a\n\nb\n"},
		{"marker inside other text", "x = 1  #             fmt: skip\ny = 2\n", "y = 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unmark(tt.code))
		})
	}
}

func TestMarkUnmark_RestoresContent(t *testing.T) {
	code := "a = 1\nbb = 2\ncc = 3\n"

	marked, err := NewDetector().Mark(code, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 1, CountBlocks(marked))
	assert.Equal(t, code, Unmark(marked))

	mixed := "import os\n\n\nx = 1\nif x: y = 1\n    a = f(1)\n    bb = f(2)\n"
	marked, err = NewDetector().Mark(mixed, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "import os\n\nx = 1\nif x: y = 1\n    a = f(1)\n    bb = f(2)\n", Unmark(marked))
}

const (
	off = "#             fmt: off"
	on  = "#             fmt: on"
)

package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{"empty", "", nil},
		{"single newline", "\n", []string{""}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"inner blank lines", "a\n\n\nb\n", []string{"a", "", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.code))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, "a\n\nb\n", Join([]string{"a", "", "b"}))
}

func TestIndentation(t *testing.T) {
	assert.Equal(t, "", Indentation("x = 1"))
	assert.Equal(t, "  \t", Indentation("  \tx = 1"))
	assert.Equal(t, "   ", Indentation("   "))
}

func TestSentinels(t *testing.T) {
	assert.Equal(t, "#             fmt: off", SentinelOff)
	assert.Equal(t, "#             fmt: on", SentinelOn)

	wrapped := Wrap("    ", "    if x: y = 1")
	assert.Equal(t, []string{
		"    #             fmt: off",
		"    if x: y = 1",
		"    #             fmt: on",
	}, wrapped)

	assert.True(t, IsOpening(wrapped[0]))
	assert.True(t, IsClosing(wrapped[2]))
	assert.False(t, IsSentinel(wrapped[1]))
	assert.True(t, IsSentinel("x = 1  #             fmt: whatever"))
	assert.Equal(t, 1, CountRegions(wrapped))
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []bool
	}{
		{"empty", nil, []bool{}},
		{"no sentinels", []string{"a", "b"}, []bool{false, false}},
		{
			"closed region",
			[]string{"a", "  " + SentinelOff, "  b", "  " + SentinelOn + "  ", "c"},
			[]bool{false, true, true, true, false},
		},
		{
			"unclosed opening",
			[]string{SentinelOff, "a", "b"},
			[]bool{false, false, false},
		},
		{
			"stray closing",
			[]string{"a", SentinelOn},
			[]bool{false, false},
		},
		{
			"region ends at the first closing",
			[]string{SentinelOff, SentinelOff, "a", SentinelOn, "b", SentinelOn},
			[]bool{true, true, true, true, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Protected(tt.lines))
		})
	}
}

package buffer

import "strings"

// Marker is the substring every sentinel line contains. Downstream tools find
// hands-off regions by this substring alone, so it must stay byte-exact.
const Marker = "#             fmt:"

// Sentinel comment lines, without indentation.
const (
	SentinelOff = Marker + " off"
	SentinelOn  = Marker + " on"
)

// IsSentinel reports whether line contains the marker anywhere.
func IsSentinel(line string) bool {
	return strings.Contains(line, Marker)
}

// IsOpening reports whether line is an indented opening sentinel.
func IsOpening(line string) bool {
	return strings.TrimSpace(line) == SentinelOff
}

// IsClosing reports whether line is an indented closing sentinel.
func IsClosing(line string) bool {
	return strings.TrimSpace(line) == SentinelOn
}

// Protected flags every line of a hands-off region: an opening sentinel, the
// first closing sentinel after it and everything in between. An opening
// sentinel that is never closed protects nothing.
func Protected(lines []string) []bool {
	protected := make([]bool, len(lines))

	for i := 0; i < len(lines); i++ {
		if !IsOpening(lines[i]) {
			continue
		}

		end := -1

		for j := i + 1; j < len(lines); j++ {
			if IsClosing(lines[j]) {
				end = j
				break
			}
		}

		if end < 0 {
			continue
		}

		for k := i; k <= end; k++ {
			protected[k] = true
		}

		i = end
	}

	return protected
}

// Wrap brackets lines with an opening and closing sentinel at indent.
func Wrap(indent string, lines ...string) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, indent+SentinelOff)
	out = append(out, lines...)

	return append(out, indent+SentinelOn)
}

// CountRegions counts opening sentinels in lines.
func CountRegions(lines []string) int {
	n := 0

	for _, line := range lines {
		if IsOpening(line) {
			n++
		}
	}

	return n
}

package similarity

import "colfmt.dev/pkg/colfmt/internal/domain/buffer"

// Unmark removes every sentinel line and squeezes runs of blank lines to
// one. Empty input is returned as is.
func Unmark(code string) string {
	lines := buffer.Split(code)
	if len(lines) == 0 {
		return code
	}

	return buffer.Join(UnmarkLines(lines))
}

// UnmarkLines is Unmark over a pre-split buffer.
func UnmarkLines(lines []string) []string {
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if buffer.IsSentinel(line) {
			continue
		}

		if buffer.IsBlank(line) && len(out) > 0 && buffer.IsBlank(out[len(out)-1]) {
			continue
		}

		out = append(out, line)
	}

	return out
}

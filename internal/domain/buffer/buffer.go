// Package buffer holds the line-buffer helpers and the fmt: off/on marker
// protocol shared by the alignment and similarity pipelines.
package buffer

import "strings"

// Split breaks a buffer into lines. A trailing newline does not start an
// extra empty line, and an empty buffer has no lines.
func Split(code string) []string {
	if code == "" {
		return nil
	}

	lines := strings.Split(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Join writes every line followed by a newline.
func Join(lines []string) string {
	var b strings.Builder

	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// IsBlank reports whether line holds nothing but whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Indentation returns the leading run of spaces and tabs.
func Indentation(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

package tokens

import "strings"

var compoundPrefixes = []string{"if ", "elif ", "else:", "for ", "def ", "class "}

// IsOneLineStatement reports whether line holds a compound statement header
// and its body on the same line, e.g. "if x: y = 1". The header must end in a
// colon outside brackets and strings, followed by something that is not a
// comment.
func IsOneLineStatement(line string) bool {
	first := strings.IndexFunc(line, func(r rune) bool { return r != ' ' && r != '\t' })
	if first < 0 {
		return false
	}

	trimmed := line[first:]
	if trimmed[0] == '#' {
		return false
	}

	prefix := ""

	for _, p := range compoundPrefixes {
		if strings.HasPrefix(trimmed, p) {
			prefix = p
			break
		}
	}

	if prefix == "" {
		return false
	}

	colon := first + len("else")
	if prefix != "else:" {
		pos := headerColon(trimmed)
		if pos < 0 {
			return false
		}

		colon = first + pos
	}

	if colon >= len(line)-1 {
		return false
	}

	body := strings.TrimLeft(line[colon+1:], " \t")

	return body != "" && body[0] != '#'
}

// headerColon finds the first colon at bracket depth zero outside string
// literals.
func headerColon(s string) int {
	var (
		inString bool
		delim    byte
		escaped  bool
		depth    int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if isQuote(c) && !escaped {
			if !inString {
				inString = true
				delim = c
			} else if c == delim {
				inString = false
			}
		}

		if c == '\\' && !escaped {
			escaped = true
			continue
		}

		escaped = false

		if inString {
			continue
		}

		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

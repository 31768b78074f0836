package tokens

// cursor walks a single line byte by byte. Reads past the end yield 0.
type cursor struct {
	line string
	off  int
}

func (c *cursor) eof() bool {
	return c.off >= len(c.line)
}

func (c *cursor) peek() byte {
	return c.peekAt(0)
}

// peekAt reads the byte n positions after the current offset.
func (c *cursor) peekAt(n int) byte {
	i := c.off + n
	if i < 0 || i >= len(c.line) {
		return 0
	}

	return c.line[i]
}

func (c *cursor) bump() {
	c.advance(1)
}

// advance moves forward n bytes, clamped to the end of the line.
func (c *cursor) advance(n int) {
	c.off += n
	if c.off > len(c.line) {
		c.off = len(c.line)
	}
}

func (c *cursor) hasPrefix(s string) bool {
	return len(c.line)-c.off >= len(s) && c.line[c.off:c.off+len(s)] == s
}

// spanFrom returns the text between start and the current offset.
func (c *cursor) spanFrom(start int, op string) (string, error) {
	if start < 0 || start > c.off {
		return "", &IndexError{Op: op, Index: start, Len: len(c.line)}
	}

	if c.off > len(c.line) {
		return "", &IndexError{Op: op, Index: c.off, Len: len(c.line)}
	}

	return c.line[start:c.off], nil
}

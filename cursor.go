// cursor.go: bounded byte cursor over the input line
package ccalc

// cursor walks a string by bytes between a current position and an end
// bound. Out-of-range motion is a programming defect and panics; callers
// check AtEnd/Have before moving.
type cursor struct {
	src string
	pos int
	end int
}

func newCursor(s string) cursor {
	return cursor{src: s, end: len(s)}
}

func (c *cursor) AtEnd() bool { return c.pos >= c.end }

// Len returns the number of bytes remaining.
func (c *cursor) Len() int { return c.end - c.pos }

// Pos returns the offset from the start of the underlying string.
func (c *cursor) Pos() int { return c.pos }

// Have reports whether at least n bytes remain.
func (c *cursor) Have(n int) bool { return c.pos+n <= c.end }

// Cur returns the byte at the current position.
func (c *cursor) Cur() byte {
	if c.AtEnd() {
		panic("cursor: read past end")
	}
	return c.src[c.pos]
}

// At returns the byte at the given offset from the current position.
func (c *cursor) At(i int) byte {
	if c.pos+i >= c.end || c.pos+i < 0 {
		panic("cursor: index out of range")
	}
	return c.src[c.pos+i]
}

// Peek is At without the panic: it returns 0 past the bounds.
func (c *cursor) Peek(i int) byte {
	if c.pos+i >= c.end || c.pos+i < 0 {
		return 0
	}
	return c.src[c.pos+i]
}

func (c *cursor) Advance() {
	if c.AtEnd() {
		panic("cursor: advance past end")
	}
	c.pos++
}

func (c *cursor) AdvanceN(n int) {
	if c.pos+n > c.end {
		panic("cursor: advance past end")
	}
	c.pos += n
}

func (c *cursor) Backup() {
	if c.pos == 0 {
		panic("cursor: backup past start")
	}
	c.pos--
}

// RemoveSuffix shrinks the end bound by n bytes.
func (c *cursor) RemoveSuffix(n int) {
	if c.end-n < c.pos {
		panic("cursor: suffix removal before position")
	}
	c.end -= n
}

// View returns the remaining bytes as a string.
func (c *cursor) View() string { return c.src[c.pos:c.end] }

package bcbp

import "strings"

// cursor reads a window [pos, end) of a payload. Sub-cursors share the
// underlying string so offsets stay absolute.
type cursor struct {
	s   string
	pos int
	end int
}

func newCursor(s string) *cursor {
	return &cursor{s: s, end: len(s)}
}

func (c *cursor) remaining() int {
	return c.end - c.pos
}

// take reads exactly n bytes, or reports false and reads nothing.
func (c *cursor) take(n int) (string, bool) {
	if c.remaining() < n {
		return "", false
	}
	v := c.s[c.pos : c.pos+n]
	c.pos += n
	return v, true
}

// takeUpTo reads at most n bytes.
func (c *cursor) takeUpTo(n int) string {
	if n > c.remaining() {
		n = c.remaining()
	}
	v := c.s[c.pos : c.pos+n]
	c.pos += n
	return v
}

// sub splits off the next n bytes (clamped to what remains) as a new cursor.
func (c *cursor) sub(n int) *cursor {
	if n > c.remaining() {
		n = c.remaining()
	}
	sc := &cursor{s: c.s, pos: c.pos, end: c.pos + n}
	c.pos += n
	return sc
}

func (c *cursor) hasPrefix(p string) bool {
	return strings.HasPrefix(c.s[c.pos:c.end], p)
}

func (c *cursor) rest() string {
	v := c.s[c.pos:c.end]
	c.pos = c.end
	return v
}

// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import "bytes"

// Cursor invariants and coordinate system
//
// The cursor treats input as an immutable byte slice holding the whole
// document with its line breaks already removed (see joinLines).
//
// Fields:
//   input  - the flattened document
//   length - len(input)
//   pos    - index of the next unread byte
//
// Invariants (must always hold):
//   0 <= pos <= length
//
//   pos == length  <=> the cursor is exhausted. Every helper treats the
//                      exhausted cursor as "nothing matches"; none of them
//                      index past length.
//
//   pos never moves backwards during a parse.
//
// Match helpers are all-or-nothing: they either consume exactly the bytes
// they matched or leave pos where it was. Scanners that return a token
// return a sub-slice of input, so tokens have no length limit and are only
// copied when the parser turns them into strings.
//
// A cursor is owned by a single parser. It is created by the loader, passed
// down by pointer through every parsing step, and dropped once the tree is
// returned; nodes never hold references into it.

type cursor struct {
	input  []byte
	pos    int
	length int
}

func newCursor(input []byte) *cursor {
	return &cursor{
		input:  input,
		length: len(input),
	}
}

// atEnd reports whether the cursor is exhausted.
func (c *cursor) atEnd() bool {
	return c.pos >= c.length
}

// peekByte returns the current byte without advancing the input.
// It returns false when the cursor is exhausted.
func (c *cursor) peekByte() (byte, bool) {
	if c.atEnd() {
		return 0, false
	}
	return c.input[c.pos], true
}

// peekMatches reports whether the unread input starts with lit.
func (c *cursor) peekMatches(lit string) bool {
	end := c.pos + len(lit)
	return end <= c.length && string(c.input[c.pos:end]) == lit
}

// consumeIfMatches advances past lit if the unread input starts with it.
func (c *cursor) consumeIfMatches(lit string) bool {
	if !c.peekMatches(lit) {
		return false
	}
	c.pos += len(lit)
	return true
}

// consumeByte advances past ch if it is the current byte.
func (c *cursor) consumeByte(ch byte) bool {
	if c.atEnd() || c.input[c.pos] != ch {
		return false
	}
	c.pos++
	return true
}

// skipToAfter advances to the byte just past the next occurrence of lit.
// If lit never occurs, the cursor is left exhausted and false is returned.
func (c *cursor) skipToAfter(lit string) bool {
	if c.atEnd() {
		return false
	}
	i := bytes.Index(c.input[c.pos:], []byte(lit))
	if i < 0 {
		c.pos = c.length
		return false
	}
	c.pos += i + len(lit)
	return true
}

// scan advances over the run of bytes accepted by fn and returns the run.
// The run is empty if the current byte is not accepted.
func (c *cursor) scan(fn func(byte) bool) []byte {
	start := c.pos
	for c.pos < c.length && fn(c.input[c.pos]) {
		c.pos++
	}
	return c.input[start:c.pos]
}

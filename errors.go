// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a location in the original input.
// Line and Column are 1-based and refer to the file as written, before
// line breaks were removed. Column counts characters, not bytes.
// Offset is the 0-based byte index into the flattened buffer.
type Position struct {
	Line   int
	Column int
	Offset int
}

// ParseError is returned for every failure while parsing a document.
// The parse is abandoned when one is returned; there is never a partial tree.
type ParseError struct {
	Source   string // name of the input, usually the file path
	Kind     ErrorKind
	Message  string // what was expected
	Pos      Position
	LineText string // the source line containing Pos, without its line break
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// lineMap maps offsets in the flattened buffer back to source lines.
// starts[i] is the offset in flat where line i+1 begins.
type lineMap struct {
	flat   []byte
	starts []int
}

// position returns the source position of offset, along with the text of
// the line that contains it.
func (m lineMap) position(offset int) (Position, string) {
	if len(m.starts) == 0 {
		return Position{Line: 1, Column: 1, Offset: offset}, ""
	}
	if offset > len(m.flat) {
		offset = len(m.flat)
	}
	// last line that starts at or before offset
	i := sort.Search(len(m.starts), func(i int) bool {
		return m.starts[i] > offset
	}) - 1
	if i < 0 {
		i = 0
	}
	start, end := m.starts[i], len(m.flat)
	if i+1 < len(m.starts) {
		end = m.starts[i+1]
	}
	return Position{
		Line:   i + 1,
		Column: utf8.RuneCount(m.flat[start:offset]) + 1,
		Offset: offset,
	}, string(m.flat[start:end])
}

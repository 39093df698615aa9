// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import (
	"testing"
)

func TestCursor_ConsumeIsAllOrNothing(t *testing.T) {
	c := newCursor([]byte("<!-"))
	if c.consumeIfMatches("<!--") {
		t.Fatalf("consumeIfMatches(%q) = true, want false", "<!--")
	}
	if got, want := c.pos, 0; got != want {
		t.Fatalf("pos = %d, want %d", got, want)
	}
	if !c.consumeIfMatches("<!") {
		t.Fatalf("consumeIfMatches(%q) = false, want true", "<!")
	}
	if got, want := c.pos, 2; got != want {
		t.Fatalf("pos = %d, want %d", got, want)
	}
	if c.consumeByte('x') {
		t.Fatalf("consumeByte('x') = true, want false")
	}
	if !c.consumeByte('-') {
		t.Fatalf("consumeByte('-') = false, want true")
	}
	if !c.atEnd() {
		t.Fatalf("atEnd = false, want true")
	}
	// the exhausted cursor matches nothing and never moves
	if c.peekMatches("-") || c.consumeByte('-') || c.skipToAfter("-") {
		t.Fatalf("exhausted cursor matched input")
	}
	if _, ok := c.peekByte(); ok {
		t.Fatalf("peekByte ok = true at end of input")
	}
	if got, want := c.pos, c.length; got != want {
		t.Fatalf("pos = %d, want %d", got, want)
	}
}

func TestCursor_SkipToAfter(t *testing.T) {
	c := newCursor([]byte("abc-->def-->"))
	if !c.skipToAfter("-->") {
		t.Fatalf("skipToAfter = false, want true")
	}
	if got, want := string(c.input[c.pos:]), "def-->"; got != want {
		t.Fatalf("rest = %q, want %q", got, want)
	}
	if c.skipToAfter("?>") {
		t.Fatalf("skipToAfter(%q) = true, want false", "?>")
	}
	if !c.atEnd() {
		t.Fatalf("atEnd = false after failed skip, want true")
	}
}

func TestCursor_Matchers(t *testing.T) {
	for _, tc := range []struct {
		id    string
		input string
		run   func(c *cursor) string
		want  string // token returned by run
		rest  string // input left after run
	}{
		{"whitespace", " \t x", func(c *cursor) string { c.eatWhitespace(); return "" }, "", "x"},
		{"whitespace.stops.at.lf", " \n x", func(c *cursor) string { c.eatWhitespace(); return "" }, "", "\n x"},
		{"identifier", "ab.c d", func(c *cursor) string { return string(c.readIdentifier()) }, "ab.c", " d"},
		{"identifier.empty", "1ab", func(c *cursor) string { return string(c.readIdentifier()) }, "", "1ab"},
		{"element.name", "System.Web  x=", func(c *cursor) string { return string(c.readElementName()) }, "System.Web", "x="},
		{"attribute.name", "ab.c", func(c *cursor) string { return string(c.readAttributeName()) }, "ab", ".c"},
		{"attribute.name.hyphen", "data-x", func(c *cursor) string { return string(c.readAttributeName()) }, "data", "-x"},
		{"comments", "  <!-- a --> \t<!--b--><x/>", func(c *cursor) string { c.eatComments(); return "" }, "", "<x/>"},
		{"no.comments", "<x/>", func(c *cursor) string { c.eatComments(); return "" }, "", "<x/>"},
		{"declaration", `<?xml version="1.0"?>  <a/>`, func(c *cursor) string { c.eatDeclaration(); return "" }, "", "<a/>"},
		{"no.declaration", "  <a/>", func(c *cursor) string { c.eatDeclaration(); return "" }, "", "<a/>"},
	} {
		t.Run(tc.id, func(t *testing.T) {
			c := newCursor([]byte(tc.input))
			if got := tc.run(c); got != tc.want {
				t.Errorf("token = %q, want %q", got, tc.want)
			}
			if got := string(c.input[c.pos:]); got != tc.rest {
				t.Errorf("rest = %q, want %q", got, tc.rest)
			}
		})
	}
}

func TestCursor_UnterminatedComment(t *testing.T) {
	c := newCursor([]byte("  <!-- a -- >"))
	at, ok := c.eatComments()
	if ok {
		t.Fatalf("eatComments ok = true, want false")
	}
	if got, want := at, 2; got != want {
		t.Fatalf("at = %d, want %d", got, want)
	}
	if !c.atEnd() {
		t.Fatalf("atEnd = false, want true")
	}
}

func TestJoinLines(t *testing.T) {
	for _, tc := range []struct {
		id     string
		input  string
		flat   string
		starts []int
	}{
		{"empty", "", "", []int{0}},
		{"lf", "a\nb", "ab", []int{0, 1}},
		{"mixed", "a\r\nb\rc\n", "abc", []int{0, 1, 2}},
		{"blank.line", "a\n\nb", "ab", []int{0, 1, 1}},
		{"bom", "\xEF\xBB\xBFa", "a", []int{0}},
		{"no.separator", "<add\nkey=\"k\"/>", "<addkey=\"k\"/>", []int{0, 4}},
	} {
		t.Run(tc.id, func(t *testing.T) {
			flat, starts := joinLines([]byte(tc.input))
			if got := string(flat); got != tc.flat {
				t.Errorf("flat = %q, want %q", got, tc.flat)
			}
			if len(starts) != len(tc.starts) {
				t.Fatalf("starts = %v, want %v", starts, tc.starts)
			}
			for i := range starts {
				if starts[i] != tc.starts[i] {
					t.Fatalf("starts = %v, want %v", starts, tc.starts)
				}
			}
		})
	}
}

func TestLineMap_Position(t *testing.T) {
	flat, starts := joinLines([]byte("a\n\nbé\n"))
	m := lineMap{flat: flat, starts: starts}

	pos, line := m.position(1)
	if got, want := pos.Line, 3; got != want {
		t.Fatalf("line = %d, want %d", got, want)
	}
	if got, want := pos.Column, 1; got != want {
		t.Fatalf("column = %d, want %d", got, want)
	}
	if got, want := line, "bé"; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}

	// end of input is reported on the last line, counting characters
	pos, _ = m.position(len(flat))
	if got, want := pos.Column, 3; got != want {
		t.Fatalf("column at end = %d, want %d", got, want)
	}
}

// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

// The loader strips line breaks before parsing starts, so the only
// characters treated as whitespace are space and horizontal tab.
func isspace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isletter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

// element names may contain periods, attribute names may not.
func isElementNameByte(ch byte) bool {
	return isletter(ch) || ch == '.'
}

// eatWhitespace skips a run of spaces and tabs.
func (c *cursor) eatWhitespace() {
	c.scan(isspace)
}

// eatComments skips any mix of whitespace and <!-- --> comments.
//
// If a comment is never closed the cursor is left exhausted, and the
// offset of the comment's opening marker is returned with ok == false.
func (c *cursor) eatComments() (at int, ok bool) {
	c.eatWhitespace()
	for c.peekMatches("<!--") {
		at = c.pos
		c.pos += len("<!--")
		if !c.skipToAfter("-->") {
			return at, false
		}
		c.eatWhitespace()
	}
	return c.pos, true
}

// eatDeclaration skips a leading <? ?> declaration and any whitespace
// after it. It is only called once, at the start of the document.
func (c *cursor) eatDeclaration() (at int, ok bool) {
	at = c.pos
	if c.consumeIfMatches("<?") && !c.skipToAfter("?>") {
		return at, false
	}
	c.eatWhitespace()
	return c.pos, true
}

// readIdentifier returns the run of ASCII letters and periods at the cursor.
func (c *cursor) readIdentifier() []byte {
	return c.scan(isElementNameByte)
}

// readElementName reads an identifier and the whitespace that follows it.
func (c *cursor) readElementName() []byte {
	name := c.readIdentifier()
	c.eatWhitespace()
	return name
}

// readAttributeName returns the run of ASCII letters at the cursor.
func (c *cursor) readAttributeName() []byte {
	return c.scan(isletter)
}

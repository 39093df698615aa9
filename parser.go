// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import (
	"fmt"
	"log/slog"
	"strings"
)

/*
Invariants:
 * A parser owns one cursor for one document. Nothing else reads or moves it.
 * parseNode is called with the cursor between tags: before a child of the
   enclosing element, before that element's end tag, or (for the root)
   just after the declaration.
 * Each call to parseNode consumes exactly one of
     - leading whitespace/comments and a complete element (outcome gotNode)
     - leading whitespace/comments and the enclosing element's end tag
       (outcome endOfSiblings)
   or fails. A failure always carries a *ParseError and no node.
 * Element children are collected by calling parseNode until it returns
   endOfSiblings, so the end tag that stops the loop is the one that
   matched the enclosing element.
 * Open/close pairing ignores case; the stored name is never rewritten.
*/

// outcome is what a successful parseNode call found.
type outcome int

const (
	gotNode       outcome = iota // a complete element
	endOfSiblings                // the enclosing element's end tag
)

type parser struct {
	source   string
	c        *cursor
	lines    lineMap
	logger   *slog.Logger
	maxDepth int
}

func newParser(source string, flat []byte, starts []int, cfg *config) *parser {
	return &parser{
		source:   source,
		c:        newCursor(flat),
		lines:    lineMap{flat: flat, starts: starts},
		logger:   cfg.logger,
		maxDepth: cfg.maxDepth,
	}
}

// parseNode parses the next element, or the end tag of parent.
// parent is nil when parsing the root element. depth is the number of
// elements currently open.
func (p *parser) parseNode(parent *Node, depth int) (*Node, outcome, error) {
	if at, ok := p.c.eatComments(); !ok {
		return nil, gotNode, p.errorf(UnterminatedDocument, at, "comment not terminated: expected \"-->\"")
	}

	if p.c.atEnd() {
		if parent == nil {
			return nil, gotNode, p.errorf(UnterminatedDocument, p.c.pos, "no root element found")
		}
		return nil, gotNode, p.errorf(UnterminatedDocument, p.c.pos, "end tag </%s> not found before end of input", parent.Name)
	}

	tagStart := p.c.pos
	if p.c.consumeIfMatches("</") {
		name := p.c.readElementName()
		if parent == nil {
			return nil, gotNode, p.errorf(StructuralMismatch, tagStart, "misplaced end tag </%s>: no element is open", name)
		}
		if !strings.EqualFold(string(name), parent.Name) {
			return nil, gotNode, p.errorf(StructuralMismatch, tagStart, "misplaced end tag </%s>: expected </%s>", name, parent.Name)
		}
		if !p.c.consumeByte('>') {
			return nil, gotNode, p.errorf(MalformedTag, p.c.pos, "end tag </%s> not terminated: expected '>'", name)
		}
		p.debug("close", "name", parent.Name, "children", len(parent.Children))
		return nil, endOfSiblings, nil
	}

	if !p.c.consumeByte('<') {
		return nil, gotNode, p.errorf(MalformedTag, tagStart, "tag start not found: expected '<' or '</'")
	}
	name := p.c.readElementName()
	if len(name) == 0 {
		return nil, gotNode, p.errorf(MalformedTag, p.c.pos, "expected element name after '<'")
	}
	if p.maxDepth > 0 && depth >= p.maxDepth {
		return nil, gotNode, p.errorf(TooDeep, tagStart, "element <%s> is nested more than %d levels deep", name, p.maxDepth)
	}

	node := &Node{Name: string(name)}
	attrs, err := p.readAttributes()
	if err != nil {
		return nil, gotNode, err
	}
	node.Attributes = attrs

	if p.c.consumeIfMatches("/>") {
		p.debug("empty", "name", node.Name, "attributes", len(node.Attributes))
		return node, gotNode, nil
	}
	if !p.c.consumeByte('>') {
		return nil, gotNode, p.errorf(MalformedTag, p.c.pos, "tag <%s> not closed: expected '>' or '/>'", node.Name)
	}
	p.debug("open", "name", node.Name, "attributes", len(node.Attributes), "depth", depth)

	for {
		child, result, err := p.parseNode(node, depth+1)
		if err != nil {
			return nil, gotNode, err
		} else if result == endOfSiblings {
			break
		}
		node.Children = append(node.Children, child)
	}

	return node, gotNode, nil
}

// errorf returns a *ParseError located at offset in the flattened input.
func (p *parser) errorf(kind ErrorKind, offset int, format string, args ...any) *ParseError {
	pos, line := p.lines.position(offset)
	return &ParseError{
		Source:   p.source,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		LineText: line,
	}
}

func (p *parser) debug(msg string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug("webcfg: "+msg, append([]any{"source", p.source}, args...)...)
}

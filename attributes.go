// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

// readAttribute reads one name="value" pair.
//
// A missing name is the normal end of the attribute list and returns
// ok == false with no error. Once a name is read the rest of the pair is
// required, with no whitespace allowed around '=' or before the opening
// quote.
func (p *parser) readAttribute() (attr Attribute, ok bool, err error) {
	name := p.c.readAttributeName()
	if len(name) == 0 {
		return Attribute{}, false, nil
	}
	if !p.c.consumeByte('=') {
		return Attribute{}, false, p.errorf(MalformedAttribute, p.c.pos, "attribute %q: expected '=' between name and value", name)
	}
	if !p.c.consumeByte('"') {
		return Attribute{}, false, p.errorf(MalformedAttribute, p.c.pos, "attribute %q: expected '\"' to open value", name)
	}
	valueStart := p.c.pos
	if !p.c.skipToAfter(`"`) {
		return Attribute{}, false, p.errorf(UnterminatedValue, valueStart-1, "attribute %q: value did not end with a '\"'", name)
	}
	value := p.c.input[valueStart : p.c.pos-1]
	p.c.eatWhitespace()

	return Attribute{Name: string(name), Value: string(value)}, true, nil
}

// readAttributes reads attributes until there are no more.
// The list is nil when the tag has none.
func (p *parser) readAttributes() ([]Attribute, error) {
	var list []Attribute
	for {
		attr, ok, err := p.readAttribute()
		if err != nil {
			return nil, err
		} else if !ok {
			return list, nil
		}
		list = append(list, attr)
	}
}

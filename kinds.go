// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

// ErrorKind classifies parse failures.
//
// ErrorKind implements error so callers can test for a class of failure
// with errors.Is(err, webcfg.StructuralMismatch).
type ErrorKind int

const (
	UnknownError ErrorKind = iota

	StructuralMismatch   // end tag does not match the open element, or no element is open
	MalformedTag         // tag does not start with '<' or '</', or is not closed by '>' or '/>'
	MalformedAttribute   // attribute name not followed by '=', or value not double-quoted
	UnterminatedValue    // closing quote of an attribute value not found
	UnterminatedDocument // input ended before the root element was closed
	TooDeep              // elements nested deeper than the configured limit
)

func (k ErrorKind) String() string {
	switch k {
	case StructuralMismatch:
		return "structural mismatch"
	case MalformedTag:
		return "malformed tag"
	case MalformedAttribute:
		return "malformed attribute"
	case UnterminatedValue:
		return "unterminated value"
	case UnterminatedDocument:
		return "unterminated document"
	case TooDeep:
		return "nesting too deep"
	}
	return "unknown error"
}

func (k ErrorKind) Error() string {
	return k.String()
}

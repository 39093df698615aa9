// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Encode writes root as markup on a single line.
// Loading the output returns a tree equal to root.
func Encode(w io.Writer, root *Node) error {
	return EncodeIndent(w, root, "")
}

// EncodeIndent writes root as markup, one element per line, with children
// indented by indent. An empty indent writes everything on one line.
//
// It fails if indent holds anything but spaces and tabs, a name would not
// survive a round trip through Load, or an attribute value contains a
// double quote.
func EncodeIndent(w io.Writer, root *Node, indent string) error {
	if root == nil {
		return fmt.Errorf("encode: nil root")
	}
	for i := 0; i < len(indent); i++ {
		if !isspace(indent[i]) {
			return fmt.Errorf("encode: indent %q: only spaces and tabs are allowed", indent)
		}
	}
	bw := bufio.NewWriter(w)
	if err := encodeNode(bw, root, indent, 0); err != nil {
		return err
	}
	if indent != "" {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func encodeNode(w *bufio.Writer, n *Node, indent string, depth int) error {
	if !validName(n.Name, isElementNameByte) {
		return fmt.Errorf("encode: invalid element name %q", n.Name)
	}
	if indent != "" && depth > 0 {
		w.WriteByte('\n')
		w.WriteString(strings.Repeat(indent, depth))
	}
	w.WriteByte('<')
	w.WriteString(n.Name)
	for _, a := range n.Attributes {
		if !validName(a.Name, isletter) {
			return fmt.Errorf("encode: <%s>: invalid attribute name %q", n.Name, a.Name)
		} else if strings.IndexByte(a.Value, '"') >= 0 {
			return fmt.Errorf("encode: <%s>: attribute %s: value contains '\"'", n.Name, a.Name)
		}
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		w.WriteString(a.Value)
		w.WriteByte('"')
	}
	if len(n.Children) == 0 {
		_, err := w.WriteString("/>")
		return err
	}
	w.WriteByte('>')
	for _, child := range n.Children {
		if err := encodeNode(w, child, indent, depth+1); err != nil {
			return err
		}
	}
	if indent != "" {
		w.WriteByte('\n')
		w.WriteString(strings.Repeat(indent, depth))
	}
	_, err := fmt.Fprintf(w, "</%s>", n.Name)
	return err
}

func validName(name string, fn func(byte) bool) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !fn(name[i]) {
			return false
		}
	}
	return true
}

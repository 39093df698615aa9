// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import "strings"

// Node is one element of the document tree.
//
// Name keeps the casing used in the opening tag. Attributes and Children
// are in document order. A node owns its attributes and children; there
// are no parent pointers.
type Node struct {
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Children   []*Node     `json:"children,omitempty"`
}

// Attribute is a name/value pair from an opening tag.
// Value is the raw text between the quotes; nothing is decoded.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (a Attribute) String() string {
	return a.Name + " = " + a.Value
}

// Is reports whether the node's name matches name, ignoring case.
func (n *Node) Is(name string) bool {
	return n != nil && strings.EqualFold(n.Name, name)
}

// Attr returns the value of the first attribute whose name matches name,
// ignoring case.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attributes {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// Elements returns the children whose name matches name, ignoring case.
func (n *Node) Elements(name string) []*Node {
	if n == nil {
		return nil
	}
	var list []*Node
	for _, child := range n.Children {
		if child.Is(name) {
			list = append(list, child)
		}
	}
	return list
}

// Walk visits n and its descendants in document order. The root is at
// depth 0. Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Equal reports whether two trees have the same names, attributes and
// children, in the same order. Names are compared exactly.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Attributes) != len(b.Attributes) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attributes {
		if a.Attributes[i] != b.Attributes[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

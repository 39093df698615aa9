// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package webcfg reads the small markup dialect used by web.config and
// app.config files into a tree of nodes.
//
// The dialect is a narrow subset: one optional <?...?> declaration, one root
// element, nested or self-closing elements with double-quoted attributes,
// and comments between elements. There is no text content, no entity
// decoding and no namespace handling. Any deviation is an error; the
// parser never repairs input.
package webcfg

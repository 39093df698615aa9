// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the file at path and returns the root element of the
// document. The file is read from the operating system unless WithFS
// is given.
//
// Any error in the document is returned as a *ParseError.
func Load(path string, opts ...Option) (*Node, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(cfg.fs, path)
	if err != nil {
		return nil, err
	}
	return parse(path, data, cfg)
}

// LoadFS is Load reading from fs.
func LoadFS(fs afero.Fs, path string, opts ...Option) (*Node, error) {
	return Load(path, append([]Option{WithFS(fs)}, opts...)...)
}

// Parse reads all of r and returns the root element. name is used in
// error messages.
func Parse(name string, r io.Reader, opts ...Option) (*Node, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return parse(name, data, cfg)
}

// ParseBytes returns the root element of the document in data.
func ParseBytes(name string, data []byte, opts ...Option) (*Node, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return parse(name, data, cfg)
}

func parse(name string, data []byte, cfg *config) (*Node, error) {
	started := time.Now()

	flat, starts := joinLines(data)
	p := newParser(name, flat, starts, cfg)

	if at, ok := p.c.eatDeclaration(); !ok {
		return nil, p.errorf(UnterminatedDocument, at, "declaration not terminated: expected \"?>\"")
	}

	root, result, err := p.parseNode(nil, 0)
	if err != nil {
		return nil, err
	} else if result != gotNode || root == nil {
		// parseNode reports a stray end tag itself; this guards the invariant.
		return nil, p.errorf(StructuralMismatch, p.c.pos, "expected a root element")
	}

	// only whitespace and comments may follow the root
	if at, ok := p.c.eatComments(); !ok {
		return nil, p.errorf(UnterminatedDocument, at, "comment not terminated: expected \"-->\"")
	}
	if !p.c.atEnd() {
		return nil, p.errorf(MalformedTag, p.c.pos, "unexpected content after end of root element <%s>", root.Name)
	}

	if cfg.logger != nil {
		cfg.logger.Debug("webcfg: loaded", "source", name, "root", root.Name, "bytes", len(data), "elapsed", time.Since(started))
	}

	return root, nil
}

// joinLines removes line breaks from data, joining the lines with nothing
// in between. LF, CR+LF and a lone CR all end a line, and a leading UTF-8
// byte order mark is dropped.
//
// It returns the joined text and the offset in it where each source line
// starts. A line break at the very end of data does not start a new line.
func joinLines(data []byte) ([]byte, []int) {
	data = bytes.TrimPrefix(data, utf8BOM)

	flat := make([]byte, 0, len(data))
	starts := []int{0}
	for i := 0; i < len(data); i++ {
		switch ch := data[i]; ch {
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			if i+1 < len(data) {
				starts = append(starts, len(flat))
			}
		case '\n':
			if i+1 < len(data) {
				starts = append(starts, len(flat))
			}
		default:
			flat = append(flat, ch)
		}
	}
	return flat, starts
}

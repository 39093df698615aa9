// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/mdhender/webcfg"
	"github.com/spf13/afero"
)

const webConfig = "<?xml version=\"1.0\"?>\r\n" +
	"<configuration>\r\n" +
	"  <appSettings>\r\n" +
	"    <add key=\"Env\" value=\"Production\" />\n" +
	"  </appSettings>\r" +
	"</configuration>\n"

func TestLoadFS(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/app/web.config", []byte(webConfig), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	root, err := webcfg.LoadFS(fs, "/app/web.config")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := root.Name, "configuration"; got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
	add := root.Children[0].Children[0]
	if v, _ := add.Attr("value"); v != "Production" {
		t.Fatalf("value = %q, want %q", v, "Production")
	}

	if _, err := webcfg.LoadFS(fs, "/app/missing.config"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("load missing: err = %v, want %v", err, os.ErrNotExist)
	}
}

func TestParse_Reader(t *testing.T) {
	root, err := webcfg.Parse("reader", strings.NewReader("\xEF\xBB\xBF<a>\n<b/>\n</a>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, want := len(root.Children), 1; got != want {
		t.Fatalf("children = %d, want %d", got, want)
	}
}

func TestParse_LineBreaksAreNotWhitespace(t *testing.T) {
	// joining lines leaves nothing between "add" and "key"
	_, err := webcfg.ParseBytes("test", []byte("<add\nkey=\"k\"/>"))
	if !errors.Is(err, webcfg.MalformedTag) {
		t.Fatalf("err = %v, want %v", err, webcfg.MalformedTag)
	}
	// indentation on the continuation line keeps attributes apart
	mustParse(t, "<add key=\"k\"\n     value=\"v\"/>")
}

func TestParse_ErrorPositionsUseSourceLines(t *testing.T) {
	for _, tc := range []struct {
		id    string
		input string
		kind  webcfg.ErrorKind
		line  int
		col   int
		text  string
	}{
		{"mismatch", "<a>\n  <b>\n  </c>\n</a>\n", webcfg.StructuralMismatch, 3, 3, "  </c>"},
		{"unterminated", "<a>\r\n<b>\r\n", webcfg.UnterminatedDocument, 2, 4, "<b>"},
		{"attribute", "<a>\n\t<add key = \"k\"/>\n</a>", webcfg.MalformedAttribute, 2, 10, "\t<add key = \"k\"/>"},
	} {
		t.Run(tc.id, func(t *testing.T) {
			_, err := webcfg.ParseBytes("web.config", []byte(tc.input))
			var pe *webcfg.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *webcfg.ParseError", err)
			}
			if pe.Kind != tc.kind {
				t.Errorf("kind = %v, want %v", pe.Kind, tc.kind)
			}
			if pe.Pos.Line != tc.line || pe.Pos.Column != tc.col {
				t.Errorf("pos = %d:%d, want %d:%d", pe.Pos.Line, pe.Pos.Column, tc.line, tc.col)
			}
			if pe.LineText != tc.text {
				t.Errorf("line text = %q, want %q", pe.LineText, tc.text)
			}
			if !strings.HasPrefix(pe.Error(), "web.config:") {
				t.Errorf("error = %q, want source prefix", pe.Error())
			}
		})
	}
}

func TestParse_ConcurrentLoadsAreIndependent(t *testing.T) {
	inputs := []string{
		`<a><b x="1"/></a>`,
		`<c><d/><e/></c>`,
		`<f></g>`,
	}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, input := range inputs {
			input := input
			wg.Add(1)
			go func() {
				defer wg.Done()
				root, err := webcfg.ParseBytes("test", []byte(input))
				switch input {
				case `<f></g>`:
					if !errors.Is(err, webcfg.StructuralMismatch) {
						t.Errorf("parse %q: err = %v", input, err)
					}
				default:
					if err != nil || root == nil {
						t.Errorf("parse %q: %v", input, err)
					}
				}
			}()
		}
	}
	wg.Wait()
}

func TestPrintDiagnostic(t *testing.T) {
	_, err := webcfg.ParseBytes("web.config", []byte("<a>\n  <b>\n  </c>\n</a>\n"))
	diag, ok := webcfg.DiagnosticFromError(err)
	if !ok {
		t.Fatalf("DiagnosticFromError(%v) ok = false", err)
	}
	var buf bytes.Buffer
	webcfg.PrintDiagnostic(&buf, diag, "web.config")
	want := "web.config:3:3: error: misplaced end tag </c>: expected </b>\n" +
		"      </c>\n" +
		"      ^\n" +
		"    note: structural mismatch\n"
	if got := buf.String(); got != want {
		t.Fatalf("diagnostic:\n%s\nwant:\n%s", got, want)
	}

	if _, ok := webcfg.DiagnosticFromError(os.ErrNotExist); ok {
		t.Fatalf("DiagnosticFromError(os.ErrNotExist) ok = true, want false")
	}
}

func TestPrintDiagnostic_TabsKeepCaretAligned(t *testing.T) {
	_, err := webcfg.ParseBytes("web.config", []byte("<a>\n\t<add key = \"k\"/>\n</a>"))
	diag, ok := webcfg.DiagnosticFromError(err)
	if !ok {
		t.Fatalf("DiagnosticFromError(%v) ok = false", err)
	}
	var buf bytes.Buffer
	webcfg.PrintDiagnostic(&buf, diag, "web.config")
	lines := strings.Split(buf.String(), "\n")
	if got, want := lines[2], "    \t        ^"; got != want {
		t.Fatalf("caret line = %q, want %q", got, want)
	}
}

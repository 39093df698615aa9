// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Diagnostic is a parse failure prepared for display.
type Diagnostic struct {
	Severity slog.Level // Error, Warning, Info
	Message  string     // "misplaced end tag </b>: expected </a>"
	Pos      Position   // where in the file it occurred
	Line     string     // text of the source line containing Pos
	Notes    []string   // optional additional help messages
}

// DiagnosticFromError returns the Diagnostic for err if it is, or wraps,
// a *ParseError.
func DiagnosticFromError(err error) (Diagnostic, bool) {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return Diagnostic{}, false
	}
	diag := Diagnostic{
		Severity: slog.LevelError,
		Message:  pe.Message,
		Pos:      pe.Pos,
		Line:     pe.LineText,
		Notes:    []string{pe.Kind.String()},
	}
	switch pe.Kind {
	case MalformedAttribute, UnterminatedValue:
		diag.Notes = append(diag.Notes, `attributes must be written as name="value" with no spaces around '='`)
	case UnterminatedDocument:
		diag.Notes = append(diag.Notes, "line breaks are removed before parsing, so the reported line is where input ran out")
	}
	return diag, true
}

// PrintDiagnostic writes the diagnostic as a header, the source line, and
// a caret under the column.
func PrintDiagnostic(w io.Writer, diag Diagnostic, filename string) {
	_, _ = fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
		filename, diag.Pos.Line, diag.Pos.Column,
		strings.ToLower(diag.Severity.String()), diag.Message)

	if diag.Line != "" {
		_, _ = fmt.Fprintf(w, "    %s\n", diag.Line)
		_, _ = fmt.Fprintf(w, "    %s^\n", caretPadding(diag.Line, diag.Pos.Column))
	}

	for _, note := range diag.Notes {
		_, _ = fmt.Fprintf(w, "    note: %s\n", note)
	}
}

// caretPadding returns the text to print before a caret so that it lines
// up under the given 1-based column. Tabs in the line are copied so the
// caret stays aligned however the terminal expands them.
func caretPadding(line string, column int) string {
	var sb strings.Builder
	for _, r := range line {
		if column <= 1 {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		column--
	}
	for ; column > 1; column-- {
		sb.WriteByte(' ')
	}
	return sb.String()
}

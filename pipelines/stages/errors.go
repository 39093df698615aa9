// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import "fmt"

// ErrReadFile is returned when a config file cannot be read.
type ErrReadFile struct {
	Path string
	Err  error
}

func (e *ErrReadFile) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ErrReadFile) Unwrap() error {
	return e.Err
}

// ErrDatabase is returned when database operations fail.
type ErrDatabase struct {
	Op  string
	Err error
}

func (e *ErrDatabase) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ErrDatabase) Unwrap() error {
	return e.Err
}

// ErrParseSyntax is returned when a config file is not well formed.
type ErrParseSyntax struct {
	Path string
	Line int
	Msg  string
	Err  error // the *webcfg.ParseError
}

func (e *ErrParseSyntax) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: parse syntax error at line %d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: parse syntax error: %s", e.Path, e.Msg)
}

func (e *ErrParseSyntax) Unwrap() error {
	return e.Err
}

// ErrIllegalConfiguration is returned when a well formed file is not a
// configuration document.
type ErrIllegalConfiguration struct {
	Path string
	Err  error
}

func (e *ErrIllegalConfiguration) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ErrIllegalConfiguration) Unwrap() error {
	return e.Err
}

// Error code constants for reporting.
const (
	ErrCodeReadFile             = "READ_FILE"
	ErrCodeDatabase             = "DATABASE"
	ErrCodeParseSyntax          = "PARSE_SYNTAX_ERROR"
	ErrCodeIllegalConfiguration = "ILLEGAL_CONFIGURATION"
	ErrCodeUnknown              = "UNKNOWN"
)

// ErrorCode returns the error code string for a given error.
func ErrorCode(err error) string {
	switch err.(type) {
	case *ErrReadFile:
		return ErrCodeReadFile
	case *ErrDatabase:
		return ErrCodeDatabase
	case *ErrParseSyntax:
		return ErrCodeParseSyntax
	case *ErrIllegalConfiguration:
		return ErrCodeIllegalConfiguration
	default:
		return ErrCodeUnknown
	}
}

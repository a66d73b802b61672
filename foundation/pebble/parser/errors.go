// File: errors.go
// Title: Pebble Syntax Errors
// Description: SyntaxError is returned by both the lexer and the parser and
//              carries the file, line and column of the offending input.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial implementation

package parser

import (
	"fmt"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// DefaultFilename names input that did not come from a file
const DefaultFilename = "<stdin>"

// SyntaxError reports malformed Pebble source
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

// Error renders file:line:col: message
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// Code classifies the error for logging and the console
func (e *SyntaxError) Code() mdwerror.Code {
	return mdwerror.CodeSyntax
}

func newSyntaxError(file string, line, column int, format string, args ...interface{}) *SyntaxError {
	if file == "" {
		file = DefaultFilename
	}
	return &SyntaxError{
		File:    file,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// File: codes.go
// Title: Error Code Definitions
// Description: Error codes used across the Pebble toolchain, with the
//              category and default severity of each.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-10-02 v0.2.0: Language, canvas and storage codes
// - 2025-10-09 v0.3.0: One table drives validity, category and severity

package error

// Code classifies an error for logs and console output
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeIO           Code = "IO_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Language core
	CodeSyntax  Code = "PEBBLE_SYNTAX"
	CodeName    Code = "PEBBLE_NAME"
	CodeRuntime Code = "PEBBLE_RUNTIME"

	// Drawing surface
	CodeCanvasCommand     Code = "CANVAS_COMMAND"
	CodeCanvasUnavailable Code = "CANVAS_UNAVAILABLE"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"
)

type codeInfo struct {
	category string
	severity Severity
}

// User mistakes are low, lost subsystems are high.
var codeTable = map[Code]codeInfo{
	CodeUnknown:      {"generic", SeverityMedium},
	CodeInternal:     {"generic", SeverityHigh},
	CodeNotFound:     {"generic", SeverityLow},
	CodeInvalidInput: {"generic", SeverityLow},
	CodeIO:           {"generic", SeverityMedium},

	CodeConfigError:   {"configuration", SeverityMedium},
	CodeInvalidConfig: {"configuration", SeverityMedium},

	CodeSyntax:  {"language", SeverityLow},
	CodeName:    {"language", SeverityLow},
	CodeRuntime: {"language", SeverityMedium},

	CodeCanvasCommand:     {"canvas", SeverityLow},
	CodeCanvasUnavailable: {"canvas", SeverityMedium},

	CodeDatabaseError: {"storage", SeverityHigh},
}

func (c Code) String() string {
	return string(c)
}

// IsValid reports whether c is one of the codes above
func (c Code) IsValid() bool {
	_, ok := codeTable[c]
	return ok
}

// Category groups codes by subsystem: generic, configuration, language,
// canvas or storage
func (c Code) Category() string {
	if info, ok := codeTable[c]; ok {
		return info.category
	}
	return "generic"
}

// Severity is the severity an error gets when it is given this code
func (c Code) Severity() Severity {
	if info, ok := codeTable[c]; ok {
		return info.severity
	}
	return SeverityMedium
}

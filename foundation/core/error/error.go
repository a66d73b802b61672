// File: error.go
// Title: Core Error Implementation
// Description: The Error type: a message and optional cause, classified by
//              code and severity, annotated with the failing operation and
//              free-form details. Works with errors.Is/As through Unwrap.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2025-10-02 v0.2.0: Coder interface so foreign error types classify too
// - 2025-10-09 v0.3.0: Explicit severity tracked separately from the code default

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Coder is implemented by every error that carries a classification code.
// *Error implements it, and so do the language core's SyntaxError and NameError.
type Coder interface {
	Code() Code
}

// Error is a coded error with context. Builder methods modify the receiver
// and return it, so an error is normally built in one expression.
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	pinned    bool // severity set by WithSeverity
	operation string
	details   map[string]interface{}
	timestamp time.Time
}

// New creates an error with CodeUnknown and medium severity
func New(message string) *Error {
	return &Error{
		message:   message,
		code:      CodeUnknown,
		severity:  CodeUnknown.Severity(),
		details:   map[string]interface{}{},
		timestamp: time.Now(),
	}
}

// Newf creates an error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap returns nil for a nil err. Otherwise the new error takes over the
// classification of err: code, severity and details from an *Error, the
// code alone from any other Coder.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(message)
	e.cause = err

	var inner *Error
	var coder Coder
	switch {
	case errors.As(err, &inner):
		e.code, e.severity, e.pinned = inner.code, inner.severity, inner.pinned
		for k, v := range inner.details {
			e.details[k] = v
		}
	case errors.As(err, &coder):
		e.code = coder.Code()
		e.severity = e.code.Severity()
	}
	return e
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// WithCode sets the code. Unless WithSeverity was called the severity
// follows the code.
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	if !e.pinned {
		e.severity = code.Severity()
	}
	return e
}

// WithSeverity overrides the severity derived from the code
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	e.pinned = true
	return e
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithOperation records the failing operation, e.g. "history.Open"
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// Message returns the message without the cause chain
func (e *Error) Message() string { return e.message }

func (e *Error) Code() Code { return e.code }

func (e *Error) Severity() Severity { return e.severity }

func (e *Error) Timestamp() time.Time { return e.timestamp }

func (e *Error) Operation() string { return e.operation }

// Details returns a copy of the details
func (e *Error) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

func (e *Error) detailKeys() []string {
	keys := make([]string, 0, len(e.details))
	for k := range e.details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the error over several "Label: value" lines
func (e *Error) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\nCode: %s\nSeverity: %s", e.message, e.code, e.severity)
	if e.operation != "" {
		fmt.Fprintf(&b, "\nOperation: %s", e.operation)
	}
	if len(e.details) > 0 {
		pairs := make([]string, 0, len(e.details))
		for _, k := range e.detailKeys() {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.details[k]))
		}
		fmt.Fprintf(&b, "\nDetails: {%s}", strings.Join(pairs, ", "))
	}
	if e.cause != nil {
		fmt.Fprintf(&b, "\nCause: %s", e.cause)
	}
	return b.String()
}

type errorJSON struct {
	Message   string                 `json:"message"`
	Code      Code                   `json:"code"`
	Severity  string                 `json:"severity"`
	Timestamp string                 `json:"timestamp"`
	Operation string                 `json:"operation,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     string                 `json:"cause,omitempty"`
}

func (e *Error) MarshalJSON() ([]byte, error) {
	out := errorJSON{
		Message:   e.message,
		Code:      e.code,
		Severity:  e.severity.String(),
		Timestamp: e.timestamp.Format(time.RFC3339),
		Operation: e.operation,
		Details:   e.details,
	}
	if e.cause != nil {
		out.Cause = e.cause.Error()
	}
	return json.Marshal(out)
}

// HasCode reports whether any error in err's chain carries code
func HasCode(err error, code Code) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if c, ok := err.(Coder); ok && c.Code() == code {
			return true
		}
	}
	return false
}

// GetCode returns the outermost code in err's chain, or CodeUnknown
func GetCode(err error) Code {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeUnknown
}

// GetSeverity returns the severity of the outermost *Error in the chain,
// falling back to the code's default for other coded errors
func GetSeverity(err error) Severity {
	var e *Error
	if errors.As(err, &e) {
		return e.severity
	}
	return GetCode(err).Severity()
}

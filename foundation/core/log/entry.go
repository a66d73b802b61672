// File: entry.go
// Title: Log Entry Structure
// Description: One log message together with its fields, error, duration and
//              the console session it belongs to.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive log entry structure
// - 2025-10-02 v0.2.0: Request and user IDs replaced by the console session ID
// - 2025-10-09 v0.3.0: Caller reduced to file:line, field helpers trimmed

package log

import (
	"sort"
	"time"
)

// Fields are key-value pairs attached to an entry
type Fields map[string]interface{}

// Clone returns a copy; nil stays nil
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the field names sorted, so formatted lines are stable
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry is a single log line before formatting
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	SessionID string
	Fields    Fields
	Error     error
	Duration  time.Duration
	Caller    string // file:line, empty unless enabled
}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

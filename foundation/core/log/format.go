// File: format.go
// Title: Log Format Definitions
// Description: Output formats for log entries: JSON, plain text, colored
//              console text and logfmt.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with multiple output formats
// - 2025-10-02 v0.2.0: Stable field order, session ID, error code in text output
// - 2025-10-09 v0.3.0: Formats share one ordered view of the entry

package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// Format represents the output format for log messages
type Format int

const (
	// FormatJSON outputs one JSON object per line
	FormatJSON Format = iota

	// FormatText outputs human-readable text logs
	FormatText

	// FormatConsole is text colored by level, for an interactive terminal
	FormatConsole

	// FormatLogfmt outputs key=value pairs
	FormatLogfmt
)

var formatNames = map[Format]string{
	FormatJSON:    "json",
	FormatText:    "text",
	FormatConsole: "console",
	FormatLogfmt:  "logfmt",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat parses a format name, case-insensitively
func ParseFormat(format string) (Format, error) {
	in := strings.ToLower(strings.TrimSpace(format))
	for f, name := range formatNames {
		if in == name {
			return f, nil
		}
	}
	return FormatText, &ParseError{Input: format, Type: "format"}
}

// Formatter turns an entry into one output line
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// GetFormatter returns a formatter for the specified format
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatConsole:
		return NewConsoleFormatter()
	case FormatLogfmt:
		return NewLogfmtFormatter()
	default:
		return NewTextFormatter()
	}
}

// codeOf returns the classification code of err, or "" for plain errors
func codeOf(err error) string {
	if code := mdwerror.GetCode(err); code != mdwerror.CodeUnknown {
		return code.String()
	}
	return ""
}

type pair struct {
	key   string
	value interface{}
}

// fieldPairs lists the entry's fields in key order; error values are
// reduced to their message
func fieldPairs(entry *Entry) []pair {
	pairs := make([]pair, 0, len(entry.Fields))
	for _, k := range entry.Fields.Keys() {
		v := entry.Fields[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		pairs = append(pairs, pair{k, v})
	}
	return pairs
}

// extraPairs lists the error code, error message and caller, in the order
// every format writes them after the fields
func extraPairs(entry *Entry) []pair {
	var pairs []pair
	if entry.Error != nil {
		if code := codeOf(entry.Error); code != "" {
			pairs = append(pairs, pair{"code", code})
		}
		pairs = append(pairs, pair{"error", entry.Error.Error()})
	}
	if entry.Caller != "" {
		pairs = append(pairs, pair{"caller", entry.Caller})
	}
	return pairs
}

func durationMillis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339}
}

func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := map[string]interface{}{
		"timestamp": entry.Timestamp.Format(f.TimestampFormat),
		"level":     entry.Level.String(),
		"message":   entry.Message,
	}
	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.SessionID != "" {
		data["session_id"] = entry.SessionID
	}
	for _, p := range append(fieldPairs(entry), extraPairs(entry)...) {
		data[p.key] = p.value
	}
	if entry.Duration > 0 {
		data["duration_ms"] = durationMillis(entry.Duration)
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// TextFormatter writes "time [TAG] {logger} (session=id) message [k=v ...]"
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "15:04:05"}
}

func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var b strings.Builder

	if !f.DisableTimestamp {
		b.WriteString(entry.Timestamp.Format(f.TimestampFormat))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s] ", entry.Level.ShortString())
	if entry.Logger != "" {
		fmt.Fprintf(&b, "{%s} ", entry.Logger)
	}
	if entry.SessionID != "" {
		fmt.Fprintf(&b, "(session=%s) ", entry.SessionID)
	}
	b.WriteString(entry.Message)

	if pairs := fieldPairs(entry); len(pairs) > 0 {
		fields := make([]string, len(pairs))
		for i, p := range pairs {
			fields[i] = fmt.Sprintf("%s=%v", p.key, p.value)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(fields, " "))
	}
	for _, p := range extraPairs(entry) {
		if p.key == "error" {
			fmt.Fprintf(&b, " error=%q", p.value)
		} else {
			fmt.Fprintf(&b, " %s=%v", p.key, p.value)
		}
	}
	if entry.Duration > 0 {
		fmt.Fprintf(&b, " duration=%s", entry.Duration)
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// ConsoleFormatter is the text format wrapped in the level's color
type ConsoleFormatter struct {
	DisableColors bool
	*TextFormatter
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{TextFormatter: NewTextFormatter()}
}

func (f *ConsoleFormatter) Format(entry *Entry) ([]byte, error) {
	data, err := f.TextFormatter.Format(entry)
	if err != nil || f.DisableColors {
		return data, err
	}
	line := strings.TrimSuffix(string(data), "\n")
	return []byte(entry.Level.Color() + line + colorReset + "\n"), nil
}

// LogfmtFormatter formats log entries in logfmt format
type LogfmtFormatter struct {
	TimestampFormat string
}

// NewLogfmtFormatter creates a new logfmt formatter
func NewLogfmtFormatter() *LogfmtFormatter {
	return &LogfmtFormatter{TimestampFormat: time.RFC3339}
}

func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	parts := []string{
		"timestamp=" + entry.Timestamp.Format(f.TimestampFormat),
		"level=" + entry.Level.String(),
		fmt.Sprintf("message=%q", entry.Message),
	}
	if entry.Logger != "" {
		parts = append(parts, "logger="+entry.Logger)
	}
	if entry.SessionID != "" {
		parts = append(parts, "session_id="+entry.SessionID)
	}
	for _, p := range append(fieldPairs(entry), extraPairs(entry)...) {
		if s, ok := p.value.(string); ok {
			parts = append(parts, fmt.Sprintf("%s=%q", p.key, s))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%v", p.key, p.value))
		}
	}
	if entry.Duration > 0 {
		parts = append(parts, fmt.Sprintf("duration_ms=%.3f", durationMillis(entry.Duration)))
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}

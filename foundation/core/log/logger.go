// File: logger.go
// Title: Core Logger Implementation
// Description: Leveled logger with context fields, a console session tag and
//              pluggable formats. Loggers are values: every With method
//              returns a copy sharing the same output.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-10-02 v0.2.0: stderr/warn default, session ID, synchronous writes only
// - 2025-10-09 v0.3.0: Immutable loggers over a shared sink, one emit path

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// sink serializes writes from every logger derived from the same root
type sink struct {
	mu  sync.Mutex
	out io.Writer
}

func (s *sink) write(p []byte) {
	s.mu.Lock()
	_, _ = s.out.Write(p)
	s.mu.Unlock()
}

// Logger writes structured entries. The zero value is not usable; create
// one with New or NewWithConfig.
type Logger struct {
	level     Level
	formatter Formatter
	sink      *sink
	name      string
	sessionID string
	fields    Fields
	caller    bool
}

// Config represents logger configuration
type Config struct {
	Level        Level
	Format       Format
	Output       io.Writer // defaults to os.Stderr
	Name         string
	EnableCaller bool
}

// New creates a logger writing text to stderr at the default level
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatText})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level:     config.Level,
		formatter: GetFormatter(config.Format),
		sink:      &sink{out: out},
		name:      config.Name,
		fields:    make(Fields),
		caller:    config.EnableCaller,
	}
}

// Discard returns a logger that drops everything, handy in tests
func Discard() *Logger {
	return NewWithConfig(Config{Level: levelCount, Output: io.Discard})
}

func (l *Logger) clone() *Logger {
	c := *l
	c.fields = l.fields.Clone()
	if c.fields == nil {
		c.fields = make(Fields)
	}
	return &c
}

// WithLevel returns a copy with the minimum log level set
func (l *Logger) WithLevel(level Level) *Logger {
	c := l.clone()
	c.level = level
	return c
}

// WithFormat returns a copy using the given format
func (l *Logger) WithFormat(format Format) *Logger {
	c := l.clone()
	c.formatter = GetFormatter(format)
	return c
}

// WithOutput returns a copy writing to output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	c := l.clone()
	c.sink = &sink{out: output}
	return c
}

// WithField returns a copy that adds a persistent field to all entries
func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

// WithSessionID returns a copy tagging entries with a console session ID
func (l *Logger) WithSessionID(sessionID string) *Logger {
	c := l.clone()
	c.sessionID = sessionID
	return c
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

// GetLevel returns the minimum level
func (l *Logger) GetLevel() Level { return l.level }

func (l *Logger) Trace(message string, fields ...Fields) {
	l.emit(LevelTrace, message, nil, 0, fields)
}

func (l *Logger) Debug(message string, fields ...Fields) {
	l.emit(LevelDebug, message, nil, 0, fields)
}

func (l *Logger) Info(message string, fields ...Fields) {
	l.emit(LevelInfo, message, nil, 0, fields)
}

func (l *Logger) Warn(message string, fields ...Fields) {
	l.emit(LevelWarn, message, nil, 0, fields)
}

func (l *Logger) Error(message string, fields ...Fields) {
	l.emit(LevelError, message, nil, 0, fields)
}

// DebugWithErr logs a debug message with an error object
func (l *Logger) DebugWithErr(message string, err error, fields ...Fields) {
	l.emit(LevelDebug, message, err, 0, fields)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.emit(LevelWarn, message, err, 0, fields)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.emit(LevelError, message, err, 0, fields)
}

// LogError logs err at a level derived from its severity. Coded errors
// contribute their code, severity, operation and details as fields.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	code := mdwerror.GetCode(err)
	severity := mdwerror.GetSeverity(err)
	fields := Fields{
		"error_code":     code.String(),
		"error_category": code.Category(),
		"error_severity": severity.String(),
	}
	if e, ok := err.(*mdwerror.Error); ok {
		if op := e.Operation(); op != "" {
			fields["error_operation"] = op
		}
		for k, v := range e.Details() {
			fields["error_"+k] = v
		}
	}

	level := LevelError
	switch severity {
	case mdwerror.SeverityLow:
		level = LevelDebug
	case mdwerror.SeverityMedium:
		level = LevelWarn
	}
	l.emit(level, err.Error(), err, 0, []Fields{fields})
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// callerSkip is the frame distance from write to the code that logged:
// write, emit or Timer.finish, the public method, then the caller.
const callerSkip = 3

// emit serves the public logging methods
func (l *Logger) emit(level Level, message string, err error, d time.Duration, fields []Fields) {
	l.write(level, message, err, d, fields)
}

// write is the single output path
func (l *Logger) write(level Level, message string, err error, d time.Duration, fields []Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.SessionID = l.sessionID
	entry.Error = err
	entry.Duration = d
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}
	if l.caller {
		if _, file, line, ok := runtime.Caller(callerSkip); ok {
			entry.Caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}
	}

	if out, ferr := l.formatter.Format(entry); ferr == nil {
		l.sink.write(out)
	}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the process-wide logger
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

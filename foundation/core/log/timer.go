// File: timer.go
// Title: Performance Timer
// Description: Measures an operation and logs its duration when stopped.
//              The console times every script run with it.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-10-02 v0.2.0: Durations recorded on the entry, checkpoints removed
// - 2025-10-09 v0.3.0: Written through the logger's single output path

package log

import (
	"time"
)

// Timer measures one operation. It is not safe for concurrent use.
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	level     Level
	done      bool
}

// NewTimer starts a timer for operation; the result is logged at debug
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the level of the completion entry
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to the completion entry
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop logs "<operation> completed" with the elapsed time. Only the first
// Stop logs; later calls return 0.
func (t *Timer) Stop() time.Duration {
	return t.finish(t.level, " completed", nil)
}

// StopWithError logs "<operation> failed" with err, at error level or
// higher
func (t *Timer) StopWithError(err error) time.Duration {
	level := t.level
	if level < LevelError {
		level = LevelError
	}
	return t.finish(level, " failed", err)
}

// Cancel stops the timer without logging
func (t *Timer) Cancel() {
	t.done = true
}

// IsRunning reports whether the timer has been neither stopped nor cancelled
func (t *Timer) IsRunning() bool {
	return !t.done
}

func (t *Timer) finish(level Level, suffix string, err error) time.Duration {
	if t.done {
		return 0
	}
	t.done = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		fields := t.fields.Clone()
		fields["operation"] = t.operation
		fields["success"] = err == nil
		t.logger.write(level, t.operation+suffix, err, elapsed, []Fields{fields})
	}
	return elapsed
}

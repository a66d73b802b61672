// File: level.go
// Title: Log Level Definitions
// Description: Log levels with their names, short tags and terminal colors.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2025-10-02 v0.2.0: Audit level removed, warn is the default
// - 2025-10-09 v0.3.0: Level metadata kept in one table

package log

import (
	"strings"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace logs every token and statement, only useful while debugging the interpreter
	LevelTrace Level = iota

	// LevelDebug logs dispatched commands and timings
	LevelDebug

	// LevelInfo logs session lifecycle events
	LevelInfo

	// LevelWarn indicates a degraded but working session, e.g. history disabled
	LevelWarn

	// LevelError represents failures that need attention
	LevelError

	// LevelFatal is the highest level; nothing in Pebble exits through the logger
	LevelFatal

	levelCount
)

type levelMeta struct {
	name    string
	tag     string
	color   string
	aliases []string
}

var levelTable = [levelCount]levelMeta{
	LevelTrace: {"trace", "TRC", "\033[37m", []string{"trc"}},
	LevelDebug: {"debug", "DBG", "\033[36m", []string{"dbg"}},
	LevelInfo:  {"info", "INF", "\033[32m", []string{"inf", "information"}},
	LevelWarn:  {"warn", "WRN", "\033[33m", []string{"wrn", "warning"}},
	LevelError: {"error", "ERR", "\033[31m", []string{"err"}},
	LevelFatal: {"fatal", "FTL", "\033[35m", []string{"ftl"}},
}

const colorReset = "\033[0m"

func (l Level) meta() (levelMeta, bool) {
	if l < 0 || l >= levelCount {
		return levelMeta{}, false
	}
	return levelTable[l], true
}

// String returns the lowercase level name
func (l Level) String() string {
	if m, ok := l.meta(); ok {
		return m.name
	}
	return "unknown"
}

// ShortString returns the three letter tag used by the text formats
func (l Level) ShortString() string {
	if m, ok := l.meta(); ok {
		return m.tag
	}
	return "???"
}

// Color returns the ANSI color code for the level
func (l Level) Color() string {
	if m, ok := l.meta(); ok {
		return m.color
	}
	return colorReset
}

// ShouldLog returns true if this level passes the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel accepts level names, their tags and a few common aliases
func ParseLevel(level string) (Level, error) {
	in := strings.ToLower(strings.TrimSpace(level))
	for l, m := range levelTable {
		if in == m.name || in == strings.ToLower(m.tag) {
			return Level(l), nil
		}
		for _, alias := range m.aliases {
			if in == alias {
				return Level(l), nil
			}
		}
	}
	return DefaultLevel(), &ParseError{Input: level, Type: "level"}
}

// ParseError is returned for unknown level or format names
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// DefaultLevel keeps the console quiet unless something degrades
func DefaultLevel() Level {
	return LevelWarn
}

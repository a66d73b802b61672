// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating application loggers
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"
	"time"

	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
)

var (
	// Global FileWriter instance, one per process and path
	globalFileWriter *FileWriter
	fileWriterMu     sync.Mutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, shown as {name} in text output
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format (json, text, console, logfmt; default: console)
	Format string

	// Optional log file; entries are appended there as well
	File string

	// Primary output (default: os.Stderr)
	Output io.Writer

	// Additional outputs
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "warn",
		Format:      "console",
	}
}

// NewLogger creates a new Foundation logger. Program output goes to stdout,
// so diagnostics default to stderr.
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		level = mdwlog.DefaultLevel()
	}
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatConsole
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	// the log file receives the same lines as the primary output
	if cfg.File != "" {
		if fw := getOrCreateFileWriter(cfg.File); fw != nil {
			output = io.MultiWriter(output, fw)
		}
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: level <= mdwlog.LevelDebug,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// getOrCreateFileWriter returns the global FileWriter, creating it if necessary
func getOrCreateFileWriter(path string) *FileWriter {
	fileWriterMu.Lock()
	defer fileWriterMu.Unlock()

	if globalFileWriter != nil && globalFileWriter.Path() == path {
		return globalFileWriter
	}

	writer, err := NewFileWriter(FileWriterConfig{
		Path:        path,
		BatchSize:   100,
		FlushPeriod: 2 * time.Second,
	})
	if err != nil {
		return nil
	}
	if globalFileWriter != nil {
		_ = globalFileWriter.Close()
	}
	globalFileWriter = writer
	return globalFileWriter
}

// CloseGlobalFileWriter flushes and closes the global FileWriter
func CloseGlobalFileWriter() error {
	fileWriterMu.Lock()
	defer fileWriterMu.Unlock()

	if globalFileWriter != nil {
		err := globalFileWriter.Close()
		globalFileWriter = nil
		return err
	}
	return nil
}

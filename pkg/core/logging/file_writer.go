// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     logging
// Description: FileWriter appends log lines to a file in batches
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

package logging

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// FileWriter implements io.Writer and appends buffered log lines to a file
type FileWriter struct {
	// Configuration
	path        string
	batchSize   int
	flushPeriod time.Duration

	// Destination
	file *os.File

	// Batching
	buffer   [][]byte
	bufferMu sync.Mutex
	flushMu  sync.Mutex
	flushCh  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	closed   bool
}

// FileWriterConfig holds configuration for FileWriter
type FileWriterConfig struct {
	Path        string        // Log file path, created with its directory
	BatchSize   int           // Number of lines to batch (default: 100)
	FlushPeriod time.Duration // How often to flush (default: 2s)
}

// NewFileWriter opens the log file for appending and starts the flush worker
func NewFileWriter(cfg FileWriterConfig) (*FileWriter, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushPeriod <= 0 {
		cfg.FlushPeriod = 2 * time.Second
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, mdwerror.Wrap(err, "failed to create log directory").
			WithCode(mdwerror.CodeIO).
			WithOperation("logging.NewFileWriter").
			WithDetail("path", cfg.Path)
	}
	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to open log file").
			WithCode(mdwerror.CodeIO).
			WithOperation("logging.NewFileWriter").
			WithDetail("path", cfg.Path)
	}

	w := &FileWriter{
		path:        cfg.Path,
		batchSize:   cfg.BatchSize,
		flushPeriod: cfg.FlushPeriod,
		file:        file,
		buffer:      make([][]byte, 0, cfg.BatchSize),
		flushCh:     make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	go w.flushWorker()

	return w, nil
}

// Path returns the file the writer appends to
func (w *FileWriter) Path() string {
	return w.path
}

// Write implements io.Writer. The line is copied because the logger may
// reuse p after Write returns.
func (w *FileWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	w.bufferMu.Lock()
	if w.closed {
		w.bufferMu.Unlock()
		return 0, os.ErrClosed
	}
	w.buffer = append(w.buffer, line)
	shouldFlush := len(w.buffer) >= w.batchSize
	w.bufferMu.Unlock()

	// Trigger flush if buffer is full
	if shouldFlush {
		select {
		case w.flushCh <- struct{}{}:
		default:
		}
	}

	return len(p), nil
}

// Flush writes all buffered lines to the file
func (w *FileWriter) Flush() error {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.bufferMu.Lock()
	if len(w.buffer) == 0 {
		w.bufferMu.Unlock()
		return nil
	}
	lines := w.buffer
	w.buffer = make([][]byte, 0, w.batchSize)
	w.bufferMu.Unlock()

	for _, line := range lines {
		if _, err := w.file.Write(line); err != nil {
			return mdwerror.Wrap(err, "failed to write log file").
				WithCode(mdwerror.CodeIO).
				WithOperation("logging.FileWriter.Flush").
				WithDetail("path", w.path)
		}
	}
	return nil
}

// flushWorker periodically flushes the buffer
func (w *FileWriter) flushWorker() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.flushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-w.flushCh:
			_ = w.Flush()
		case <-ticker.C:
			_ = w.Flush()
		}
	}
}

// Close stops the flush worker, writes what is left and closes the file
func (w *FileWriter) Close() error {
	w.bufferMu.Lock()
	if w.closed {
		w.bufferMu.Unlock()
		return nil
	}
	w.closed = true
	w.bufferMu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	flushErr := w.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

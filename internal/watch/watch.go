// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     watch
// Description: Re-run notification for script files changed on disk
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher
type Options struct {
	Logger   *mdwlog.Logger
	Debounce time.Duration
}

// Watcher reports changes to one file. The parent directory is watched so
// editors that save by renaming a temp file over the original are seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *mdwlog.Logger
}

// New starts watching path. Changes are delivered by Run.
func New(path string, opts Options) (*Watcher, error) {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid path").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.New")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeIO).
			WithOperation("watch.New")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeIO).
			WithOperation("watch.New").
			WithDetail("path", filepath.Dir(abs))
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: opts.Debounce,
		logger:   logger.WithField("component", "pebble-watch"),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string { return w.path }

// Run calls fn once per burst of changes until ctx is done. The watcher is
// closed when Run returns.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("file changed", mdwlog.Fields{"file": w.path, "op": event.Op.String()})
			timer.Reset(w.debounce)

		case <-timer.C:
			fn()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("watcher error", err)
		}
	}
}

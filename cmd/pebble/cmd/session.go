package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/AGOODGITDUCK/PebbleCode/internal/canvas"
	"github.com/AGOODGITDUCK/PebbleCode/internal/console"
	"github.com/AGOODGITDUCK/PebbleCode/internal/history"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/version"
)

// sessionFlags are shared by the console and tui commands
type sessionFlags struct {
	canvasAddr string
	resume     string
	noHistory  bool
}

// session bundles what a console needs beyond its own state
type session struct {
	opts    console.Options
	cleanup []func()
}

func (s *session) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

// openHistory opens the configured history store. A store that cannot be
// opened is logged and replaced by a no-op store.
func openHistory(disabled bool) (history.Store, func()) {
	if disabled || !cfg.History.Enabled {
		return history.NopStore{}, func() {}
	}
	store, err := history.Open(history.Config{Path: cfg.History.Path, Logger: logger})
	if err != nil {
		logger.WarnWithErr("history disabled", err)
		return history.NopStore{}, func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.WarnWithErr("failed to close history", err)
		}
	}
}

// newSession prepares console options. With a canvas address the scene is
// also served to websocket viewers; notice receives the viewer URL.
func newSession(ctx context.Context, flags sessionFlags, notice io.Writer) (*session, error) {
	s := &session{}

	store, closeStore := openHistory(flags.noHistory)
	s.cleanup = append(s.cleanup, closeStore)

	scene := canvas.NewScene(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Background)
	s.opts = console.Options{
		Logger:  logger,
		Config:  cfg,
		History: store,
		Scene:   scene,
		Resume:  flags.resume,
	}

	addr := flags.canvasAddr
	if addr == "" {
		addr = cfg.Canvas.Addr
	}
	if addr == "" {
		return s, nil
	}

	b := canvas.NewBroadcaster(scene, canvas.BroadcasterOptions{Logger: logger, Version: version.Canvas})
	serveCtx, stop := context.WithCancel(ctx)
	ready := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- b.ListenAndServe(serveCtx, addr, ready)
	}()

	select {
	case bound := <-ready:
		fmt.Fprintf(notice, "Canvas viewer at http://%s/ (health at /health)\n", bound)
	case err := <-errCh:
		stop()
		s.close()
		return nil, err
	}

	s.opts.Surface = b
	s.cleanup = append(s.cleanup, func() {
		_ = b.Close()
		stop()
	})
	return s, nil
}

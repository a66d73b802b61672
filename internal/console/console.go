// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     console
// Description: Line-oriented Pebble console with GUI drawing mode
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

// Package console implements the interactive Pebble shell: command
// dispatch, the session directory, script execution, the legacy line
// dispatcher and GUI drawing mode.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/utils/stringx"
	"github.com/AGOODGITDUCK/PebbleCode/internal/canvas"
	"github.com/AGOODGITDUCK/PebbleCode/internal/history"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/cache"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/config"
)

// Options configures a Console
type Options struct {
	Logger  *mdwlog.Logger
	Config  *config.Config // defaults to config.Default()
	Output  io.Writer      // defaults to os.Stdout
	Engine  *pebble.Engine // defaults to an engine writing to Output
	History history.Store  // defaults to history.NopStore

	// Programs caches parsed scripts for the run command; a private cache
	// is created when nil
	Programs *cache.ProgramCache

	// Scene is drawn on in GUI mode; created from the canvas config when nil
	Scene *canvas.Scene

	// Surface wraps the scene, e.g. with a canvas.Broadcaster; the scene
	// itself is used when nil
	Surface canvas.Surface

	// Dir is the starting session directory; defaults to the process cwd
	Dir string

	// Resume loads the variables saved by this session ID, or by the most
	// recent session when set to "last"
	Resume string
}

// Console is one interactive session. It is not safe for concurrent use.
type Console struct {
	cfg     *config.Config
	out     io.Writer
	logger  *mdwlog.Logger
	engine   *pebble.Engine
	env      *value.Env
	history  history.Store
	programs *cache.ProgramCache

	scene      *canvas.Scene
	surface    canvas.Surface
	dispatcher *canvas.Dispatcher

	sessionID string
	resume    string
	dir       string
	lastDir   string
	guiMode   bool
	running   bool
}

// New creates a console session
func New(opts Options) *Console {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	engine := opts.Engine
	if engine == nil {
		engine = pebble.New(pebble.Options{
			Logger:       logger,
			Output:       out,
			Substitution: cfg.SubstitutionMode(),
		})
	}
	store := opts.History
	if store == nil {
		store = history.NopStore{}
	}
	programs := opts.Programs
	if programs == nil {
		programs = cache.NewProgramCache(cache.DefaultConfig())
	}
	dir := opts.Dir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}

	return &Console{
		cfg:        cfg,
		out:        out,
		logger:     logger.WithField("component", "pebble-console"),
		engine:     engine,
		env:        value.NewEnv(),
		history:    store,
		programs:   programs,
		scene:      opts.Scene,
		surface:    opts.Surface,
		dispatcher: canvas.NewDispatcher(canvas.Options{Logger: logger}),
		resume:     opts.Resume,
		dir:        dir,
		lastDir:    dir,
		running:    true,
	}
}

// Begin starts the history session and restores saved variables when
// resuming. Handle works without it; commands are then not recorded.
func (c *Console) Begin(ctx context.Context) error {
	if c.sessionID != "" {
		return nil
	}

	if c.resume != "" {
		if err := c.restore(ctx, c.resume); err != nil {
			return err
		}
	}

	id, err := c.history.StartSession(ctx)
	if err != nil {
		return err
	}
	c.sessionID = id
	c.logger = c.logger.WithSessionID(id)
	c.logger.Debug("session started", mdwlog.Fields{"dir": c.dir})
	return nil
}

func (c *Console) restore(ctx context.Context, id string) error {
	if id == "last" {
		sessions, err := c.history.Sessions(ctx, 1)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return nil
		}
		id = sessions[0].ID
	}

	env, err := c.history.LoadVariables(ctx, id)
	if err != nil {
		return err
	}
	for _, name := range env.Names() {
		v, _ := env.Get(name)
		c.env.Set(name, v)
	}
	c.logger.Debug("variables restored", mdwlog.Fields{"session": id, "count": env.Len()})
	return nil
}

// End saves the session variables and closes the history session
func (c *Console) End(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}
	id := c.sessionID
	c.sessionID = ""

	if err := c.history.SaveVariables(ctx, id, c.env); err != nil {
		return err
	}
	return c.history.EndSession(ctx, id)
}

// Run prints the banner and handles lines from in until exit, end of
// input or cancellation of ctx
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	if err := c.Begin(ctx); err != nil {
		c.logger.WarnWithErr("history unavailable", err)
	}
	defer func() {
		if err := c.End(context.Background()); err != nil {
			c.logger.WarnWithErr("failed to save session", err)
		}
	}()

	c.println(c.cfg.Console.Banner)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for c.running {
		fmt.Fprint(c.out, c.Prompt()+" ")

		var line string
		select {
		case <-ctx.Done():
			c.println("\nExiting...")
			return nil
		case err := <-readErr:
			if err != nil {
				c.logger.WarnWithErr("input failed", err)
			}
			c.println("\nExiting...")
			return nil
		case line = <-lines:
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := c.Handle(ctx, line); err != nil {
			c.println("Error: " + err.Error())
		}
	}
	return nil
}

// Handle runs one console line and records it in the history
func (c *Console) Handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	mode := history.ModeConsole
	if c.guiMode {
		mode = history.ModeGUI
	} else if action, _ := stringx.SplitCommand(line); action == "run" || action == "pebble" {
		mode = history.ModeScript
	}

	err := c.dispatch(ctx, line)
	if err != nil {
		c.logger.DebugWithErr("command failed", err, mdwlog.Fields{"line": line})
	}
	c.record(ctx, mode, line, err)
	return err
}

func (c *Console) record(ctx context.Context, mode history.Mode, line string, err error) {
	if c.sessionID == "" {
		return
	}
	cmd := &history.Command{SessionID: c.sessionID, Mode: mode, Line: line, OK: err == nil}
	if err != nil {
		cmd.Message = err.Error()
	}
	if herr := c.history.Append(ctx, cmd); herr != nil {
		c.logger.WarnWithErr("failed to record command", herr)
	}
}

// Running reports whether the session has not been ended with exit
func (c *Console) Running() bool { return c.running }

// InGUI reports whether the console is in GUI mode
func (c *Console) InGUI() bool { return c.guiMode }

// Dir returns the session directory
func (c *Console) Dir() string { return c.dir }

// Env returns the session environment
func (c *Console) Env() *value.Env { return c.env }

// SessionID returns the history session, empty before Begin
func (c *Console) SessionID() string { return c.sessionID }

// Scene returns the drawing scene, nil before GUI mode was first entered
func (c *Console) Scene() *canvas.Scene { return c.scene }

// Banner returns the greeting printed when a session starts
func (c *Console) Banner() string { return c.cfg.Console.Banner }

// Prompt returns the prompt for the current mode, without trailing space
func (c *Console) Prompt() string {
	if c.guiMode {
		return c.cfg.Console.GUIPrompt
	}
	return c.cfg.Console.Prompt
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

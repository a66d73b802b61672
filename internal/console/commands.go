package console

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/utils/stringx"
)

// Console messages
const (
	msgNoTask         = "No task"
	msgInvalidCommand = "Invalid command"
)

// dispatch routes one trimmed line by its first word
func (c *Console) dispatch(ctx context.Context, line string) error {
	action, arg := stringx.SplitCommand(line)

	if c.guiMode {
		if action == "leavegui" {
			c.leaveGUI()
			return nil
		}
		// "gui" is optional in GUI mode, so console scripts work unchanged
		if action == "gui" && arg != "" {
			line = arg
		}
		return c.draw(line)
	}

	switch action {
	case "exit":
		c.running = false
	case "credits":
		c.println(c.cfg.Console.Credits)
	case "help":
		c.printHelp()
	case "vars":
		c.printVars()
	case "history":
		return c.printHistory(ctx, arg)
	case "cd", "run", "pebble", "print", "gui":
		if arg == "" {
			c.println(msgNoTask)
			return nil
		}
		return c.withArgument(ctx, action, arg)
	default:
		c.println(msgInvalidCommand)
	}
	return nil
}

func (c *Console) withArgument(ctx context.Context, action, arg string) error {
	switch action {
	case "cd":
		return c.changeDir(arg)
	case "run":
		return c.runFile(ctx, arg)
	case "pebble":
		return c.runScriptFile(ctx, arg)
	case "print":
		c.println(c.engine.EvaluateText(arg, c.env).String())
	case "gui":
		if arg == "mode" {
			c.enterGUI()
			return nil
		}
		return c.draw(arg)
	}
	return nil
}

// resolve interprets path relative to the session directory
func (c *Console) resolve(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.dir, path)
}

// changeDir moves the session directory. The process working directory is
// never touched.
func (c *Console) changeDir(path string) error {
	target := c.resolve(path)
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			c.println(fmt.Sprintf("Error: Directory '%s' not found", path))
			return nil
		}
		return mdwerror.Wrap(err, "cannot change directory").
			WithCode(mdwerror.CodeIO).
			WithOperation("console.cd").
			WithDetail("path", path)
	}
	if !info.IsDir() {
		return mdwerror.Newf("not a directory: '%s'", path).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("console.cd")
	}

	c.dir = target
	c.println("Current directory: " + c.dir)
	return nil
}

// readScript loads a script file; a missing file is reported to the user
func (c *Console) readScript(name string) (string, bool, error) {
	src, err := pebble.ReadSource(c.resolve(name))
	if err != nil {
		if mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			c.println(fmt.Sprintf("Error: File '%s' not found", name))
			return "", false, nil
		}
		return "", false, err
	}
	return src, true, nil
}

// runFile runs a script through the language pipeline. Files that contain
// drawing lines go through the line dispatcher instead.
func (c *Console) runFile(ctx context.Context, name string) error {
	src, ok, err := c.readScript(name)
	if !ok {
		return err
	}
	if hasDrawing(src) {
		c.enterGUI()
		return c.RunScript(ctx, src)
	}

	if timeout := c.cfg.General.RunTimeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	block, err := c.programs.Parse(name, src, c.engine.Parse)
	if err != nil {
		return err
	}

	// script errors reach the user as "Error: ..." lines, not as log entries
	timer := c.logger.StartTimer("run").WithField("file", name)
	if err := c.engine.Execute(ctx, block, c.env); err != nil {
		timer.Cancel()
		return err
	}
	timer.Stop()
	return nil
}

// runScriptFile runs a file through the line dispatcher
func (c *Console) runScriptFile(ctx context.Context, name string) error {
	src, ok, err := c.readScript(name)
	if !ok {
		return err
	}
	if hasDrawing(src) && !c.guiMode {
		c.enterGUI()
	}
	return c.RunScript(ctx, src)
}

func hasDrawing(src string) bool {
	for _, line := range stringx.SplitLines(src) {
		if strings.HasPrefix(strings.TrimSpace(line), "gui") {
			return true
		}
	}
	return false
}

// RunScript is the line dispatcher used for console scripts. Each line is
// a print, an assignment when it contains '=', or a console command. A
// failing line is reported and the next one runs.
func (c *Console) RunScript(ctx context.Context, code string) error {
	for n, raw := range stringx.SplitLines(code) {
		if err := ctx.Err(); err != nil {
			return mdwerror.Wrap(err, "script cancelled").
				WithCode(mdwerror.CodeRuntime).
				WithOperation("console.RunScript").
				WithDetail("line", n+1)
		}
		if !c.running {
			return nil
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if err := c.scriptLine(ctx, line); err != nil {
			c.logger.DebugWithErr("script line failed", err, mdwlog.Fields{"line": n + 1})
			c.println("Error: " + err.Error())
		}
	}
	return nil
}

func (c *Console) scriptLine(ctx context.Context, line string) error {
	if strings.HasPrefix(line, "print ") {
		expr := strings.TrimSpace(line[len("print "):])
		c.println(c.engine.EvaluateText(expr, c.env).String())
		return nil
	}

	if name, expr, ok := strings.Cut(line, "="); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return mdwerror.New("missing variable name before '='").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("console.RunScript")
		}
		c.env.Set(name, c.engine.EvaluateText(strings.TrimSpace(expr), c.env))
		return nil
	}

	return c.dispatch(ctx, line)
}

func (c *Console) printVars() {
	names := c.env.Names()
	if len(names) == 0 {
		c.println("No variables")
		return
	}

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range names {
		v, _ := c.env.Get(name)
		text := v.String()
		if v.Kind() == value.KindStr {
			text = strconv.Quote(text)
		}
		c.println(fmt.Sprintf("  %s = %s (%s)", stringx.PadRight(name, width, ' '), text, v.Kind()))
	}
}

func (c *Console) printHistory(ctx context.Context, arg string) error {
	limit := c.cfg.History.Limit
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return mdwerror.Newf("invalid history count: %s", arg).
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("console.history")
		}
		limit = n
	}

	cmds, err := c.history.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		c.println("No history")
		return nil
	}
	for _, cmd := range cmds {
		status := " "
		if !cmd.OK {
			status = "!"
		}
		c.println(fmt.Sprintf("%5d %s %s  %s", cmd.ID, status, stringx.PadRight(string(cmd.Mode), 7, ' '), cmd.Line))
	}
	return nil
}

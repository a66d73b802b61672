package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
	"github.com/AGOODGITDUCK/PebbleCode/internal/canvas"
	"github.com/AGOODGITDUCK/PebbleCode/internal/history"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/config"
)

func newTestConsole(t *testing.T, dir string) (*Console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	if dir == "" {
		dir = t.TempDir()
	}
	c := New(Options{Logger: mdwlog.Discard(), Output: &out, Dir: dir})
	return c, &out
}

func writeScript(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func handle(t *testing.T, c *Console, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, c.Handle(context.Background(), line))
	return out.String()
}

func TestHandle_SimpleCommands(t *testing.T) {
	c, out := newTestConsole(t, "")

	tests := []struct {
		line string
		want string
	}{
		{"credits", "Adam Nassar\n"},
		{"cd", "No task\n"},
		{"run", "No task\n"},
		{"pebble", "No task\n"},
		{"print", "No task\n"},
		{"gui", "No task\n"},
		{"dance", "Invalid command\n"},
		{"print 1 + 2 * 3", "7\n"},
		{"print 7 / 2", "3.5\n"},
		{"print hello world", "hello world\n"},
		{"vars", "No variables\n"},
		{"history", "No history\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, handle(t, c, out, tt.line))
		})
	}
	assert.True(t, c.Running())
}

func TestHandle_HelpAndExit(t *testing.T) {
	c, out := newTestConsole(t, "")

	help := handle(t, c, out, "help")
	assert.True(t, strings.HasPrefix(help, "Available commands:\n"))
	assert.Contains(t, help, "gui text \"<text>\" pos x:<num> z:<num>")

	assert.Empty(t, handle(t, c, out, "exit"))
	assert.False(t, c.Running())
}

func TestHandle_ChangeDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	writeScript(t, root, "file.txt", "")

	wd, err := os.Getwd()
	require.NoError(t, err)

	c, out := newTestConsole(t, root)

	assert.Equal(t, "Current directory: "+filepath.Join(root, "sub")+"\n", handle(t, c, out, "cd sub"))
	assert.Equal(t, filepath.Join(root, "sub"), c.Dir())

	assert.Equal(t, "Current directory: "+root+"\n", handle(t, c, out, "cd .."))
	assert.Equal(t, "Error: Directory 'nowhere' not found\n", handle(t, c, out, "cd nowhere"))
	assert.Equal(t, root, c.Dir())

	err = c.Handle(context.Background(), "cd file.txt")
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, after, "the process directory must not change")
}

func TestHandle_RunProgram(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "hello.peb", "x = 5\nname = \"pebble\"\nprint name x")
	writeScript(t, dir, "broken.peb", "print y")
	writeScript(t, dir, "syntax.peb", "x 5")

	c, out := newTestConsole(t, dir)

	assert.Equal(t, "pebble 5\n", handle(t, c, out, "run hello.peb"))
	v, ok := c.Env().Get("x")
	require.True(t, ok)
	assert.Equal(t, value.Int(5), v)

	// the session environment feeds the text evaluator
	assert.Equal(t, "6\n", handle(t, c, out, "print x + 1"))

	err := c.Handle(context.Background(), "run broken.peb")
	require.Error(t, err)
	assert.Equal(t, "undefined variable y", err.Error())

	err = c.Handle(context.Background(), "run syntax.peb")
	require.Error(t, err)
	assert.Equal(t, "syntax.peb:1:3: expected '='", err.Error())

	assert.Equal(t, "Error: File 'missing.peb' not found\n", handle(t, c, out, "run missing.peb"))

	// a second run reuses the parsed program until the file changes
	assert.Equal(t, "pebble 5\n", handle(t, c, out, "run hello.peb"))
	hits, _ := c.programs.Stats()
	assert.Equal(t, int64(1), hits)
	writeScript(t, dir, "hello.peb", "print \"edited\"")
	assert.Equal(t, "edited\n", handle(t, c, out, "run hello.peb"))
	hits, _ = c.programs.Stats()
	assert.Equal(t, int64(1), hits)
}

func TestHandle_RunTimeout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "long.peb", strings.Repeat("x = 1\n", 10))

	cfg := config.Default()
	cfg.General.RunTimeout.Duration = time.Nanosecond
	var out bytes.Buffer
	c := New(Options{Logger: mdwlog.Discard(), Output: &out, Dir: dir, Config: cfg})

	time.Sleep(time.Millisecond)
	err := c.Handle(context.Background(), "run long.peb")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunScript_LineDispatch(t *testing.T) {
	c, out := newTestConsole(t, "")

	script := strings.Join([]string{
		"x = 5",
		"",
		"  y = x * 2  ",
		"print y + 1",
		"greeting = hello there",
		"print greeting",
		"= 3",
		"credits",
		"bogus",
	}, "\n")

	require.NoError(t, c.RunScript(context.Background(), script))

	want := strings.Join([]string{
		"11",
		"hello there",
		"Error: missing variable name before '='",
		"Adam Nassar",
		"Invalid command",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())

	y, _ := c.Env().Get("y")
	assert.Equal(t, value.Int(10), y)
	g, _ := c.Env().Get("greeting")
	assert.Equal(t, value.Str("hello there"), g)
}

func TestRunScript_StopsAtExit(t *testing.T) {
	c, out := newTestConsole(t, "")
	require.NoError(t, c.RunScript(context.Background(), "print 1\nexit\nprint 2"))
	assert.Equal(t, "1\n", out.String())
}

func TestRunScript_Cancelled(t *testing.T) {
	c, _ := newTestConsole(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.RunScript(ctx, "x = 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.Env().Len())
}

func TestHandle_PebbleScriptWithDrawing(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "scene.peg", strings.Join([]string{
		"gui canvas 200 100",
		"gui rect x:0 z:0 x2:50 z2:50 fill:red",
		"label = box",
		"print label",
		"gui text \"hi\" pos x:5 z:5",
		"leavegui",
		"print 2 ** 3",
	}, "\n"))

	c, out := newTestConsole(t, dir)
	got := handle(t, c, out, "pebble scene.peg")

	want := strings.Join([]string{
		"Entered GUI mode. Type 'leavegui' to return to console.",
		"Canvas resized to 200x100",
		"Rect added with ID 1",
		"box",
		"Text added with ID 2",
		"Left GUI mode.",
		"Current directory: " + dir,
		"8",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	assert.False(t, c.InGUI())
	assert.Zero(t, c.Scene().Len(), "leaving GUI mode clears the surface")
}

func TestHandle_GUIMode(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "art"), 0o755))
	c, out := newTestConsole(t, root)

	assert.Equal(t, canvas.MsgNoGUI+"\n", handle(t, c, out, "gui rect x:0 z:0 x2:1 z2:1"))
	assert.Nil(t, c.Scene())

	assert.Equal(t, "Entered GUI mode. Type 'leavegui' to return to console.\n", handle(t, c, out, "gui mode"))
	assert.True(t, c.InGUI())
	assert.Equal(t, `GUI:\`, c.Prompt())
	require.NotNil(t, c.Scene())

	snap := c.Scene().Snapshot()
	assert.Equal(t, 400, snap.Width)
	assert.Equal(t, 300, snap.Height)
	assert.Equal(t, "white", snap.Background)

	// drawing commands work with and without the gui prefix
	assert.Equal(t, "Oval added with ID 1\n", handle(t, c, out, "oval x:1 z:1 x2:9 z2:9"))
	assert.Equal(t, "Line added with ID 2\n", handle(t, c, out, "gui line x:1 z:1 x2:9 z2:9"))
	assert.Equal(t, "Invalid command\n", handle(t, c, out, "credits"))
	assert.Equal(t, "Moved element 1\n", handle(t, c, out, "move id:1 x:2 z:2"))
	assert.Equal(t, 2, c.Scene().Len())

	err := c.Handle(context.Background(), "canvas big 1")
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeCanvasCommand))

	assert.Equal(t, "Left GUI mode.\nCurrent directory: "+root+"\n", handle(t, c, out, "leavegui"))
	assert.False(t, c.InGUI())
	assert.Equal(t, ">>>", c.Prompt())
	assert.Zero(t, c.Scene().Len())

	// IDs keep counting in the next GUI session
	handle(t, c, out, "gui mode")
	assert.Equal(t, "Rect added with ID 3\n", handle(t, c, out, "rect x:0 z:0 x2:1 z2:1"))
}

func TestHandle_GUIRestoresDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	c, out := newTestConsole(t, root)

	handle(t, c, out, "gui mode")
	handle(t, c, out, "leavegui")
	assert.Equal(t, root, c.Dir())

	handle(t, c, out, "cd sub")
	handle(t, c, out, "gui mode")
	handle(t, c, out, "leavegui")
	assert.Equal(t, filepath.Join(root, "sub"), c.Dir())
}

func TestHandle_SharedSceneAndSurface(t *testing.T) {
	scene := canvas.NewScene(100, 100, "black")
	var events []canvas.Event
	scene.Subscribe(func(ev canvas.Event) { events = append(events, ev) })

	var out bytes.Buffer
	c := New(Options{Logger: mdwlog.Discard(), Output: &out, Scene: scene, Dir: t.TempDir()})

	require.NoError(t, c.Handle(context.Background(), "gui mode"))
	require.NoError(t, c.Handle(context.Background(), "color red"))
	assert.Same(t, scene, c.Scene())
	require.Len(t, events, 1)
	assert.Equal(t, canvas.EventRecolor, events[0].Type)
}

func TestHandle_Vars(t *testing.T) {
	c, out := newTestConsole(t, "")
	require.NoError(t, c.RunScript(context.Background(), "n = 3\nlong_name = hi there\nf = 1 / 4"))

	want := strings.Join([]string{
		`  n         = 3 (int)`,
		`  long_name = "hi there" (str)`,
		`  f         = 0.25 (float)`,
		"",
	}, "\n")
	assert.Equal(t, want, handle(t, c, out, "vars"))
}

func openStore(t *testing.T) *history.SQLiteStore {
	t.Helper()
	store, err := history.Open(history.Config{Path: filepath.Join(t.TempDir(), "history.db"), Logger: mdwlog.Discard()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHistoryRecording(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	var out bytes.Buffer
	c := New(Options{Logger: mdwlog.Discard(), Output: &out, History: store, Dir: t.TempDir()})
	require.NoError(t, c.Begin(ctx))
	require.NotEmpty(t, c.SessionID())

	require.NoError(t, c.Handle(ctx, "print 1"))
	require.NoError(t, c.Handle(ctx, "gui mode"))
	require.Error(t, c.Handle(ctx, "canvas x y"))
	require.NoError(t, c.Handle(ctx, "leavegui"))

	cmds, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	assert.Equal(t, "print 1", cmds[0].Line)
	assert.Equal(t, history.ModeConsole, cmds[1].Mode)
	assert.Equal(t, history.ModeGUI, cmds[2].Mode)
	assert.False(t, cmds[2].OK)
	assert.Contains(t, cmds[2].Message, "invalid canvas size")
	assert.Equal(t, history.ModeGUI, cmds[3].Mode)

	dir := t.TempDir()
	writeScript(t, dir, "one.peg", "x = 1")
	require.NoError(t, c.Handle(ctx, "cd "+dir))
	require.NoError(t, c.Handle(ctx, "pebble one.peg"))
	cmds, err = store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, history.ModeScript, cmds[0].Mode)

	out.Reset()
	require.NoError(t, c.Handle(ctx, "history 4"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "! gui")
	assert.True(t, strings.HasSuffix(lines[0], "canvas x y"))
	assert.True(t, strings.HasSuffix(lines[1], "leavegui"))
	assert.Contains(t, lines[3], " script ")

	err = c.Handle(ctx, "history zero")
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}

func TestSessionVariablesResume(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	first := New(Options{Logger: mdwlog.Discard(), Output: &bytes.Buffer{}, History: store, Dir: t.TempDir()})
	require.NoError(t, first.Begin(ctx))
	require.NoError(t, first.RunScript(ctx, "x = 41\nword = pebble"))
	require.NoError(t, first.End(ctx))
	assert.Empty(t, first.SessionID())

	var out bytes.Buffer
	second := New(Options{Logger: mdwlog.Discard(), Output: &out, History: store, Dir: t.TempDir(), Resume: "last"})
	require.NoError(t, second.Begin(ctx))
	require.NoError(t, second.Handle(ctx, "print x + 1"))
	assert.Equal(t, "42\n", out.String())
	assert.Equal(t, []string{"x", "word"}, second.Env().Names())
}

func TestRun_Loop(t *testing.T) {
	dir := t.TempDir()
	c, out := newTestConsole(t, dir)

	in := strings.NewReader("credits\n\n   \nprint 2 + 2\ncd missing-dir\ngui mode\ncanvas 1 x\nleavegui\nexit\nprint never\n")
	require.NoError(t, c.Run(context.Background(), in))

	want := strings.Join([]string{
		"Pebble Console. Type 'help' for commands, 'exit' to quit.",
		">>> Adam Nassar",
		">>> >>> >>> 4",
		">>> Error: Directory 'missing-dir' not found",
		">>> Entered GUI mode. Type 'leavegui' to return to console.",
		`GUI:\ Error: invalid canvas size 1 x`,
		`GUI:\ Left GUI mode.`,
		"Current directory: " + dir,
		">>> ",
	}, "\n")
	assert.Equal(t, want, out.String())
	assert.False(t, c.Running())
}

func TestRun_EndOfInput(t *testing.T) {
	c, out := newTestConsole(t, "")
	require.NoError(t, c.Run(context.Background(), strings.NewReader("print 1\n")))
	assert.True(t, strings.HasSuffix(out.String(), ">>> 1\n>>> \nExiting...\n"))
}

func TestRun_Cancelled(t *testing.T) {
	c, out := newTestConsole(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a reader that never returns keeps the loop waiting on ctx
	pr, pw := io.Pipe()
	defer pw.Close()

	require.NoError(t, c.Run(ctx, pr))
	assert.True(t, strings.HasSuffix(out.String(), "\nExiting...\n"))
}

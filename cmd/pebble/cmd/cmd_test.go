package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// testEnv writes a config whose data directory lives in a temp dir
func testEnv(t *testing.T) (configPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	configPath = filepath.Join(dir, "pebble.toml")
	content := "[general]\nlog_level = \"error\"\ndata_dir = \"" + filepath.ToSlash(dir) + "\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath, dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	cfgPath, _ := testEnv(t)
	out, _, err := execute(t, "", "--config", cfgPath, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Pebble v0.1.0\n"))
	assert.Contains(t, out, "Go Version:")
}

func TestRunCommand(t *testing.T) {
	cfgPath, dir := testEnv(t)

	t.Run("success", func(t *testing.T) {
		prog := writeFile(t, dir, "ok.peb", "x = 5\nprint x \"five\"\n")
		out, errOut, err := execute(t, "", "--config", cfgPath, "run", prog)
		require.NoError(t, err)
		assert.Equal(t, "5 five\n", out)
		assert.Empty(t, errOut)
	})

	t.Run("syntax error", func(t *testing.T) {
		prog := writeFile(t, dir, "bad.peb", "x 5\n")
		_, errOut, err := execute(t, "", "--config", cfgPath, "run", prog)
		require.ErrorIs(t, err, errReported)
		assert.Equal(t, prog+":1:3: expected '='\n", errOut)
	})

	t.Run("name error", func(t *testing.T) {
		prog := writeFile(t, dir, "name.peb", "print y\n")
		_, errOut, err := execute(t, "", "--config", cfgPath, "run", prog)
		require.ErrorIs(t, err, errReported)
		assert.Equal(t, "NameError: undefined variable y\n", errOut)
	})

	t.Run("missing file", func(t *testing.T) {
		_, errOut, err := execute(t, "", "--config", cfgPath, "run", filepath.Join(dir, "nope.peb"))
		require.ErrorIs(t, err, errReported)
		assert.True(t, strings.HasPrefix(errOut, "Error: "))
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, _, err := execute(t, "", "--config", cfgPath, "run")
		require.Error(t, err)
	})
}

func TestRunCommand_WatchStopsWithContext(t *testing.T) {
	cfgPath, dir := testEnv(t)
	prog := writeFile(t, dir, "watched.peb", "print 1\n")

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--config", cfgPath, "run", "--watch", prog})

	// subcommands keep the context of their first run, so set it directly
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runCmd.SetContext(ctx)
	t.Cleanup(func() { runCmd.SetContext(context.Background()) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, errOut.String(), "Watching ")
}

func TestTokensAndASTCommands(t *testing.T) {
	cfgPath, dir := testEnv(t)
	prog := writeFile(t, dir, "prog.peb", "x = 007")

	out, _, err := execute(t, "", "--config", cfgPath, "tokens", prog)
	require.NoError(t, err)
	assert.Equal(t, "1:1\tIDENT x\n1:3\tPUNC '='\n1:5\tNUM 7\n1:8\tEOF\n", out)

	out, _, err = execute(t, "", "--config", cfgPath, "tokens", "--serialize", prog)
	require.NoError(t, err)
	assert.Equal(t, "x = 7\n", out)

	out, _, err = execute(t, "", "--config", cfgPath, "ast", prog)
	require.NoError(t, err)
	assert.Equal(t, "Block (1 statements)\n  Assign x @1:1\n    Num 7 @1:5\n", out)

	bad := writeFile(t, dir, "bad.peb", "print \"open")
	_, errOut, err := execute(t, "", "--config", cfgPath, "ast", bad)
	require.ErrorIs(t, err, errReported)
	assert.True(t, strings.HasPrefix(errOut, bad+":1:"))
}

func TestEvalCommand(t *testing.T) {
	cfgPath, _ := testEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"arithmetic", []string{"2 ** 10"}, "1024\n"},
		{"joined args", []string{"1", "+", "2"}, "3\n"},
		{"variables", []string{"--var", "x=5", "--var", "y=x * 2", "y + 1"}, "11\n"},
		{"text fallback", []string{"hello world"}, "hello world\n"},
		{"kind", []string{"--kind", "7 / 2"}, "3.5 (float)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfgPath, "eval"}, tt.args...)
			out, _, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, _, err := execute(t, "", "--config", cfgPath, "eval", "--var", "=3", "1")
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}

func TestConsoleCommand(t *testing.T) {
	cfgPath, dir := testEnv(t)

	out, _, err := execute(t, "print 1 + 1\nexit\n", "--config", cfgPath, "console", "--no-history")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Pebble Console."))
	assert.Contains(t, out, ">>> 2\n")

	// the bare binary starts the console too
	out, _, err = execute(t, "credits\n", "--config", cfgPath, "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, ">>> Adam Nassar\n")
	assert.True(t, strings.HasSuffix(out, "Exiting...\n"))

	script := writeFile(t, dir, "square.peg", "x = 4\nprint x * x\n")
	out, _, err = execute(t, "", "--config", cfgPath, "console", script)
	require.NoError(t, err)
	assert.Equal(t, "16\n", out)
}

func TestConsoleCanvasViewer(t *testing.T) {
	cfgPath, _ := testEnv(t)
	_, errOut, err := execute(t, "exit\n", "--config", cfgPath, "console", "--no-history", "--canvas-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Canvas viewer at http://127.0.0.1:")
}

func TestHistoryCommand(t *testing.T) {
	cfgPath, dir := testEnv(t)

	out, _, err := execute(t, "", "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Equal(t, "No history\n", out)

	_, _, err = execute(t, "print 6 * 7\ndance\nexit\n", "--config", cfgPath, "console")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "history.db"))

	out, _, err = execute(t, "", "--config", cfgPath, "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "print 6 * 7"))
	assert.True(t, strings.HasSuffix(lines[2], "exit"))

	out, _, err = execute(t, "", "--config", cfgPath, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	out, _, err = execute(t, "", "--config", cfgPath, "history", "--json")
	require.NoError(t, err)
	var cmds []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &cmds))
	require.Len(t, cmds, 3)
	assert.Equal(t, "console", cmds[0]["mode"])

	out, _, err = execute(t, "", "--config", cfgPath, "history", "--sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "SESSION")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "  3"))

	// a later session can pick up the saved variables
	script := writeFile(t, dir, "nine.peg", "x = 9\n")
	_, _, err = execute(t, "", "--config", cfgPath, "console", script)
	require.NoError(t, err)
	out, _, err = execute(t, "print x + 1\nexit\n", "--config", cfgPath, "console", "--resume", "last")
	require.NoError(t, err)
	assert.Contains(t, out, ">>> 10\n")
}

func TestConfigCommand(t *testing.T) {
	cfgPath, dir := testEnv(t)
	out, _, err := execute(t, "", "--config", cfgPath, "config")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# loaded from "+cfgPath+"\n"))
	assert.Contains(t, out, "[general]")
	assert.Contains(t, out, filepath.Join(dir, "history.db"))
}

func TestGlobalFlags(t *testing.T) {
	cfgPath, _ := testEnv(t)

	_, _, err := execute(t, "", "--config", cfgPath, "--log-format", "yaml", "version")
	require.Error(t, err)

	_, _, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "version")
	require.Error(t, err)

	_, errOut, err := execute(t, "", "--config", cfgPath, "-v", "--log-format", "json", "version")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"configuration loaded"`)
}

func TestDoctorCommand(t *testing.T) {
	cfgPath, _ := testEnv(t)

	out, _, err := execute(t, "", "--config", cfgPath, "doctor")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Pebble v0.1.0: healthy", lines[0])
	assert.Contains(t, lines[1], "config")
	assert.Contains(t, lines[1], cfgPath)
	assert.Contains(t, lines[2], "data_dir")
	assert.Contains(t, lines[3], "0 sessions")

	out, _, err = execute(t, "", "--config", cfgPath, "doctor", "--json")
	require.NoError(t, err)
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "healthy", report["status"])
	assert.Len(t, report["checks"], 3)
}

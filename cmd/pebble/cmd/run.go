package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/interpreter"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/parser"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
	"github.com/AGOODGITDUCK/PebbleCode/internal/watch"
)

var runWatch bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Pebble program",
	Long: `Lexes, parses and executes a Pebble program.

On failure the error is printed to stderr and the exit status is 1:
  prog.peb:3:7: expected '='
  NameError: undefined variable y

With --watch the program runs again, in a fresh environment, each time the
file is saved, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "run again whenever the file changes")
}

func newEngine(out io.Writer) *pebble.Engine {
	return pebble.New(pebble.Options{
		Logger:       logger,
		Output:       out,
		Substitution: cfg.SubstitutionMode(),
	})
}

func runProgram(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runWatch {
		return watchProgram(ctx, cmd, args[0])
	}
	return runOnce(ctx, cmd, args[0])
}

// watchProgram runs path now and after every change. Script errors are
// reported without ending the watch.
func watchProgram(ctx context.Context, cmd *cobra.Command, path string) error {
	w, err := watch.New(path, watch.Options{Logger: logger})
	if err != nil {
		return err
	}

	_ = runOnce(ctx, cmd, path)
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", w.Path())

	return w.Run(ctx, func() {
		fmt.Fprintf(cmd.ErrOrStderr(), "--- %s changed\n", path)
		_ = runOnce(ctx, cmd, path)
	})
}

func runOnce(ctx context.Context, cmd *cobra.Command, path string) error {
	if timeout := cfg.General.RunTimeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	timer := logger.StartTimer("run").WithField("file", path)
	err := newEngine(cmd.OutOrStdout()).RunFile(ctx, path, value.NewEnv())
	if err != nil {
		timer.Cancel()
		reportScriptError(cmd.ErrOrStderr(), err)
		return errReported
	}
	timer.Stop()
	return nil
}

// reportScriptError prints a script failure the way users expect to read it
func reportScriptError(w io.Writer, err error) {
	var syntaxErr *parser.SyntaxError
	var nameErr *interpreter.NameError

	switch {
	case errors.As(err, &syntaxErr):
		fmt.Fprintln(w, syntaxErr.Error())
	case errors.As(err, &nameErr):
		fmt.Fprintf(w, "NameError: %s\n", nameErr.Error())
	default:
		printError(w, err)
	}

	logger.Debug("script failed", mdwlog.Fields{
		"code":  string(mdwerror.GetCode(err)),
		"error": err.Error(),
	})
}

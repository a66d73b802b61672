package cmd

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/internal/tui"
)

var tuiFlags sessionFlags

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI",
	Long: `Starts the Pebble console in a full-screen terminal UI.

In GUI mode the canvas is drawn in a pane below the transcript.

Navigation:
  Enter       - Run the line
  PgUp/PgDn   - Scroll the transcript
  Esc, Ctrl+C - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	addSessionFlags(tuiCmd, &tuiFlags)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// log lines would tear the alternate screen; only the log file gets them
	logger = newLogger(io.Discard)
	mdwlog.SetDefault(logger)

	s, err := newSession(ctx, tuiFlags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	return tui.Run(ctx, s.opts)
}

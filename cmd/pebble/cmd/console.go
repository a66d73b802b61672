package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AGOODGITDUCK/PebbleCode/internal/console"
)

var consoleFlags sessionFlags

var consoleCmd = &cobra.Command{
	Use:   "console [file]",
	Short: "Start the interactive console",
	Long: `Starts the line-oriented Pebble console.

With a file argument the file is run as a console script, line by line,
and the console exits afterwards.

Examples:
  pebble console
  pebble console --canvas-addr 127.0.0.1:8765   # watch drawings in a browser
  pebble console --resume last                  # restore the last session's variables
  pebble console scene.peg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	addSessionFlags(consoleCmd, &consoleFlags)
	addSessionFlags(rootCmd, &consoleFlags)
}

func addSessionFlags(cmd *cobra.Command, f *sessionFlags) {
	cmd.Flags().StringVar(&f.canvasAddr, "canvas-addr", "", "serve the canvas to websocket viewers on this address")
	cmd.Flags().StringVar(&f.resume, "resume", "", "restore variables from a session ID or \"last\"")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "do not record the session")
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx, consoleFlags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	s.opts.Output = cmd.OutOrStdout()
	c := console.New(s.opts)

	if len(args) == 0 {
		return c.Run(ctx, cmd.InOrStdin())
	}

	if err := c.Begin(ctx); err != nil {
		logger.WarnWithErr("history unavailable", err)
	}
	defer func() {
		if err := c.End(context.Background()); err != nil {
			logger.WarnWithErr("failed to save session", err)
		}
	}()
	return c.Handle(ctx, "pebble "+args[0])
}

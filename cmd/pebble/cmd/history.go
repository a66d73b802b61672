package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/utils/stringx"
	"github.com/AGOODGITDUCK/PebbleCode/internal/history"
)

var (
	historyLimit    int
	historySessions bool
	historyJSON     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently run console commands",
	Long: `Shows the most recent console commands from the history database,
oldest first. Failed commands are marked with '!'.

Examples:
  pebble history
  pebble history --limit 50
  pebble history --sessions
  pebble history --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of entries (default: history.limit)")
	historyCmd.Flags().BoolVar(&historySessions, "sessions", false, "list sessions instead of commands")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !cfg.History.Enabled {
		return mdwerror.New("history is disabled in the configuration").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("cmd.history")
	}

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.History.Limit
	}

	store, err := history.Open(history.Config{Path: cfg.History.Path, Logger: logger})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if historySessions {
		sessions, err := store.Sessions(ctx, limit)
		if err != nil {
			return err
		}
		if historyJSON {
			return writeJSON(cmd, sessions)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-19s  %-19s  %s\n", "SESSION", "STARTED", "ENDED", "COMMANDS")
		fmt.Fprintln(out, strings.Repeat("-", 90))
		for _, s := range sessions {
			fmt.Fprintf(out, "%-36s  %-19s  %-19s  %d\n", s.ID, formatTime(s.StartedAt), formatTime(s.EndedAt), s.Commands)
		}
		return nil
	}

	cmds, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if historyJSON {
		return writeJSON(cmd, cmds)
	}
	if len(cmds) == 0 {
		fmt.Fprintln(out, "No history")
		return nil
	}
	for _, c := range cmds {
		status := " "
		if !c.OK {
			status = "!"
		}
		fmt.Fprintf(out, "%5d %s %s  %s  %s\n", c.ID, status, formatTime(c.CreatedAt), stringx.PadRight(string(c.Mode), 7, ' '), c.Line)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return mdwerror.Wrap(err, "failed to encode JSON").
			WithCode(mdwerror.CodeInternal).
			WithOperation("cmd.history")
	}
	return nil
}

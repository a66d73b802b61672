package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AGOODGITDUCK/PebbleCode/internal/history"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/health"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/version"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Pebble environment",
	Long: `Checks the configuration, the data directory, the history database
and, when configured, the canvas viewer address.

The exit status is 1 when a check is unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "print the report as JSON")
}

func newDoctor() *health.Registry {
	r := health.NewRegistry("pebble", version.Platform)

	r.RegisterFunc("config", func(ctx context.Context) health.CheckResult {
		if err := cfg.Validate(); err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		source := cfg.Source()
		if source == "" {
			source = "built-in defaults"
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: source}
	})
	r.Register(health.WritableDirCheck("data_dir", cfg.General.DataDir))

	if cfg.History.Enabled {
		r.RegisterFunc("history", checkHistory)
	}
	if cfg.Canvas.Addr != "" {
		r.Register(health.ListenCheck("canvas_addr", cfg.Canvas.Addr))
	}
	if cfg.General.LogFile != "" {
		r.Register(health.FileCheck("log_file", cfg.General.LogFile, true))
	}
	return r
}

// checkHistory opens the database and reads from it
func checkHistory(ctx context.Context) health.CheckResult {
	result := health.CheckResult{Details: map[string]interface{}{"path": cfg.History.Path}}

	store, err := history.Open(history.Config{Path: cfg.History.Path, Logger: logger})
	if err != nil {
		result.Status = health.StatusUnhealthy
		result.Message = err.Error()
		return result
	}
	defer store.Close()

	sessions, err := store.Sessions(ctx, 0)
	if err != nil {
		result.Status = health.StatusUnhealthy
		result.Message = err.Error()
		return result
	}
	result.Status = health.StatusHealthy
	result.Message = fmt.Sprintf("%d sessions", len(sessions))
	return result
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := newDoctor().CheckWithTimeout(10 * time.Second)

	if doctorJSON {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Pebble v%s: %s\n", report.Version, report.Status)
		for _, c := range report.Checks {
			fmt.Fprintf(out, "  %-12s %-10s %s\n", c.Name, c.Status, c.Message)
		}
	}

	if report.Status == health.StatusUnhealthy {
		return errReported
	}
	return nil
}

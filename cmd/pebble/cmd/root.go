// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     cmd
// Description: Command line interface of the pebble binary
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/config"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	// set by PersistentPreRunE
	cfg    *config.Config
	logger *mdwlog.Logger
)

// errReported marks a failure whose message has already been printed
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "pebble",
	Short: "Pebble - a small scripting language with a drawing console",
	Long: `Pebble is a tiny scripting language with print and assignment
statements, plus an interactive console that can draw on a canvas.

Without a subcommand the interactive console starts.

Configuration is read from --config, $PEBBLE_CONFIG, ./pebble.toml,
./pebble.yaml or ~/.config/pebble/config.toml. PEBBLE_* environment
variables override file values, e.g. PEBBLE_CONSOLE_PROMPT.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runConsole,
}

// Execute runs the root command and prints any unreported error
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	if cerr := logging.CloseGlobalFileWriter(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, text, logfmt or json")
}

// setup loads the configuration and builds the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if verbose {
		cfg.General.LogLevel = "debug"
	}
	if logFormat != "" {
		if _, err := mdwlog.ParseFormat(logFormat); err != nil {
			return err
		}
		cfg.General.LogFormat = logFormat
	}

	logger = newLogger(cmd.ErrOrStderr())
	mdwlog.SetDefault(logger)
	logger.Debug("configuration loaded", mdwlog.Fields{
		"source":  cfg.Source(),
		"command": cmd.Name(),
	})
	return nil
}

func newLogger(out io.Writer) *mdwlog.Logger {
	return logging.NewLogger(logging.LoggerConfig{
		ServiceName: "pebble",
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		File:        cfg.General.LogFile,
		Output:      out,
	})
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package config loads TOML and YAML configuration files into a
//              dotted-key view with environment variable overrides.
// Author: Adam Nassar
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-02
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-10-02 v0.2.0: Watching and rule validation removed, typed config lives in pkg/core/config

/*
Package config provides configuration loading for the Pebble toolchain.

Key Features:
  - TOML and YAML, detected from the file extension
  - Dotted key access ("console.prompt") with typed getters and defaults
  - Environment overrides: with prefix PEBBLE, PEBBLE_CONSOLE_PROMPT wins over console.prompt
  - Discovery over a list of candidate directories and file names
  - Coded errors (NOT_FOUND, CONFIG_ERROR, INVALID_CONFIG) for every failure

# Basic Configuration Loading

	cfg, err := mdwconfig.LoadWithOptions("pebble.toml", mdwconfig.LoadOptions{
		EnvPrefix: "PEBBLE",
	})
	if err != nil {
		return err
	}

	prompt := cfg.GetString("console.prompt", ">>>")
	width := cfg.GetInt("canvas.width", 400)

# Discovery

	cfg, err := mdwconfig.Discover(mdwconfig.DiscoveryOptions{
		Paths:     []string{".", filepath.Join(home, ".config", "pebble")},
		Filenames: []string{"pebble", "config"},
		EnvPrefix: "PEBBLE",
	})

When Required is false and nothing is found, Discover returns an empty
configuration that still honours environment overrides.
*/
package config

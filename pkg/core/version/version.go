// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     version
// Description: Central version management for the language and its tools
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"

	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble"
)

// Version constants for the Pebble distribution
const (
	// Distribution version
	Platform = "0.1.0"

	// Component versions
	Language = pebble.Version
	Console  = "0.1.0"
	TUI      = "0.1.0"
	History  = "0.1.0"
	Canvas   = "0.1.0"
)

// Build metadata, set with -ldflags "-X ...version.GitCommit=..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "language", "pebble":
		return Language
	case "console":
		return Console
	case "tui":
		return TUI
	case "history":
		return History
	case "canvas":
		return Canvas
	default:
		return Platform
	}
}

// Info returns the multi-line version report printed by `pebble version`
func Info() string {
	return fmt.Sprintf("Pebble v%s\n  Language:   %s\n  Git Commit: %s\n  Build Date: %s\n  Go Version: %s\n  OS/Arch:    %s/%s\n",
		Platform, Language, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

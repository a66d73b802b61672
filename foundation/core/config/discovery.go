// File: discovery.go
// Title: Configuration File Discovery Implementation
// Description: Finds the first existing configuration file among explicit
//              candidates or a grid of directories, base names and
//              extensions.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-25
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2025-10-02 v0.2.0: Optional discovery returns an env-only config
// - 2025-10-09 v0.3.0: Explicit candidate files searched first

package config

import (
	"os"
	"path/filepath"
	"strings"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// DiscoveryOptions describe where to look for a configuration file.
// Without Files the grid defaults to ./config.{toml,yaml,yml}.
type DiscoveryOptions struct {
	Files      []string // Exact paths, tried before the grid
	Paths      []string // Directories to search
	Filenames  []string // Base names without extension
	Extensions []string // Extensions to try, in order
	EnvPrefix  string   // Environment variable prefix for overrides
	Required   bool     // Fail instead of returning an empty config
}

func (o DiscoveryOptions) withDefaults() DiscoveryOptions {
	if len(o.Files) > 0 {
		return o
	}
	if len(o.Paths) == 0 {
		o.Paths = []string{"."}
	}
	if len(o.Filenames) == 0 {
		o.Filenames = []string{"config"}
	}
	if len(o.Extensions) == 0 {
		o.Extensions = []string{".toml", ".yaml", ".yml"}
	}
	return o
}

// Discover loads the first file found. When none exists it returns an
// empty config, or a NOT_FOUND error if the file is Required.
func Discover(options DiscoveryOptions) (*Config, error) {
	options = options.withDefaults()

	path, err := FindConfigFile(options)
	if err != nil {
		if !options.Required {
			return Empty(options.EnvPrefix), nil
		}
		return nil, mdwerror.Wrap(err, "no configuration file found").
			WithOperation("config.Discover").
			WithDetail("searched", strings.Join(ListPossibleConfigFiles(options), ", "))
	}

	cfg, err := LoadWithOptions(path, LoadOptions{Format: FormatAuto, EnvPrefix: options.EnvPrefix})
	if err != nil {
		return nil, mdwerror.Wrap(err, "found config file "+path+" but failed to load").
			WithOperation("config.Discover").
			WithDetail("configPath", path)
	}
	return cfg, nil
}

// FindConfigFile returns the first candidate that is a regular file
func FindConfigFile(options DiscoveryOptions) (string, error) {
	for _, candidate := range ListPossibleConfigFiles(options.withDefaults()) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", mdwerror.New("configuration file not found").
		WithCode(mdwerror.CodeNotFound).
		WithOperation("config.FindConfigFile")
}

// ListPossibleConfigFiles returns every candidate in search order: Files,
// then each directory crossed with each name and extension
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	out := append([]string(nil), options.Files...)
	for _, dir := range options.Paths {
		for _, name := range options.Filenames {
			for _, ext := range options.Extensions {
				out = append(out, filepath.Join(dir, name+ext))
			}
		}
	}
	return out
}

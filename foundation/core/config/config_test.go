// File: config_test.go
// Title: Configuration Module Tests
// Description: Tests for TOML/YAML parsing, dotted-key access, environment
//              overrides and file discovery.
// Author: Adam Nassar
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-02
//
// Change History:
// - 2025-01-25 v0.1.0: Initial test implementation
// - 2025-10-02 v0.2.0: Injected env lookup, discovery fallbacks

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

const sampleTOML = `
[general]
log_level = "debug"

[console]
prompt = "pebble>"
substitution = "word"

[history]
enabled = false
limit = 50
flush = "250ms"

[canvas]
width = 640
ratio = 1.5
palette = ["white", "black"]
`

const sampleYAML = `
general:
  log_level: info
console:
  prompt: "yaml>"
canvas:
  width: 320
  palette: [red, blue]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pebble.toml", sampleTOML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.WithEnvLookup(noEnv)

	if cfg.Format() != FormatTOML {
		t.Errorf("Format() = %v", cfg.Format())
	}
	if got := cfg.GetString("console.prompt"); got != "pebble>" {
		t.Errorf("console.prompt = %q", got)
	}
	if got := cfg.GetInt("canvas.width"); got != 640 {
		t.Errorf("canvas.width = %d", got)
	}
	if got := cfg.GetBool("history.enabled", true); got {
		t.Error("history.enabled should be false")
	}
	if got := cfg.GetDuration("history.flush"); got != 250*time.Millisecond {
		t.Errorf("history.flush = %v", got)
	}
	if got := cfg.GetFloat("canvas.ratio"); got != 1.5 {
		t.Errorf("canvas.ratio = %v", got)
	}
	if got := cfg.GetStringSlice("canvas.palette"); !reflect.DeepEqual(got, []string{"white", "black"}) {
		t.Errorf("canvas.palette = %v", got)
	}
	if got := cfg.GetString("canvas.background", "white"); got != "white" {
		t.Errorf("default not applied: %q", got)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pebble.yaml", sampleYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.WithEnvLookup(noEnv)

	if cfg.Format() != FormatYAML {
		t.Errorf("Format() = %v", cfg.Format())
	}
	if got := cfg.GetString("console.prompt"); got != "yaml>" {
		t.Errorf("console.prompt = %q", got)
	}
	if got := cfg.GetInt("canvas.width"); got != 320 {
		t.Errorf("canvas.width = %d", got)
	}
	if got := cfg.GetStringSlice("canvas.palette"); !reflect.DeepEqual(got, []string{"red", "blue"}) {
		t.Errorf("canvas.palette = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code mdwerror.Code
	}{
		{"blank path", "  ", mdwerror.CodeInvalidInput},
		{"missing file", filepath.Join(dir, "nope.toml"), mdwerror.CodeNotFound},
		{"broken toml", writeFile(t, dir, "bad.toml", "[console\nprompt="), mdwerror.CodeInvalidConfig},
		{"broken yaml", writeFile(t, dir, "bad.yaml", "console: [unclosed"), mdwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("error %v does not carry %s", err, tt.code)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pebble.toml", sampleTOML)
	cfg, err := LoadWithOptions(path, LoadOptions{EnvPrefix: "pebble"})
	if err != nil {
		t.Fatal(err)
	}
	cfg.WithEnvLookup(envMap(map[string]string{
		"PEBBLE_CONSOLE_PROMPT":   "env>",
		"PEBBLE_CANVAS_WIDTH":     "800",
		"PEBBLE_HISTORY_ENABLED":  "true",
		"PEBBLE_CANVAS_PALETTE":   "red, green",
		"PEBBLE_CANVAS_ADDR":      ":8089",
		"PEBBLE_CANVAS_HEIGHT":    "not-a-number",
		"CONSOLE_PROMPT_UNPREFIX": "ignored",
	}))

	if got := cfg.GetString("console.prompt"); got != "env>" {
		t.Errorf("console.prompt = %q", got)
	}
	if got := cfg.GetInt("canvas.width"); got != 800 {
		t.Errorf("canvas.width = %d", got)
	}
	if !cfg.GetBool("history.enabled") {
		t.Error("history.enabled override ignored")
	}
	if got := cfg.GetStringSlice("canvas.palette"); !reflect.DeepEqual(got, []string{"red", "green"}) {
		t.Errorf("canvas.palette = %v", got)
	}
	if !cfg.Has("canvas.addr") {
		t.Error("Has() should see env-only keys")
	}
	if got := cfg.GetInt("canvas.height", 300); got != 300 {
		t.Errorf("unparsable override should fall back to default, got %d", got)
	}
}

func TestSetKeysAndGetAll(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	cfg.WithEnvLookup(noEnv)

	cfg.Set("canvas.background", "black")
	if got := cfg.GetString("canvas.background"); got != "black" {
		t.Errorf("Set() not visible: %q", got)
	}

	keys := cfg.Keys()
	want := []string{
		"canvas.background", "canvas.palette", "canvas.ratio", "canvas.width",
		"console.prompt", "console.substitution",
		"general.log_level",
		"history.enabled", "history.flush", "history.limit",
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}

	all := cfg.GetAll()
	all["console"].(map[string]interface{})["prompt"] = "mutated"
	if cfg.GetString("console.prompt") != "pebble>" {
		t.Error("GetAll() must return a copy")
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	home := t.TempDir()
	writeFile(t, home, "config.toml", "[console]\nprompt = \"home>\"\n")

	opts := DiscoveryOptions{
		Paths:     []string{dir, home},
		Filenames: []string{"pebble", "config"},
	}

	cfg, err := Discover(opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	cfg.WithEnvLookup(noEnv)
	if got := cfg.GetString("console.prompt"); got != "home>" {
		t.Errorf("expected the home config, got %q", got)
	}

	writeFile(t, dir, "pebble.yaml", "console:\n  prompt: local>\n")
	cfg, err = Discover(opts)
	if err != nil {
		t.Fatal(err)
	}
	cfg.WithEnvLookup(noEnv)
	if got := cfg.GetString("console.prompt"); got != "local>" {
		t.Errorf("earlier path should win, got %q", got)
	}
}

func TestDiscoverNotFound(t *testing.T) {
	opts := DiscoveryOptions{Paths: []string{t.TempDir()}, Filenames: []string{"pebble"}, Required: true}
	if _, err := Discover(opts); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Discover() error = %v, want NOT_FOUND", err)
	}

	opts.Required = false
	cfg, err := Discover(opts)
	if err != nil {
		t.Fatalf("optional discovery failed: %v", err)
	}
	if len(cfg.Keys()) != 0 || cfg.FilePath() != "" {
		t.Errorf("expected empty config, got %v", cfg)
	}
}

func TestDiscoverExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "pebble.toml")
	user := writeFile(t, dir, "user.yaml", "console:\n  prompt: user>\n")

	opts := DiscoveryOptions{Files: []string{local, user}}
	if got := ListPossibleConfigFiles(opts.withDefaults()); !reflect.DeepEqual(got, []string{local, user}) {
		t.Errorf("explicit files should not get the default grid, got %v", got)
	}

	cfg, err := Discover(opts)
	if err != nil {
		t.Fatal(err)
	}
	cfg.WithEnvLookup(noEnv)
	if got := cfg.GetString("console.prompt"); got != "user>" {
		t.Errorf("console.prompt = %q, want user>", got)
	}
	if cfg.Format() != FormatYAML {
		t.Errorf("Format() = %v, want yaml", cfg.Format())
	}
}

func TestListPossibleConfigFiles(t *testing.T) {
	got := ListPossibleConfigFiles(DiscoveryOptions{
		Paths:      []string{"a", "b"},
		Filenames:  []string{"pebble"},
		Extensions: []string{".toml", ".yaml"},
	})
	want := []string{
		filepath.Join("a", "pebble.toml"), filepath.Join("a", "pebble.yaml"),
		filepath.Join("b", "pebble.toml"), filepath.Join("b", "pebble.yaml"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListPossibleConfigFiles() = %v, want %v", got, want)
	}
}

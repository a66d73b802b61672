package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mdwconfig "github.com/AGOODGITDUCK/PebbleCode/foundation/core/config"
	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/textexpr"
)

// EnvPrefix prefixes every environment override, e.g. PEBBLE_CONSOLE_PROMPT
const EnvPrefix = "PEBBLE"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Console ConsoleConfig `toml:"console"`
	History HistoryConfig `toml:"history"`
	Canvas  CanvasConfig  `toml:"canvas"`

	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel   string   `toml:"log_level"`
	LogFormat  string   `toml:"log_format"`
	LogFile    string   `toml:"log_file"` // optional; log lines are appended there too
	DataDir    string   `toml:"data_dir"`
	RunTimeout Duration `toml:"run_timeout"` // 0 disables the limit
}

// ConsoleConfig holds REPL settings
type ConsoleConfig struct {
	Prompt       string `toml:"prompt"`
	GUIPrompt    string `toml:"gui_prompt"`
	Banner       string `toml:"banner"`
	Credits      string `toml:"credits"`
	Substitution string `toml:"substitution"`
}

// HistoryConfig holds command history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Limit   int    `toml:"limit"`
}

// CanvasConfig holds drawing surface settings
type CanvasConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Addr       string `toml:"addr"` // websocket viewer address; empty disables it
}

// Duration wraps time.Duration for TOML encoding
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load loads configuration from a TOML or YAML file. Environment variables
// with the PEBBLE_ prefix override file values.
func Load(path string) (*Config, error) {
	path = expandHome(os.ExpandEnv(path))

	src, err := mdwconfig.LoadWithOptions(path, mdwconfig.LoadOptions{
		Format:    mdwconfig.FormatAuto,
		EnvPrefix: EnvPrefix,
	})
	if err != nil {
		return nil, err
	}

	cfg := FromSource(src)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the PEBBLE_CONFIG environment
// variable or the first file found in the default locations. Without any
// file the defaults apply, still subject to environment overrides.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("PEBBLE_CONFIG"); path != "" {
		return Load(path)
	}

	src, err := mdwconfig.Discover(mdwconfig.DiscoveryOptions{
		Files:     DefaultPaths(),
		EnvPrefix: EnvPrefix,
	})
	if err != nil {
		return nil, err
	}

	cfg := FromSource(src)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPaths lists the locations LoadFromEnv searches, in order
func DefaultPaths() []string {
	paths := []string{"./pebble.toml", "./pebble.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pebble", "config.toml"))
	}
	return paths
}

// Default returns the built-in configuration without reading files or
// the environment
func Default() *Config {
	cfg := &Config{History: HistoryConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// FromSource builds the typed configuration from a loaded source
func FromSource(src *mdwconfig.Config) *Config {
	cfg := &Config{
		General: GeneralConfig{
			LogLevel:   src.GetString("general.log_level"),
			LogFormat:  src.GetString("general.log_format"),
			LogFile:    src.GetString("general.log_file"),
			DataDir:    src.GetString("general.data_dir"),
			RunTimeout: Duration{src.GetDuration("general.run_timeout")},
		},
		Console: ConsoleConfig{
			Prompt:       src.GetString("console.prompt"),
			GUIPrompt:    src.GetString("console.gui_prompt"),
			Banner:       src.GetString("console.banner"),
			Credits:      src.GetString("console.credits"),
			Substitution: src.GetString("console.substitution"),
		},
		History: HistoryConfig{
			Enabled: src.GetBool("history.enabled", true),
			Path:    src.GetString("history.path"),
			Limit:   src.GetInt("history.limit"),
		},
		Canvas: CanvasConfig{
			Width:      src.GetInt("canvas.width"),
			Height:     src.GetInt("canvas.height"),
			Background: src.GetString("canvas.background"),
			Addr:       src.GetString("canvas.addr"),
		},
		source: src.FilePath(),
	}

	cfg.applyDefaults()
	return cfg
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "~/.pebble"
	}
	c.General.DataDir = expandHome(os.ExpandEnv(c.General.DataDir))
	if c.General.LogFile != "" {
		c.General.LogFile = expandHome(os.ExpandEnv(c.General.LogFile))
	}

	// Console
	if c.Console.Prompt == "" {
		c.Console.Prompt = ">>>"
	}
	if c.Console.GUIPrompt == "" {
		c.Console.GUIPrompt = `GUI:\`
	}
	if c.Console.Banner == "" {
		c.Console.Banner = "Pebble Console. Type 'help' for commands, 'exit' to quit."
	}
	if c.Console.Credits == "" {
		c.Console.Credits = "Adam Nassar"
	}
	if c.Console.Substitution == "" {
		c.Console.Substitution = string(textexpr.ModeLegacy)
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
	c.History.Path = expandHome(os.ExpandEnv(c.History.Path))
	if c.History.Limit == 0 {
		c.History.Limit = 20
	}

	// Canvas
	if c.Canvas.Width == 0 {
		c.Canvas.Width = 400
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = 300
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = "white"
	}
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	invalid := func(key, format string, args ...interface{}) error {
		return mdwerror.New(fmt.Sprintf(format, args...)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("key", key)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", "invalid log level: %s", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", "invalid log format: %s", c.General.LogFormat)
	}
	if c.General.RunTimeout.Duration < 0 {
		return invalid("general.run_timeout", "run timeout must not be negative")
	}
	if _, err := textexpr.ParseMode(c.Console.Substitution); err != nil {
		return invalid("console.substitution", "invalid substitution mode: %s (want legacy or word)", c.Console.Substitution)
	}
	if c.History.Limit < 0 {
		return invalid("history.limit", "history limit must not be negative")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return invalid("canvas", "canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

// SubstitutionMode returns the parsed console substitution mode
func (c *Config) SubstitutionMode() textexpr.Mode {
	mode, err := textexpr.ParseMode(c.Console.Substitution)
	if err != nil {
		return textexpr.ModeLegacy
	}
	return mode
}

// Source returns the file the configuration was loaded from, if any
func (c *Config) Source() string {
	return c.source
}

// Encode renders the effective configuration as TOML
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", mdwerror.Wrap(err, "failed to encode config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Encode")
	}
	return b.String(), nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

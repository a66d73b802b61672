// File: config.go
// Title: Core Configuration Management Implementation
// Description: Loads TOML or YAML documents into a tree and reads typed
//              values by dotted key. An environment variable derived from
//              the key takes precedence over the file.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-25
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-10-02 v0.2.0: Caches and tracing IDs removed, Keys added
// - 2025-10-09 v0.3.0: One typed lookup path shared by all getters

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwstringx "github.com/AGOODGITDUCK/PebbleCode/foundation/utils/stringx"
)

// Format is a configuration file syntax
type Format int

const (
	// FormatTOML is the default
	FormatTOML Format = iota
	FormatYAML
	// FormatAuto picks TOML or YAML from the file extension
	FormatAuto
)

var formatNames = map[Format]string{
	FormatTOML: "toml",
	FormatYAML: "yaml",
	FormatAuto: "auto",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

var decoders = map[Format]func([]byte, interface{}) error{
	FormatTOML: toml.Unmarshal,
	FormatYAML: yaml.Unmarshal,
}

var extensions = map[string]Format{
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

func detectFormat(path string) Format {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatTOML
}

// Config is a loaded configuration tree. It is safe for concurrent use.
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
	lookupEnv func(string) (string, bool)
}

// LoadOptions control LoadWithOptions
type LoadOptions struct {
	Format    Format                 // FormatAuto by default
	EnvPrefix string                 // PEBBLE turns console.prompt into PEBBLE_CONSOLE_PROMPT
	Defaults  map[string]interface{} // used for top-level keys the file lacks
}

// Load reads a file, detecting its format from the extension
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto})
}

// LoadWithOptions reads and parses a configuration file
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	const op = "config.LoadWithOptions"

	if mdwstringx.IsBlank(filePath) {
		return nil, mdwerror.New("config file path cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation(op)
	}

	content, err := os.ReadFile(filePath)
	switch {
	case os.IsNotExist(err):
		return nil, mdwerror.Newf("config file not found: %s", filePath).
			WithCode(mdwerror.CodeNotFound).
			WithOperation(op).
			WithDetail("filePath", filePath)
	case err != nil:
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation(op).
			WithDetail("filePath", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}
	data, err := decode(content, format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config file").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation(op).
			WithDetail("filePath", filePath).
			WithDetail("format", format.String())
	}
	for k, v := range options.Defaults {
		if _, ok := data[k]; !ok {
			data[k] = v
		}
	}

	c := newConfig(data, format, options.EnvPrefix)
	c.filePath = filePath
	return c, nil
}

// LoadFromString parses content; FormatAuto means TOML
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	data, err := decode([]byte(content), format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config from string").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.LoadFromString").
			WithDetail("format", format.String())
	}
	return newConfig(data, format, ""), nil
}

// Empty returns a configuration without file data. Environment overrides
// still apply.
func Empty(envPrefix string) *Config {
	return newConfig(map[string]interface{}{}, FormatTOML, envPrefix)
}

func newConfig(data map[string]interface{}, format Format, envPrefix string) *Config {
	return &Config{
		data:      data,
		format:    format,
		envPrefix: envPrefix,
		lookupEnv: os.LookupEnv,
	}
}

func decode(content []byte, format Format) (map[string]interface{}, error) {
	unmarshal, ok := decoders[format]
	if !ok {
		return nil, mdwerror.Newf("unsupported format: %s", format).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.decode")
	}
	data := map[string]interface{}{}
	if err := unmarshal(content, &data); err != nil {
		return nil, mdwerror.Wrap(err, strings.ToUpper(format.String())+" parse error").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.decode")
	}
	if data == nil { // empty YAML document
		data = map[string]interface{}{}
	}
	return data, nil
}

// WithEnvLookup replaces the environment lookup, used by tests
func (c *Config) WithEnvLookup(lookup func(string) (string, bool)) *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookupEnv = lookup
	return c
}

// envKey maps console.prompt to CONSOLE_PROMPT, or PEBBLE_CONSOLE_PROMPT
// with a prefix
func (c *Config) envKey(key string) string {
	name := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if c.envPrefix != "" {
		name = strings.ToUpper(c.envPrefix) + "_" + name
	}
	return name
}

func (c *Config) env(key string) (string, bool) {
	if c.lookupEnv == nil {
		return "", false
	}
	return c.lookupEnv(c.envKey(key))
}

// node walks the dotted key; the caller holds c.mu
func (c *Config) node(key string) interface{} {
	var cur interface{} = c.data
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// lookup resolves key through the environment, then the file, then the
// optional default. A value conv rejects counts as absent.
func lookup[T any](c *Config, key string, conv func(interface{}) (T, bool), def []T) T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, ok := c.env(key); ok {
		if v, ok := conv(s); ok {
			return v
		}
	}
	if raw := c.node(key); raw != nil {
		if v, ok := conv(raw); ok {
			return v
		}
	}
	if len(def) > 0 {
		return def[0]
	}
	var zero T
	return zero
}

func (c *Config) GetString(key string, defaultValue ...string) string {
	return lookup(c, key, asString, defaultValue)
}

func (c *Config) GetInt(key string, defaultValue ...int) int {
	return lookup(c, key, asInt, defaultValue)
}

func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	return lookup(c, key, asBool, defaultValue)
}

func (c *Config) GetFloat(key string, defaultValue ...float64) float64 {
	return lookup(c, key, asFloat, defaultValue)
}

// GetDuration accepts Go duration strings ("250ms") or integer nanoseconds
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	return lookup(c, key, asDuration, defaultValue)
}

// GetStringSlice accepts a list, or a string split on commas
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	return lookup(c, key, asStrings, defaultValue)
}

// Has reports whether key is set in the file or the environment
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.env(key); ok {
		return true
	}
	return c.node(key) != nil
}

// Set changes a value in memory only, creating intermediate tables
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts := strings.Split(key, ".")
	m := c.data
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// Keys returns every leaf key in dotted form, sorted
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []string
	var walk func(string, map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			if prefix != "" {
				k = prefix + "." + k
			}
			if sub, ok := v.(map[string]interface{}); ok {
				walk(k, sub)
			} else {
				keys = append(keys, k)
			}
		}
	}
	walk("", c.data)
	sort.Strings(keys)
	return keys
}

// GetAll returns a deep copy of the tree
func (c *Config) GetAll() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyTree(c.data)
}

func copyTree(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		switch v := v.(type) {
		case map[string]interface{}:
			dst[k] = copyTree(v)
		case []interface{}:
			dst[k] = append([]interface{}(nil), v...)
		default:
			dst[k] = v
		}
	}
	return dst
}

// FilePath is the loaded file, or "" when the config has no file
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

func (c *Config) Format() Format {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.format
}

func (c *Config) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Config{format: %s", c.format)
	if c.filePath != "" {
		fmt.Fprintf(&b, ", path: %s", c.filePath)
	}
	if c.envPrefix != "" {
		fmt.Fprintf(&b, ", envPrefix: %s", c.envPrefix)
	}
	fmt.Fprintf(&b, ", keys: %d}", len(c.data))
	return b.String()
}

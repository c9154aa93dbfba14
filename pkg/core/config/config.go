// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     config
// Description: TOML and YAML configuration with defaults and validation
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/core/log"
)

// EnvConfigPath names the environment variable holding a config file path
const EnvConfigPath = "WSTERM_CONFIG"

// Config holds the complete application configuration
type Config struct {
	Terminal   TerminalConfig   `toml:"terminal" yaml:"terminal"`
	Connection ConnectionConfig `toml:"connection" yaml:"connection"`
	Log        LogConfig        `toml:"log" yaml:"log"`
	Echo       EchoConfig       `toml:"echo" yaml:"echo"`
}

// TerminalConfig holds interactive terminal settings
type TerminalConfig struct {
	HistoryPath   string `toml:"history_path" yaml:"history_path"`
	HistoryLimit  int    `toml:"history_limit" yaml:"history_limit"`
	MaxLineLength int    `toml:"max_line_length" yaml:"max_line_length"`
	Splash        *bool  `toml:"splash" yaml:"splash"`
}

// ConnectionConfig holds WebSocket client settings
type ConnectionConfig struct {
	HandshakeTimeout Duration          `toml:"handshake_timeout" yaml:"handshake_timeout"`
	ReadLimit        int64             `toml:"read_limit" yaml:"read_limit"`
	Protocols        []string          `toml:"protocols" yaml:"protocols"`
	Headers          map[string]string `toml:"headers" yaml:"headers"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// File receives log output; empty means stderr for CLI commands and no
	// logging for the interactive terminal
	File string `toml:"file" yaml:"file"`
}

// EchoConfig holds settings of the local echo server
type EchoConfig struct {
	Addr       string   `toml:"addr" yaml:"addr"`
	Path       string   `toml:"path" yaml:"path"`
	HealthPath string   `toml:"health_path" yaml:"health_path"`
	Protocols  []string `toml:"protocols" yaml:"protocols"`

	// MaxConnections marks the server degraded once reached; 0 means no limit
	MaxConnections int64 `toml:"max_connections" yaml:"max_connections"`
}

// Duration wraps time.Duration for TOML and YAML parsing
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

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows
// the file extension; anything but .yaml and .yml is read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wsterror.Wrap(err, "read config file").
			WithCode(wsterror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, wsterror.Wrap(err, "parse config file").
			WithCode(wsterror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve loads the config file named by explicit, by WSTERM_CONFIG or found
// in the default locations, in that order. Without any file it returns the
// defaults.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths returns the locations searched for a config file
func DefaultPaths() []string {
	return []string{
		"./wsterm.toml",
		"./wsterm.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/wsterm/config.toml"),
		filepath.Join(os.Getenv("HOME"), ".config/wsterm/config.yaml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Terminal
	if c.Terminal.HistoryPath == "" {
		c.Terminal.HistoryPath = "$HOME/.local/share/wsterm/history.db"
	}
	if c.Terminal.HistoryLimit == 0 {
		c.Terminal.HistoryLimit = 1000
	}
	if c.Terminal.MaxLineLength == 0 {
		c.Terminal.MaxLineLength = 1 << 20
	}
	if c.Terminal.Splash == nil {
		splash := true
		c.Terminal.Splash = &splash
	}

	// Connection
	if c.Connection.HandshakeTimeout.Duration == 0 {
		c.Connection.HandshakeTimeout.Duration = 10 * time.Second
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Echo
	if c.Echo.Addr == "" {
		c.Echo.Addr = "127.0.0.1:8080"
	}
	if c.Echo.Path == "" {
		c.Echo.Path = "/"
	}
	if c.Echo.HealthPath == "" {
		c.Echo.HealthPath = "/healthz"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Terminal.HistoryPath = os.ExpandEnv(c.Terminal.HistoryPath)
	c.Log.File = os.ExpandEnv(c.Log.File)
	for k, v := range c.Connection.Headers {
		c.Connection.Headers[k] = os.ExpandEnv(v)
	}
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	var problems []string

	if c.Terminal.HistoryLimit < 0 {
		problems = append(problems, "terminal.history_limit must not be negative")
	}
	if c.Terminal.MaxLineLength < 0 {
		problems = append(problems, "terminal.max_line_length must not be negative")
	}
	if c.Connection.HandshakeTimeout.Duration < 0 {
		problems = append(problems, "connection.handshake_timeout must not be negative")
	}
	if c.Connection.ReadLimit < 0 {
		problems = append(problems, "connection.read_limit must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level: %v", err))
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		problems = append(problems, fmt.Sprintf("log.format: %v", err))
	}
	if !strings.HasPrefix(c.Echo.Path, "/") {
		problems = append(problems, "echo.path must start with /")
	}
	if !strings.HasPrefix(c.Echo.HealthPath, "/") {
		problems = append(problems, "echo.health_path must start with /")
	} else if c.Echo.HealthPath == c.Echo.Path {
		problems = append(problems, "echo.health_path must differ from echo.path")
	}
	if c.Echo.MaxConnections < 0 {
		problems = append(problems, "echo.max_connections must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}
	return wsterror.New("invalid configuration: "+strings.Join(problems, "; ")).
		WithCode(wsterror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("problems", problems)
}

// HTTPHeader returns the configured handshake headers
func (c *ConnectionConfig) HTTPHeader() http.Header {
	if len(c.Headers) == 0 {
		return nil
	}
	h := make(http.Header, len(c.Headers))
	for k, v := range c.Headers {
		h.Set(k, v)
	}
	return h
}

// SplashEnabled reports whether the intro screen is shown on start
func (c *TerminalConfig) SplashEnabled() bool {
	return c.Splash == nil || *c.Splash
}

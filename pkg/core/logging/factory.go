// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating configured loggers
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name attached to every entry
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format (json, text, console, logfmt)
	Format string

	// File receives the output; empty selects Fallback
	File string

	// Fallback is used without File; nil discards output
	Fallback io.Writer

	// Verbose forces debug level
	Verbose bool
}

// DefaultLoggerConfig returns a default configuration writing text to stderr
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:     name,
		Level:    "info",
		Format:   "text",
		Fallback: os.Stderr,
	}
}

// NewLogger creates a foundation logger. The returned closer releases the
// log file and is never nil.
func NewLogger(cfg LoggerConfig) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(orDefault(cfg.Level, "info"))
	if err != nil {
		return nil, nopCloser{}, wsterror.Wrap(err, "invalid log level").
			WithCode(wsterror.CodeInvalidConfig).
			WithOperation("logging.NewLogger")
	}
	if cfg.Verbose && level > log.LevelDebug {
		level = log.LevelDebug
	}

	format, err := log.ParseFormat(orDefault(cfg.Format, "text"))
	if err != nil {
		return nil, nopCloser{}, wsterror.Wrap(err, "invalid log format").
			WithCode(wsterror.CodeInvalidConfig).
			WithOperation("logging.NewLogger")
	}

	var output io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	switch {
	case cfg.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nopCloser{}, wsterror.Wrap(err, "create log directory").
				WithCode(wsterror.CodeConfigError).
				WithOperation("logging.NewLogger").
				WithDetail("path", cfg.File)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nopCloser{}, wsterror.Wrap(err, "open log file").
				WithCode(wsterror.CodeConfigError).
				WithOperation("logging.NewLogger").
				WithDetail("path", cfg.File)
		}
		output, closer = f, f
	case cfg.Fallback != nil:
		output = cfg.Fallback
	}

	logger := log.NewWithConfig(log.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.Name,
		EnableCaller: level <= log.LevelDebug,
	})
	return logger, closer, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

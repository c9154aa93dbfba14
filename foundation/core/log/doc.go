// Package log provides structured logging for wsterm.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, structured logging with persistent context fields,
//              several output formats and integration with the coded errors
//              of foundation/core/error. The terminal writes its diagnostics
//              to a log file so that they never interleave with the TUI.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-12 v0.2.0: Removed async buffering, audit level and request context
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelDebug,
//		Format: log.FormatLogfmt,
//		Output: file,
//		Name:   "connection",
//	})
//
//	logger.Info("connected", log.Fields{"url": url, "protocol": protocol})
//	logger.ErrorWithErr("send failed", err)
//	logger.LogError(err) // level follows the error severity
//
//	timer := logger.StartTimer("dial")
//	// ...
//	timer.Stop()
package log

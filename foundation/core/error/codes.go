// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across wsterm for consistent
//              classification of template, evaluation, connection, storage
//              and configuration failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-12 v0.2.0: Code set reduced to the terminal domain

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Template expressions and their evaluation
	CodeTemplateSyntax    Code = "TEMPLATE_SYNTAX"
	CodeUndefinedVariable Code = "UNDEFINED_VARIABLE"
	CodeUndefinedFunction Code = "UNDEFINED_FUNCTION"
	CodeArgumentCount     Code = "ARGUMENT_COUNT"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"

	// Terminal commands
	CodeUnknownCommand Code = "UNKNOWN_COMMAND"
	CodeInvalidUsage   Code = "INVALID_USAGE"

	// Connection
	CodeNotConnected     Code = "NOT_CONNECTED"
	CodeAlreadyConnected Code = "ALREADY_CONNECTED"
	CodeConnectionFailed Code = "CONNECTION_FAILED"
	CodeNetworkError     Code = "NETWORK_ERROR"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeInvalidInput, CodeTimeout,
		CodeTemplateSyntax, CodeUndefinedVariable, CodeUndefinedFunction, CodeArgumentCount, CodeInvalidArgument,
		CodeUnknownCommand, CodeInvalidUsage,
		CodeNotConnected, CodeAlreadyConnected, CodeConnectionFailed, CodeNetworkError,
		CodeDatabaseError,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeTemplateSyntax, CodeUndefinedVariable, CodeUndefinedFunction, CodeArgumentCount, CodeInvalidArgument:
		return "template"
	case CodeUnknownCommand, CodeInvalidUsage:
		return "command"
	case CodeNotConnected, CodeAlreadyConnected, CodeConnectionFailed, CodeNetworkError:
		return "connection"
	case CodeDatabaseError:
		return "storage"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

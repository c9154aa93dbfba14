// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. Severity decides the log
//              level an error is reported with and how the terminal renders
//              it to the user.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-12 v0.2.0: Severity mapping for terminal error codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers mistakes in user input such as syntax errors
	SeverityLow Severity = iota

	// SeverityMedium covers failures the user can retry
	SeverityMedium

	// SeverityHigh covers failures of the local environment such as storage
	SeverityHigh

	// SeverityCritical makes the terminal unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeTemplateSyntax, CodeUndefinedVariable, CodeUndefinedFunction, CodeArgumentCount,
		CodeInvalidArgument, CodeInvalidInput, CodeUnknownCommand, CodeInvalidUsage,
		CodeNotConnected, CodeAlreadyConnected:
		return SeverityLow

	case CodeDatabaseError, CodeInvalidConfig, CodeConfigError:
		return SeverityHigh

	case CodeInternal:
		return SeverityCritical

	default:
		return SeverityMedium
	}
}

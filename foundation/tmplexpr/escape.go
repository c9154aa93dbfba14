// File: escape.go
// Title: Template Expression Escaping
// Description: Implements the inverse of parsing: protecting arbitrary text so
//              it can be inserted into a template expression literally, and
//              validating identifiers for variables and functions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial escaper

package tmplexpr

import "strings"

// Escape returns a template expression that parses back to text.
//
// Backslashes are doubled first, then every dollar sign gets a backslash
// prefix; the second pass must not see the backslashes it inserts. Control
// characters are left alone: they are literal text to the parser.
func Escape(text string) string {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(escaped, "$", `\$`)
}

// IsValidVariableName reports whether name is usable as a variable or
// function name: one or more ASCII letters.
func IsValidVariableName(name string) bool {
	if name == "" {
		return false
	}
	c := NewCursor(name)
	return c.ReadWhile(alphaSet, Unbounded) == name
}

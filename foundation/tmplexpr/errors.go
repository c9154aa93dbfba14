// File: errors.go
// Title: Template Expression Syntax Errors
// Description: Defines the single error kind of the template expression
//              parser. A ParseError lists what the grammar expected at the
//              failure position together with the unconsumed input.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial error type

package tmplexpr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTemplateExpression matches every *ParseError via errors.Is
var ErrInvalidTemplateExpression = errors.New("invalid template expression")

// Expected token descriptions
const (
	expectHexDigit     = "hex digit"
	expectInteger      = "an integer"
	expectFunctionName = "a function name"
	expectVariableName = "a variable name"
)

// ParseError reports a grammar violation
type ParseError struct {
	// Expected lists the alternatives valid at the failure position, either
	// quoted literals such as `"}"` or phrases such as `hex digit`.
	Expected []string

	// Remaining is the unconsumed input at the failure position.
	Remaining string

	// Expression is the complete input passed to Parse.
	Expression string
}

func newParseError(remaining string, expected ...string) *ParseError {
	return &ParseError{
		Expected:  expected,
		Remaining: remaining,
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvalidTemplateExpression.Error())
	b.WriteString(": expected ")
	b.WriteString(joinAlternatives(e.Expected))
	if e.Remaining == "" {
		b.WriteString(" at end of input")
	} else {
		fmt.Fprintf(&b, " at %q", e.Remaining)
	}
	if e.Expression != "" {
		fmt.Fprintf(&b, " in %q", e.Expression)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrInvalidTemplateExpression) succeed
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidTemplateExpression
}

// Offset returns the byte offset of the failure position within Expression
func (e *ParseError) Offset() int {
	offset := len(e.Expression) - len(e.Remaining)
	if offset < 0 {
		return 0
	}
	return offset
}

func joinAlternatives(alternatives []string) string {
	switch len(alternatives) {
	case 0:
		return "nothing"
	case 1:
		return alternatives[0]
	default:
		last := len(alternatives) - 1
		return strings.Join(alternatives[:last], ", ") + " or " + alternatives[last]
	}
}

func quote(literal string) string {
	return `"` + literal + `"`
}

func quoteAll(literals ...string) []string {
	quoted := make([]string, len(literals))
	for i, literal := range literals {
		quoted[i] = quote(literal)
	}
	return quoted
}

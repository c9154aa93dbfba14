// File: particle.go
// Title: Template Expression Particles
// Description: Defines the typed particles produced by the template
//              expression parser and the TemplateExpression container that
//              holds them in input order.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial particle types
// - 2026-10-14 v0.1.1: Canonical String forms for diagnostics

package tmplexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Particle
type Kind int

const (
	KindText Kind = iota
	KindByte
	KindCodepoint
	KindVariable
	KindFunctionCall
	KindIntLiteral
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindByte:
		return "byte"
	case KindCodepoint:
		return "codepoint"
	case KindVariable:
		return "variable"
	case KindFunctionCall:
		return "function"
	case KindIntLiteral:
		return "int"
	default:
		return "unknown"
	}
}

// Particle is one parsed unit of a template expression.
//
// String returns the canonical template source of the particle.
type Particle interface {
	Kind() Kind
	String() string
	particle()
}

// Text is a run of literal characters
type Text struct {
	Value string
}

// Byte is a single raw byte written as \xHH
type Byte struct {
	Value byte
}

// Codepoint is a Unicode code point written as \uHHHH or \u{H..HHHHHH}.
// Six hex digits can exceed the Unicode range; consumers decide how to treat
// such values.
type Codepoint struct {
	Value rune
}

// Variable references a user variable by name
type Variable struct {
	Name string
}

// FunctionCall references a generator function with integer arguments
type FunctionCall struct {
	Name string
	Args []IntLiteral
}

// IntLiteral is a non-negative function argument
type IntLiteral struct {
	Value uint64
}

func (Text) Kind() Kind         { return KindText }
func (Byte) Kind() Kind         { return KindByte }
func (Codepoint) Kind() Kind    { return KindCodepoint }
func (Variable) Kind() Kind     { return KindVariable }
func (FunctionCall) Kind() Kind { return KindFunctionCall }
func (IntLiteral) Kind() Kind   { return KindIntLiteral }

func (Text) particle()         {}
func (Byte) particle()         {}
func (Codepoint) particle()    {}
func (Variable) particle()     {}
func (FunctionCall) particle() {}
func (IntLiteral) particle()   {}

func (p Text) String() string { return Escape(p.Value) }

func (p Byte) String() string { return fmt.Sprintf(`\x%02x`, p.Value) }

func (p Codepoint) String() string { return fmt.Sprintf(`\u{%x}`, p.Value) }

func (p Variable) String() string { return "${" + p.Name + "}" }

func (p FunctionCall) String() string {
	args := make([]string, len(p.Args))
	for i, arg := range p.Args {
		args[i] = arg.String()
	}
	return "${" + p.Name + "(" + strings.Join(args, ", ") + ")}"
}

func (p IntLiteral) String() string { return strconv.FormatUint(p.Value, 10) }

// Values returns the argument values of the call
func (p FunctionCall) Values() []uint64 {
	values := make([]uint64, len(p.Args))
	for i, arg := range p.Args {
		values[i] = arg.Value
	}
	return values
}

// TemplateExpression is the parsed form of one input string
type TemplateExpression struct {
	Particles []Particle
}

// String returns template source that parses back to an equivalent expression
func (e TemplateExpression) String() string {
	var b strings.Builder
	for _, p := range e.Particles {
		b.WriteString(p.String())
	}
	return b.String()
}

// Text concatenates the expression when it consists of Text particles only.
// It reports false if any other particle is present.
func (e TemplateExpression) Text() (string, bool) {
	var b strings.Builder
	for _, p := range e.Particles {
		text, ok := p.(Text)
		if !ok {
			return "", false
		}
		b.WriteString(text.Value)
	}
	return b.String(), true
}

// References returns the variable and function names used by the expression
// in order of first appearance.
func (e TemplateExpression) References() (variables, functions []string) {
	seenVar := make(map[string]bool)
	seenFn := make(map[string]bool)
	for _, p := range e.Particles {
		switch p := p.(type) {
		case Variable:
			if !seenVar[p.Name] {
				seenVar[p.Name] = true
				variables = append(variables, p.Name)
			}
		case FunctionCall:
			if !seenFn[p.Name] {
				seenFn[p.Name] = true
				functions = append(functions, p.Name)
			}
		}
	}
	return variables, functions
}

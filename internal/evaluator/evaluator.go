// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     evaluator
// Description: Turns parsed template expressions into frame payloads
// Author:      Mike Stoffels
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package evaluator

import (
	"fmt"
	"unicode/utf8"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/tmplexpr"
)

// Mode selects the frame type a payload is rendered for
type Mode int

const (
	// ModeText produces valid UTF-8 for text frames
	ModeText Mode = iota
	// ModeBinary produces arbitrary bytes for binary frames
	ModeBinary
)

// String returns the name of the mode
func (m Mode) String() string {
	if m == ModeBinary {
		return "binary"
	}
	return "text"
}

// VariableSource resolves ${name} references
type VariableSource interface {
	Get(name string) ([]byte, bool)
}

// FunctionSource resolves ${name(args)} calls
type FunctionSource interface {
	Call(name string, args []uint64) ([]byte, error)
}

// Evaluator evaluates template expressions against variables and functions
type Evaluator struct {
	Variables VariableSource
	Functions FunctionSource
}

// New creates an evaluator
func New(vars VariableSource, funcs FunctionSource) *Evaluator {
	return &Evaluator{Variables: vars, Functions: funcs}
}

// Render parses line and evaluates it for mode
func (e *Evaluator) Render(line string, mode Mode) ([]byte, error) {
	expr, err := tmplexpr.Parse(line)
	if err != nil {
		return nil, wsterror.Wrap(err, "template syntax error").
			WithCode(wsterror.CodeTemplateSyntax).
			WithOperation("evaluator.Render")
	}

	if mode == ModeBinary {
		return e.EvaluateBinary(expr)
	}
	text, err := e.EvaluateText(expr)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// EvaluateText evaluates expr and requires the result to be valid UTF-8
func (e *Evaluator) EvaluateText(expr tmplexpr.TemplateExpression) (string, error) {
	out, err := e.evaluate(expr)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", wsterror.New("text frames must be valid UTF-8, use /binary for raw bytes").
			WithCode(wsterror.CodeInvalidInput).
			WithOperation("evaluator.EvaluateText")
	}
	return string(out), nil
}

// EvaluateBinary evaluates expr to raw bytes
func (e *Evaluator) EvaluateBinary(expr tmplexpr.TemplateExpression) ([]byte, error) {
	return e.evaluate(expr)
}

func (e *Evaluator) evaluate(expr tmplexpr.TemplateExpression) ([]byte, error) {
	out := []byte{}
	for _, particle := range expr.Particles {
		var err error
		out, err = e.appendParticle(out, particle)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Evaluator) appendParticle(out []byte, particle tmplexpr.Particle) ([]byte, error) {
	switch p := particle.(type) {
	case tmplexpr.Text:
		return append(out, p.Value...), nil

	case tmplexpr.Byte:
		return append(out, p.Value), nil

	case tmplexpr.Codepoint:
		if !utf8.ValidRune(p.Value) {
			return nil, wsterror.Newf("invalid code point %s", p).
				WithCode(wsterror.CodeInvalidInput).
				WithOperation("evaluator.Evaluate").
				WithDetail("codepoint", fmt.Sprintf("%#x", p.Value))
		}
		return utf8.AppendRune(out, p.Value), nil

	case tmplexpr.Variable:
		if e.Variables != nil {
			if value, ok := e.Variables.Get(p.Name); ok {
				return append(out, value...), nil
			}
		}
		return nil, wsterror.Newf("variable %q is not defined", p.Name).
			WithCode(wsterror.CodeUndefinedVariable).
			WithOperation("evaluator.Evaluate").
			WithDetail("variable", p.Name)

	case tmplexpr.FunctionCall:
		if e.Functions == nil {
			return nil, wsterror.Newf("function %q is not defined", p.Name).
				WithCode(wsterror.CodeUndefinedFunction).
				WithOperation("evaluator.Evaluate").
				WithDetail("function", p.Name)
		}
		value, err := e.Functions.Call(p.Name, p.Values())
		if err != nil {
			return nil, err
		}
		return append(out, value...), nil

	default:
		return nil, wsterror.Newf("unexpected %s particle", particle.Kind()).
			WithCode(wsterror.CodeInternal).
			WithOperation("evaluator.Evaluate")
	}
}

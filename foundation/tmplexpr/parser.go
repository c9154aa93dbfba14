// File: parser.go
// Title: Template Expression Recursive Descent Parser
// Description: Implements the template expression grammar as a set of
//              mutually recursive read functions over a Cursor. Parsing is
//              all-or-nothing: the first violation aborts with a ParseError.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-12 v0.1.0: Initial parser implementation
// - 2026-10-15 v0.1.1: Reject integer arguments that overflow 64 bits

package tmplexpr

import (
	"errors"
	"strconv"
)

// escapeMapping lists the escapes in the order they are reported as expected
var escapeMapping = []struct {
	from string
	to   string
}{
	{`\`, `\`},
	{"$", "$"},
	{"n", "\x0a"},
	{"r", "\x0d"},
	{"0", "\x00"},
	{"x", ""},
	{"u", ""},
}

// Parse parses input into a TemplateExpression.
//
// On failure the returned error is a *ParseError carrying the complete input.
func Parse(input string) (TemplateExpression, error) {
	p := &parser{cursor: NewCursor(input)}

	expr, err := p.readTemplateExpression()
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Expression = input
		}
		return TemplateExpression{}, err
	}
	return expr, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(input string) TemplateExpression {
	expr, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return expr
}

// parser holds the cursor of a single Parse call
type parser struct {
	cursor *Cursor
}

// fail creates a ParseError at the current position
func (p *parser) fail(expected ...string) error {
	return newParseError(p.cursor.String(), expected...)
}

func (p *parser) readTemplateExpression() (TemplateExpression, error) {
	var particles []Particle
	for p.cursor.Len() > 0 {
		particle, err := p.readParticle()
		if err != nil {
			return TemplateExpression{}, err
		}
		particles = append(particles, particle)
	}
	return TemplateExpression{Particles: particles}, nil
}

func (p *parser) readParticle() (Particle, error) {
	if p.cursor.Read(`\`) {
		return p.readEscape()
	}
	if p.cursor.Read("$") {
		return p.readReference()
	}
	return Text{Value: p.cursor.ReadUntil(specialSet)}, nil
}

func (p *parser) readEscape() (Particle, error) {
	if p.cursor.Read("x") {
		return p.readByte()
	}
	if p.cursor.Read("u") {
		return p.readCodepoint()
	}
	if p.cursor.Len() > 0 {
		for _, m := range escapeMapping[:5] {
			if p.cursor.Read(m.from) {
				return Text{Value: m.to}, nil
			}
		}
	}

	expected := make([]string, len(escapeMapping))
	for i, m := range escapeMapping {
		expected[i] = quote(m.from)
	}
	return nil, p.fail(expected...)
}

func (p *parser) readByte() (Particle, error) {
	hex := p.cursor.ReadWhile(hexSet, 2)
	if len(hex) < 2 {
		return nil, p.fail(expectHexDigit)
	}
	value, _ := strconv.ParseUint(hex, 16, 8)
	return Byte{Value: byte(value)}, nil
}

func (p *parser) readCodepoint() (Particle, error) {
	var hex string
	if p.cursor.Read("{") {
		hex = p.cursor.ReadWhile(hexSet, 6)
		if len(hex) < 1 {
			return nil, p.fail(expectHexDigit)
		}
		if p.cursor.Len() == 0 {
			return nil, p.fail(expectHexDigit, quote("}"))
		}
		if !p.cursor.Read("}") {
			return nil, p.fail(quote("}"))
		}
	} else {
		hex = p.cursor.ReadWhile(hexSet, 4)
		if len(hex) < 1 {
			return nil, p.fail(expectHexDigit, quote("{"))
		}
		if len(hex) < 4 {
			return nil, p.fail(expectHexDigit)
		}
	}
	value, _ := strconv.ParseUint(hex, 16, 32)
	return Codepoint{Value: rune(value)}, nil
}

// readReference reads the part of ${...} following the dollar sign
func (p *parser) readReference() (Particle, error) {
	if !p.cursor.Read("{") {
		return nil, p.fail(quote("{"))
	}
	p.skipSpace()

	expr, err := p.readExpression()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.cursor.Read("}") {
		return nil, p.fail(quote("}"))
	}
	return expr, nil
}

func (p *parser) readExpression() (Particle, error) {
	name, err := p.readName()
	if err != nil {
		return nil, err
	}
	p.skipSpace()

	if p.cursor.Read("(") {
		p.skipSpace()
		args, err := p.readFunctionArgs()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		// readFunctionArgs only returns in front of ")"
		p.cursor.Read(")")
		return FunctionCall{Name: name, Args: args}, nil
	}
	if p.cursor.StartsWith("}") {
		return Variable{Name: name}, nil
	}
	return nil, p.fail(quoteAll("(", "}")...)
}

func (p *parser) readName() (string, error) {
	name := p.cursor.ReadWhile(alphaSet, Unbounded)
	if name == "" {
		return "", p.fail(expectFunctionName, expectVariableName)
	}
	if p.cursor.Len() == 0 {
		return "", p.fail(quoteAll("(", "}")...)
	}
	return name, nil
}

func (p *parser) readFunctionArgs() ([]IntLiteral, error) {
	args := []IntLiteral{}
	if p.cursor.StartsWith(")") {
		return args, nil
	}
	if p.cursor.Len() == 0 || !integerStartSet.Contains(p.cursor.String()[0]) {
		return nil, p.fail(expectInteger, quote(")"))
	}

	for {
		arg, err := p.readInteger()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipSpace()
		if p.cursor.StartsWith(")") {
			return args, nil
		}
		if !p.cursor.Read(",") {
			return nil, p.fail(quoteAll(",", ")")...)
		}
		p.skipSpace()
	}
}

func (p *parser) readInteger() (IntLiteral, error) {
	if p.cursor.Read("0x") {
		remaining := p.cursor.String()
		digits := p.cursor.ReadWhile(hexSet, Unbounded)
		if digits == "" {
			return IntLiteral{}, p.fail(expectHexDigit)
		}
		value, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return IntLiteral{}, newParseError(remaining, expectInteger)
		}
		return IntLiteral{Value: value}, nil
	}

	remaining := p.cursor.String()
	digits := p.cursor.ReadWhile(digitSet, Unbounded)
	if digits == "" {
		return IntLiteral{}, p.fail(expectInteger)
	}
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return IntLiteral{}, newParseError(remaining, expectInteger)
	}
	return IntLiteral{Value: value}, nil
}

// skipSpace consumes literal spaces; tabs and newlines are not whitespace here
func (p *parser) skipSpace() {
	for p.cursor.Read(" ") {
	}
}

// File: doc.go
// Title: Template Expression Package Documentation
// Description: Documents the template expression grammar used by wsterm
//              command lines: literal text, escape sequences and ${...}
//              references to variables and generator functions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial grammar documentation

/*
Package tmplexpr parses the template expressions embedded in wsterm command lines.

A template expression is a string of literal text interleaved with escape
sequences and references. Parsing turns it into an ordered list of particles;
resolving variables and running generator functions is left to the caller.

# Syntax

	hello world              literal text
	\\  \$  \n  \r  \0       escaped backslash, dollar, LF, CR, NUL
	\x41                     a single byte (exactly two hex digits)
	\u00e9                   a code point (exactly four hex digits)
	\u{1F600}                a code point (one to six hex digits)
	${name}                  a variable reference
	${fn(1, 0x0a)}           a function call with integer arguments

Hex digits may be upper or lower case. Names consist of ASCII letters only.
Spaces are allowed inside ${ } around names, parentheses and commas.

# Usage

	expr, err := tmplexpr.Parse(`/s ${user}: \u{1F600}`)
	if err != nil {
		var perr *tmplexpr.ParseError
		if errors.As(err, &perr) {
			fmt.Println(perr.Expected, perr.Remaining)
		}
		return err
	}
	for _, p := range expr.Particles {
		fmt.Println(p.Kind(), p)
	}

Escape is the inverse direction: it protects arbitrary text so that parsing the
result yields the original text again.

	tmplexpr.Escape(`cost: $5 \ unit`) // cost: \$5 \\ unit

Parse, Escape and IsValidVariableName keep no state between calls and are safe
for concurrent use.
*/
package tmplexpr

// File: cursor.go
// Title: Template Expression Cursor
// Description: Implements the consumption primitive used by the template
//              expression parser. A Cursor tracks the unconsumed remainder of
//              an input string and offers bounded character-class reads that
//              either succeed and advance, or fail and consume nothing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial cursor implementation

package tmplexpr

import "strings"

// Unbounded disables the length limit of Cursor.ReadWhile.
const Unbounded = -1

// CharSet is an immutable set of ASCII characters.
type CharSet struct {
	table [256]bool
}

// NewCharSet creates a set containing every byte of chars.
func NewCharSet(chars ...string) *CharSet {
	set := &CharSet{}
	for _, s := range chars {
		for i := 0; i < len(s); i++ {
			set.table[s[i]] = true
		}
	}
	return set
}

// CharRange returns the characters from first to last inclusive.
func CharRange(first, last byte) string {
	var b strings.Builder
	for c := int(first); c <= int(last); c++ {
		b.WriteByte(byte(c))
	}
	return b.String()
}

// Contains reports whether c belongs to the set.
func (s *CharSet) Contains(c byte) bool {
	return s.table[c]
}

// Character classes of the grammar
var (
	digitChars = CharRange('0', '9')
	hexChars   = digitChars + CharRange('a', 'f') + CharRange('A', 'F')
	alphaChars = CharRange('a', 'z') + CharRange('A', 'Z')

	digitSet        = NewCharSet(digitChars)
	hexSet          = NewCharSet(hexChars)
	alphaSet        = NewCharSet(alphaChars)
	integerStartSet = NewCharSet(hexChars, "x")
	specialSet      = NewCharSet("$", `\`)
)

// Cursor is a forward-only view over the unconsumed part of an input string.
//
// Multi-byte UTF-8 sequences never contain ASCII bytes, so byte-wise reads
// against ASCII character sets never split a character.
type Cursor struct {
	input  string
	offset int
}

// NewCursor creates a cursor positioned at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input}
}

// Len returns the number of unconsumed bytes.
func (c *Cursor) Len() int {
	return len(c.input) - c.offset
}

// Offset returns the number of consumed bytes.
func (c *Cursor) Offset() int {
	return c.offset
}

// String returns the unconsumed remainder.
func (c *Cursor) String() string {
	return c.input[c.offset:]
}

// StartsWith reports whether the remainder begins with literal.
func (c *Cursor) StartsWith(literal string) bool {
	return strings.HasPrefix(c.String(), literal)
}

// Read consumes literal if the remainder begins with it.
func (c *Cursor) Read(literal string) bool {
	if !c.StartsWith(literal) {
		return false
	}
	c.offset += len(literal)
	return true
}

// ReadWhile consumes up to max leading characters contained in set and
// returns them. Pass Unbounded to read the whole run.
func (c *Cursor) ReadWhile(set *CharSet, max int) string {
	start := c.offset
	end := start
	for end < len(c.input) && set.Contains(c.input[end]) {
		if max != Unbounded && end-start >= max {
			break
		}
		end++
	}
	c.offset = end
	return c.input[start:end]
}

// ReadUntil consumes characters up to the first member of stop or the end of
// input and returns them.
func (c *Cursor) ReadUntil(stop *CharSet) string {
	start := c.offset
	end := start
	for end < len(c.input) && !stop.Contains(c.input[end]) {
		end++
	}
	c.offset = end
	return c.input[start:end]
}

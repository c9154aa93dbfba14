// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     history
// Description: Persistent command line history
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"strings"
	"time"
)

// DefaultLimit is the number of lines kept when no limit is configured
const DefaultLimit = 1000

// Entry is a single history line
type Entry struct {
	ID        string    `json:"id"`
	Line      string    `json:"line"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists command lines in input order
type Store interface {
	// Append records line unless it is blank or equals the newest entry
	Append(ctx context.Context, line string) error
	// List returns the newest limit entries oldest first, all if limit <= 0
	List(ctx context.Context, limit int) ([]Entry, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// Lines returns the lines of entries
func Lines(entries []Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

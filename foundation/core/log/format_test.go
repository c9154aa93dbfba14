// File: format_test.go
// Title: Log Format Tests
// Description: Tests for the JSON, text, console and logfmt formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12

package log

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testEntry() *Entry {
	e := NewEntry(LevelInfo, "connected")
	e.Timestamp = time.Date(2026, 10, 12, 8, 30, 0, 0, time.UTC)
	e.Logger = "connection"
	e.WithFields(Fields{"url": "ws://localhost:8080", "attempt": 2})
	return e
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" Text ", FormatText, false},
		{"console", FormatConsole, false},
		{"logfmt", FormatLogfmt, false},
		{"xml", FormatJSON, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	out, err := NewTextFormatter().Format(testEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "08:30:00 [INF] {connection} connected [attempt=2 url=ws://localhost:8080]\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestLogfmtFormatter(t *testing.T) {
	e := testEntry()
	e.Error = errors.New("eof")
	e.Duration = 1500 * time.Microsecond

	out, err := NewLogfmtFormatter().Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `timestamp=2026-10-12T08:30:00Z level=info message="connected" logger=connection attempt=2 url="ws://localhost:8080" error="eof" duration_ms=1.500` + "\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestConsoleFormatter(t *testing.T) {
	f := NewConsoleFormatter()

	colored, _ := f.Format(testEntry())
	if !strings.HasPrefix(string(colored), LevelInfo.Color()) {
		t.Errorf("Format() = %q, want color prefix", colored)
	}

	f.DisableColors = true
	plain, _ := f.Format(testEntry())
	if strings.Contains(string(plain), "\033[") {
		t.Errorf("Format() with DisableColors = %q", plain)
	}
}

func TestJSONFormatter_ErrorField(t *testing.T) {
	e := testEntry()
	e.Fields["cause"] = errors.New("timeout")

	out, err := NewJSONFormatter().Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(string(out), `"cause":"timeout"`) {
		t.Errorf("Format() = %s, want error field rendered as string", out)
	}
}

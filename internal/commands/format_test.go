package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/wsterm/internal/connection"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain", []byte("hello"), "hello"},
		{"specials", []byte(`a$b\c`), `a\$b\\c`},
		{"controls", []byte("a\r\n\x00\x07"), `a\r\n\0\x07`},
		{"invalid utf8", []byte{0xff, 0x41}, `\xffA`},
		{"unicode", []byte("é"), "é"},
		{"invisible code point", []byte("\u200b"), `\u{200b}`},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.input); got != tt.want {
				t.Errorf("Quote(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPayload(t *testing.T) {
	tests := []struct {
		name    string
		msgType connection.MessageType
		payload string
		want    []string
	}{
		{"text", connection.TextMessage, "hi", []string{"hi"}},
		{"multi-line text", connection.TextMessage, "a\r\nb\nc", []string{"a", "b", "c"}},
		{"binary", connection.BinaryMessage, "AB", []string{"00000000  41 42" + strings.Repeat(" ", 47) + "|AB|"}},
		{"empty binary", connection.BinaryMessage, "", []string{"<empty binary frame>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FormatPayload(tt.msgType, []byte(tt.payload))); diff != "" {
				t.Errorf("FormatPayload() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    connection.Event
		wantKind LineKind
		want     []string
	}{
		{
			name:     "open with protocol",
			event:    connection.Event{Kind: connection.EventOpen, Protocol: "chat"},
			wantKind: LineSystem,
			want:     []string{"Connection established.", "Selected protocol: chat"},
		},
		{
			name:     "message",
			event:    connection.Event{Kind: connection.EventMessage, Type: connection.TextMessage, Payload: []byte("pong")},
			wantKind: LineReceived,
			want:     []string{"pong"},
		},
		{
			name:     "closed",
			event:    connection.Event{Kind: connection.EventClosed, Code: 1000},
			wantKind: LineSystem,
			want:     []string{"Connection closed, code 1000 (normal closure)."},
		},
		{
			name:     "error",
			event:    connection.Event{Kind: connection.EventError, Err: errors.New("reset")},
			wantKind: LineError,
			want:     []string{"WebSocket error: reset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, lines := FormatEvent(tt.event)
			if kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", kind, tt.wantKind)
			}
			if diff := cmp.Diff(tt.want, lines); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

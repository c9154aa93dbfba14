package tui

import (
	"github.com/msto63/wsterm/internal/commands"
	"github.com/msto63/wsterm/internal/connection"
)

// Message types for tea.Cmd async operations

// printMsg carries lines printed by a command
type printMsg struct {
	kind  commands.LineKind
	lines []string
}

// clearMsg empties the screen
type clearMsg struct{}

// eventMsg carries a connection event
type eventMsg struct {
	event connection.Event
}

// lineDoneMsg is sent when an input line finished running
type lineDoneMsg struct {
	line    string
	err     error
	history []string
}

// historyLoadedMsg is sent once the stored history has been read
type historyLoadedMsg struct {
	lines []string
	err   error
}

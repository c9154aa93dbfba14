package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/wsterm/internal/commands"
)

// DefaultOutputBuffer is the number of pending output messages
const DefaultOutputBuffer = 256

// Output implements commands.Terminal by queueing messages for the model.
// Print blocks while the queue is full.
type Output struct {
	ch chan tea.Msg
}

// NewOutput creates an output queue
func NewOutput() *Output {
	return &Output{ch: make(chan tea.Msg, DefaultOutputBuffer)}
}

// Print queues lines of the given kind
func (o *Output) Print(kind commands.LineKind, lines ...string) {
	o.ch <- printMsg{kind: kind, lines: append([]string(nil), lines...)}
}

// Clear queues a screen clear
func (o *Output) Clear() {
	o.ch <- clearMsg{}
}

// wait returns a command delivering the next queued message
func (o *Output) wait() tea.Cmd {
	return func() tea.Msg {
		return <-o.ch
	}
}

var _ commands.Terminal = (*Output)(nil)

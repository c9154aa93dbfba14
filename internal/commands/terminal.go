package commands

import (
	"context"

	"github.com/msto63/wsterm/internal/connection"
)

// LineKind selects how the terminal renders a line
type LineKind int

const (
	LineSystem LineKind = iota
	LineSent
	LineReceived
	LineWarning
	LineError
	LineHelp
)

// String returns the kind name
func (k LineKind) String() string {
	switch k {
	case LineSent:
		return "sent"
	case LineReceived:
		return "received"
	case LineWarning:
		return "warning"
	case LineError:
		return "error"
	case LineHelp:
		return "help"
	default:
		return "system"
	}
}

// Terminal is the output side of the user interface
type Terminal interface {
	Print(kind LineKind, lines ...string)
	Clear()
}

// Connection is the part of the connection manager the commands drive
type Connection interface {
	Connect(ctx context.Context, url string, protocols []string) error
	Send(ctx context.Context, msgType connection.MessageType, payload []byte) error
	Close() error
	State() connection.State
	URL() string
	Protocol() string
}

package connection

import (
	"time"
)

// EventKind classifies connection events
type EventKind int

const (
	EventOpen EventKind = iota
	EventMessage
	EventClosed
	EventError
)

// String returns the event kind name
func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventMessage:
		return "message"
	case EventClosed:
		return "closed"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is published for every change of a connection and every received
// data frame
type Event struct {
	Kind    EventKind
	Session string
	Time    time.Time

	// EventOpen
	URL      string
	Protocol string

	// EventMessage
	Type    MessageType
	Payload []byte

	// EventClosed
	Code   int
	Reason string

	// EventError
	Err error
}

// Describe returns a one-line description of a closed event
func (e Event) Describe() string {
	return describeClose(e.Code, e.Reason)
}

// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     connection
// Description: WebSocket connection manager publishing frames as events
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/core/log"
)

// State is the lifecycle state of the manager
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
	StateClosing
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "disconnected"
	}
}

// MessageType is the type of a data frame
type MessageType int

const (
	TextMessage   MessageType = websocket.TextMessage
	BinaryMessage MessageType = websocket.BinaryMessage
)

// String returns the frame type name
func (t MessageType) String() string {
	if t == BinaryMessage {
		return "binary"
	}
	return "text"
}

// Defaults applied to zero Options fields
const (
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultEventBuffer      = 64
	closeGracePeriod        = time.Second
)

// Options configures a Manager
type Options struct {
	HandshakeTimeout time.Duration
	// ReadLimit caps the size of incoming messages, 0 means unlimited
	ReadLimit   int64
	Headers     http.Header
	EventBuffer int
	Logger      *log.Logger
}

// Manager owns at most one WebSocket connection at a time
type Manager struct {
	mu      sync.RWMutex
	writeMu sync.Mutex

	opts   Options
	dialer websocket.Dialer
	logger *log.Logger
	events chan Event

	conn     *websocket.Conn
	state    State
	url      string
	protocol string
	session  string
	closing  bool
}

// New creates a disconnected manager
func New(opts Options) *Manager {
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultEventBuffer
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetDefault()
	}

	return &Manager{
		opts: opts,
		dialer: websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: opts.HandshakeTimeout,
		},
		logger: logger.WithField("component", "connection"),
		events: make(chan Event, opts.EventBuffer),
	}
}

// Events returns the channel connection events are published on. The
// channel is shared by all connections of the manager and never closed.
// The read loop blocks while the channel is full, so callers must drain it.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// Connect dials url offering protocols. It returns once the handshake
// completes; frames then arrive on Events.
func (m *Manager) Connect(ctx context.Context, url string, protocols []string) error {
	m.mu.Lock()
	if m.state != StateDisconnected {
		state := m.state
		m.mu.Unlock()
		return wsterror.Newf("already %s to %s", state, m.url).
			WithCode(wsterror.CodeAlreadyConnected).
			WithOperation("connection.Connect")
	}
	m.state = StateConnecting
	m.url = url
	m.protocol = ""
	m.mu.Unlock()

	timer := m.logger.StartTimer("dial").WithField("url", url)

	dialer := m.dialer
	dialer.Subprotocols = protocols
	conn, resp, err := dialer.DialContext(ctx, url, m.opts.Headers)
	if err != nil {
		timer.StopWithError(err)
		m.mu.Lock()
		m.state = StateDisconnected
		m.mu.Unlock()

		werr := wsterror.Wrap(err, "connection failed").
			WithCode(wsterror.CodeConnectionFailed).
			WithOperation("connection.Connect").
			WithDetail("url", url)
		if resp != nil {
			werr = werr.WithDetail("status", resp.StatusCode)
		}
		return werr
	}
	timer.Stop()

	if m.opts.ReadLimit > 0 {
		conn.SetReadLimit(m.opts.ReadLimit)
	}

	session := uuid.NewString()
	m.mu.Lock()
	m.conn = conn
	m.state = StateOpen
	m.protocol = conn.Subprotocol()
	m.session = session
	m.closing = false
	m.mu.Unlock()

	m.logger.Info("connection opened", log.Fields{
		"url":      url,
		"protocol": conn.Subprotocol(),
		"session":  session,
	})

	m.publish(Event{Kind: EventOpen, Session: session, URL: url, Protocol: conn.Subprotocol()})
	go m.readLoop(conn, session)
	return nil
}

// Send writes a single data frame
func (m *Manager) Send(ctx context.Context, msgType MessageType, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	conn, state := m.conn, m.state
	m.mu.RUnlock()

	if conn == nil || state != StateOpen {
		return wsterror.New("not connected, use /connect first").
			WithCode(wsterror.CodeNotConnected).
			WithOperation("connection.Send")
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	deadline := time.Time{}
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return m.sendError(err)
	}
	if err := conn.WriteMessage(int(msgType), payload); err != nil {
		return m.sendError(err)
	}

	m.logger.Debug("frame sent", log.Fields{"type": msgType.String(), "bytes": len(payload)})
	return nil
}

func (m *Manager) sendError(err error) error {
	return wsterror.Wrap(err, "send failed").
		WithCode(wsterror.CodeNetworkError).
		WithOperation("connection.Send")
}

// Close starts the closing handshake. It returns NOT_CONNECTED when there is
// no open connection.
func (m *Manager) Close() error {
	m.mu.Lock()
	conn := m.conn
	if conn == nil || m.state != StateOpen {
		m.mu.Unlock()
		return wsterror.New("not connected").
			WithCode(wsterror.CodeNotConnected).
			WithOperation("connection.Close")
	}
	m.state = StateClosing
	m.closing = true
	m.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		// peer is gone, the read loop observes the closed socket
		_ = conn.Close()
		return nil
	}

	// the read loop finishes once the peer answers; force it after a grace period
	time.AfterFunc(closeGracePeriod, func() { _ = conn.Close() })
	return nil
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// URL returns the URL of the current or last connection
func (m *Manager) URL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.url
}

// Protocol returns the negotiated subprotocol, empty if none
func (m *Manager) Protocol() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.protocol
}

// Session returns the id of the current or last connection
func (m *Manager) Session() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *Manager) readLoop(conn *websocket.Conn, session string) {
	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			m.finish(conn, session, err)
			return
		}
		m.logger.Trace("frame received", log.Fields{"type": MessageType(msgType).String(), "bytes": len(payload)})
		m.publish(Event{
			Kind:    EventMessage,
			Session: session,
			Type:    MessageType(msgType),
			Payload: payload,
		})
	}
}

func (m *Manager) finish(conn *websocket.Conn, session string, readErr error) {
	_ = conn.Close()

	m.mu.Lock()
	closing := m.closing
	if m.conn == conn {
		m.conn = nil
		m.state = StateDisconnected
		m.closing = false
	}
	m.mu.Unlock()

	ev := Event{Kind: EventClosed, Session: session, Code: websocket.CloseAbnormalClosure}
	var closeErr *websocket.CloseError
	switch {
	case errors.As(readErr, &closeErr):
		ev.Code = closeErr.Code
		ev.Reason = closeErr.Text
	case closing:
		ev.Code = websocket.CloseNormalClosure
	default:
		m.logger.WarnWithErr("connection lost", readErr, log.Fields{"session": session})
		m.publish(Event{Kind: EventError, Session: session, Err: readErr})
	}

	m.logger.Info("connection closed", log.Fields{"session": session, "code": ev.Code, "reason": ev.Reason})
	m.publish(ev)
}

func (m *Manager) publish(ev Event) {
	ev.Time = time.Now()
	m.events <- ev
}

// describeClose renders a close code the way the terminal reports it
func describeClose(code int, reason string) string {
	text := fmt.Sprintf("code %d", code)
	if name, ok := closeCodeNames[code]; ok {
		text += " (" + name + ")"
	}
	if reason != "" {
		text += ": " + reason
	}
	return text
}

var closeCodeNames = map[int]string{
	websocket.CloseNormalClosure:           "normal closure",
	websocket.CloseGoingAway:               "going away",
	websocket.CloseProtocolError:           "protocol error",
	websocket.CloseUnsupportedData:         "unsupported data",
	websocket.CloseNoStatusReceived:        "no status",
	websocket.CloseAbnormalClosure:         "abnormal closure",
	websocket.CloseInvalidFramePayloadData: "invalid payload",
	websocket.ClosePolicyViolation:         "policy violation",
	websocket.CloseMessageTooBig:           "message too big",
	websocket.CloseMandatoryExtension:      "mandatory extension",
	websocket.CloseInternalServerErr:       "internal error",
	websocket.CloseTLSHandshake:            "TLS handshake",
}

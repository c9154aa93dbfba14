package commands

import (
	"context"
	"strings"
	"sync"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/core/log"
	"github.com/msto63/wsterm/internal/connection"
	"github.com/msto63/wsterm/internal/history"
)

type printedLine struct {
	kind LineKind
	text string
}

type fakeTerminal struct {
	mu     sync.Mutex
	lines  []printedLine
	clears int
}

func (t *fakeTerminal) Print(kind LineKind, lines ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, l := range lines {
		t.lines = append(t.lines, printedLine{kind, l})
	}
}

func (t *fakeTerminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = nil
	t.clears++
}

func (t *fakeTerminal) text(kind LineKind) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []string
	for _, l := range t.lines {
		if l.kind == kind {
			out = append(out, l.text)
		}
	}
	return strings.Join(out, "\n")
}

type sentFrame struct {
	msgType connection.MessageType
	payload string
}

type fakeConnection struct {
	mu        sync.Mutex
	state     connection.State
	url       string
	protocols []string
	sent      []sentFrame
	dialErr   error
}

func (c *fakeConnection) Connect(ctx context.Context, url string, protocols []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dialErr != nil {
		return c.dialErr
	}
	if c.state == connection.StateOpen {
		return wsterror.New("already open").WithCode(wsterror.CodeAlreadyConnected)
	}
	c.state, c.url, c.protocols = connection.StateOpen, url, protocols
	return nil
}

func (c *fakeConnection) Send(ctx context.Context, msgType connection.MessageType, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != connection.StateOpen {
		return wsterror.New("not connected").WithCode(wsterror.CodeNotConnected)
	}
	c.sent = append(c.sent, sentFrame{msgType, string(payload)})
	return nil
}

func (c *fakeConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != connection.StateOpen {
		return wsterror.New("not connected").WithCode(wsterror.CodeNotConnected)
	}
	c.state = connection.StateDisconnected
	return nil
}

func (c *fakeConnection) State() connection.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *fakeConnection) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

func (c *fakeConnection) Protocol() string { return "" }

func (c *fakeConnection) frames() []sentFrame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]sentFrame(nil), c.sent...)
}

type fixture struct {
	d       *Dispatcher
	term    *fakeTerminal
	conn    *fakeConnection
	history *history.MemoryStore
}

func newFixture() *fixture {
	f := &fixture{
		term:    &fakeTerminal{},
		conn:    &fakeConnection{},
		history: history.NewMemoryStore(100),
	}
	f.d = NewDispatcher(Config{
		Terminal:   f.term,
		Connection: f.conn,
		History:    f.history,
		Logger:     log.Discard(),
	})
	return f
}

func newConnectedFixture() *fixture {
	f := newFixture()
	f.conn.state = connection.StateOpen
	f.conn.url = "ws://test"
	return f
}

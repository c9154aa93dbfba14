package connection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/core/log"
	"github.com/msto63/wsterm/internal/echoserver"
)

func newEchoServer(t *testing.T, protocols ...string) string {
	t.Helper()
	srv := httptest.NewServer(echoserver.New(echoserver.Options{Protocols: protocols, Logger: log.Discard()}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func newTestManager() *Manager {
	return New(Options{HandshakeTimeout: 2 * time.Second, Logger: log.Discard()})
}

func nextEvent(t *testing.T, m *Manager) Event {
	t.Helper()
	select {
	case ev := <-m.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManager_ConnectSendReceive(t *testing.T) {
	url := newEchoServer(t, "chat")
	m := newTestManager()
	ctx := context.Background()

	if err := m.Connect(ctx, url, []string{"chat"}); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if m.State() != StateOpen {
		t.Errorf("State() = %v, want open", m.State())
	}
	if m.Protocol() != "chat" {
		t.Errorf("Protocol() = %q, want chat", m.Protocol())
	}
	if m.URL() != url {
		t.Errorf("URL() = %q, want %q", m.URL(), url)
	}

	open := nextEvent(t, m)
	if open.Kind != EventOpen || open.Session != m.Session() || open.Protocol != "chat" {
		t.Errorf("open event = %+v", open)
	}

	if err := m.Send(ctx, TextMessage, []byte("ping")); err != nil {
		t.Fatalf("Send(text) error = %v", err)
	}
	msg := nextEvent(t, m)
	if msg.Kind != EventMessage || msg.Type != TextMessage || string(msg.Payload) != "ping" {
		t.Errorf("message event = %+v", msg)
	}

	if err := m.Send(ctx, BinaryMessage, []byte{0xde, 0xad}); err != nil {
		t.Fatalf("Send(binary) error = %v", err)
	}
	msg = nextEvent(t, m)
	if msg.Type != BinaryMessage || string(msg.Payload) != "\xde\xad" {
		t.Errorf("binary event = %+v", msg)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	closed := nextEvent(t, m)
	if closed.Kind != EventClosed || closed.Code != websocket.CloseNormalClosure {
		t.Errorf("closed event = %+v", closed)
	}
	if m.State() != StateDisconnected {
		t.Errorf("State() after close = %v, want disconnected", m.State())
	}
}

func TestManager_ConnectTwice(t *testing.T) {
	url := newEchoServer(t)
	m := newTestManager()

	if err := m.Connect(context.Background(), url, nil); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer m.Close()
	nextEvent(t, m)

	if err := m.Connect(context.Background(), url, nil); !wsterror.HasCode(err, wsterror.CodeAlreadyConnected) {
		t.Errorf("second Connect() error = %v, want ALREADY_CONNECTED", err)
	}
}

func TestManager_ConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	m := newTestManager()
	err := m.Connect(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if !wsterror.HasCode(err, wsterror.CodeConnectionFailed) {
		t.Fatalf("Connect() error = %v, want CONNECTION_FAILED", err)
	}
	if m.State() != StateDisconnected {
		t.Errorf("State() = %v, want disconnected", m.State())
	}

	var werr *wsterror.Error
	if !errors.As(err, &werr) {
		t.Fatalf("error %T is not a *wsterror.Error", err)
	}
	if status, _ := werr.Detail("status"); status != http.StatusNotFound {
		t.Errorf("status detail = %v, want 404", status)
	}
}

func TestManager_SendWhenDisconnected(t *testing.T) {
	m := newTestManager()
	if err := m.Send(context.Background(), TextMessage, []byte("x")); !wsterror.HasCode(err, wsterror.CodeNotConnected) {
		t.Errorf("Send() error = %v, want NOT_CONNECTED", err)
	}
	if err := m.Close(); !wsterror.HasCode(err, wsterror.CodeNotConnected) {
		t.Errorf("Close() error = %v, want NOT_CONNECTED", err)
	}
}

func TestManager_SendCanceledContext(t *testing.T) {
	m := newTestManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Send(ctx, TextMessage, nil); err != context.Canceled {
		t.Errorf("Send() error = %v, want context.Canceled", err)
	}
}

func TestManager_ServerClose(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "go away")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	m := newTestManager()
	if err := m.Connect(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), nil); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	nextEvent(t, m)

	closed := nextEvent(t, m)
	if closed.Kind != EventClosed || closed.Code != websocket.ClosePolicyViolation || closed.Reason != "go away" {
		t.Errorf("closed event = %+v", closed)
	}
	if want := "code 1008 (policy violation): go away"; closed.Describe() != want {
		t.Errorf("Describe() = %q, want %q", closed.Describe(), want)
	}

	// a closed manager can connect again
	if err := m.Connect(context.Background(), newEchoServer(t), nil); err != nil {
		t.Errorf("reconnect error = %v", err)
	}
	_ = m.Close()
}

func TestManager_ReadLimit(t *testing.T) {
	url := newEchoServer(t)
	m := New(Options{ReadLimit: 8, Logger: log.Discard()})

	if err := m.Connect(context.Background(), url, nil); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	nextEvent(t, m)

	if err := m.Send(context.Background(), TextMessage, []byte("this is longer than eight bytes")); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	for {
		ev := nextEvent(t, m)
		if ev.Kind == EventClosed {
			if ev.Code != websocket.CloseMessageTooBig && ev.Code != websocket.CloseAbnormalClosure {
				t.Errorf("close code = %d, want 1009 or 1006", ev.Code)
			}
			return
		}
		if ev.Kind == EventMessage {
			t.Fatalf("oversized message delivered: %q", ev.Payload)
		}
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "disconnected"},
		{StateConnecting, "connecting"},
		{StateOpen, "open"},
		{StateClosing, "closing"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

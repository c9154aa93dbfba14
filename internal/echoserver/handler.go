// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     echoserver
// Description: Local WebSocket echo endpoint for trying out the terminal
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package echoserver

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/wsterm/foundation/core/log"
)

// Handler upgrades requests and echoes every data frame back to the sender
type Handler struct {
	upgrader websocket.Upgrader
	logger   *log.Logger
	active   atomic.Int64
}

// Options configures a Handler
type Options struct {
	// Protocols are offered during the handshake, in server preference order
	Protocols []string
	Logger    *log.Logger
}

// New creates an echo handler
func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.GetDefault()
	}
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    opts.Protocols,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger.WithField("component", "echoserver"),
	}
}

// Active returns the number of open connections
func (h *Handler) Active() int64 {
	return h.active.Load()
}

// ServeHTTP handles the upgrade and runs the echo loop
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnWithErr("upgrade failed", err, log.Fields{"remote": r.RemoteAddr})
		return
	}
	defer conn.Close()

	h.active.Add(1)
	defer h.active.Add(-1)

	logger := h.logger.WithFields(log.Fields{"remote": r.RemoteAddr, "protocol": conn.Subprotocol()})
	logger.Info("client connected")

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WarnWithErr("client read failed", err)
			}
			logger.Info("client disconnected")
			return
		}

		if err := conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			return
		}
		if err := conn.WriteMessage(msgType, payload); err != nil {
			logger.WarnWithErr("echo failed", err)
			return
		}
	}
}

package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/msto63/wsterm/internal/connection"
	"github.com/msto63/wsterm/internal/evaluator"
)

type sendCommand struct {
	d    *Dispatcher
	mode evaluator.Mode
}

func (c *sendCommand) Names() []string {
	if c.mode == evaluator.ModeBinary {
		return []string{"binary", "b"}
	}
	return []string{"send", "s"}
}

func (c *sendCommand) Usage() []string {
	name := c.Names()[0]
	return []string{
		fmt.Sprintf("/%s [template expression]", name),
		fmt.Sprintf("/%s [template expression]", c.Names()[1]),
	}
}

func (c *sendCommand) Examples() []string {
	if c.mode == evaluator.ModeBinary {
		return []string{
			"/binary Hello world!",
			`/binary \xff\x00\x80`,
			"/binary ${randomBytes(16)}",
			"/b ${byteRange(0x00, 0x0f)}",
		}
	}
	return []string{
		"/send Hello world!",
		`/send Line one\r\nLine two`,
		`/send \u{1f600} ${name}`,
		"/s ${randomChars(32)}",
	}
}

func (c *sendCommand) Info() string {
	if c.mode == evaluator.ModeBinary {
		return "send a binary frame"
	}
	return "send a text frame"
}

func (c *sendCommand) Run(ctx context.Context, params string) error {
	payload, err := c.d.eval.Render(params, c.mode)
	if err != nil {
		return err
	}

	msgType := connection.TextMessage
	if c.mode == evaluator.ModeBinary {
		msgType = connection.BinaryMessage
	}
	if err := c.d.conn.Send(ctx, msgType, payload); err != nil {
		return err
	}

	c.d.terminal.Print(LineSent, FormatPayload(msgType, payload)...)
	return nil
}

// FormatPayload renders a frame payload as terminal lines. Text frames are
// split at line breaks, binary frames are shown as a hex dump.
func FormatPayload(msgType connection.MessageType, payload []byte) []string {
	if msgType == connection.BinaryMessage {
		if len(payload) == 0 {
			return []string{"<empty binary frame>"}
		}
		return strings.Split(strings.TrimSuffix(hex.Dump(payload), "\n"), "\n")
	}
	text := strings.ReplaceAll(string(payload), "\r\n", "\n")
	return strings.Split(text, "\n")
}

// FormatEvent renders a connection event as terminal lines
func FormatEvent(ev connection.Event) (LineKind, []string) {
	switch ev.Kind {
	case connection.EventOpen:
		lines := []string{"Connection established."}
		if ev.Protocol != "" {
			lines = append(lines, "Selected protocol: "+ev.Protocol)
		}
		return LineSystem, lines
	case connection.EventMessage:
		return LineReceived, FormatPayload(ev.Type, ev.Payload)
	case connection.EventClosed:
		return LineSystem, []string{"Connection closed, " + ev.Describe() + "."}
	case connection.EventError:
		msg := "WebSocket error."
		if ev.Err != nil {
			msg = "WebSocket error: " + ev.Err.Error()
		}
		return LineError, []string{msg}
	default:
		return LineSystem, nil
	}
}

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/msto63/wsterm/internal/connection"
)

type connectCommand struct{ d *Dispatcher }

func (c *connectCommand) Names() []string { return []string{"connect"} }

func (c *connectCommand) Usage() []string {
	return []string{"/connect <ws-url> [p1[,p2[,...]]]"}
}

func (c *connectCommand) Examples() []string {
	return []string{
		"/connect wss://echo.websocket.org/",
		"/connect ws://127.0.0.1:1234/ protocol1.example.com,protocol2.example.com",
	}
}

func (c *connectCommand) Info() string { return "connect to a server" }

func (c *connectCommand) Run(ctx context.Context, params string) error {
	fields := strings.Fields(params)
	if len(fields) == 0 || len(fields) > 2 {
		return usageError(c)
	}
	url := fields[0]

	var protocolList string
	if len(fields) == 2 {
		protocolList = fields[1]
	}
	protocols, rejected := connection.SplitProtocols(protocolList)
	for _, r := range rejected {
		c.d.terminal.Print(LineWarning, rejectedProtocolLines(r)...)
	}

	negotiation := "No protocol negotiation."
	if len(protocols) > 0 {
		negotiation = "Accepted protocols: " + strings.Join(protocols, ", ")
	}
	c.d.terminal.Print(LineSystem, "Connecting to "+url, negotiation)

	return c.d.conn.Connect(ctx, url, protocols)
}

func rejectedProtocolLines(r connection.Rejected) []string {
	if r.Candidate == "" {
		return []string{"Skipped empty protocol candidate."}
	}
	quoted := make([]string, len(r.Invalid))
	for i, ch := range r.Invalid {
		quoted[i] = fmt.Sprintf("%q", ch)
	}
	return []string{
		fmt.Sprintf("Skipped invalid protocol candidate %q.", r.Candidate),
		"The following characters are not allowed: " + strings.Join(quoted, ", "),
	}
}

type disconnectCommand struct{ d *Dispatcher }

func (c *disconnectCommand) Names() []string { return []string{"disconnect"} }

func (c *disconnectCommand) Usage() []string { return []string{"/disconnect"} }

func (c *disconnectCommand) Examples() []string { return []string{"/disconnect"} }

func (c *disconnectCommand) Info() string { return "close the connection" }

func (c *disconnectCommand) Run(ctx context.Context, params string) error {
	if strings.TrimSpace(params) != "" {
		return usageError(c)
	}
	url := c.d.conn.URL()
	if err := c.d.conn.Close(); err != nil {
		return err
	}
	c.d.terminal.Print(LineSystem, "Closing connection to "+url)
	return nil
}

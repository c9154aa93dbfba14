package commands

import (
	"context"
	"strings"

	"github.com/msto63/wsterm/internal/connection"
)

type forgetCommand struct{ d *Dispatcher }

func (c *forgetCommand) Names() []string { return []string{"forget"} }

func (c *forgetCommand) Usage() []string { return []string{"/forget"} }

func (c *forgetCommand) Examples() []string { return []string{"/forget"} }

func (c *forgetCommand) Info() string { return "empty the command history" }

func (c *forgetCommand) Run(ctx context.Context, params string) error {
	if strings.TrimSpace(params) != "" {
		return usageError(c)
	}
	if err := c.d.history.Clear(ctx); err != nil {
		return err
	}
	c.d.terminal.Print(LineSystem, "Command history cleared")
	return nil
}

type clearCommand struct{ d *Dispatcher }

func (c *clearCommand) Names() []string { return []string{"clear"} }

func (c *clearCommand) Usage() []string { return []string{"/clear"} }

func (c *clearCommand) Examples() []string { return []string{"/clear"} }

func (c *clearCommand) Info() string { return "clear the screen" }

func (c *clearCommand) Run(ctx context.Context, params string) error {
	if strings.TrimSpace(params) != "" {
		return usageError(c)
	}
	c.d.terminal.Clear()
	return nil
}

type resetCommand struct{ d *Dispatcher }

func (c *resetCommand) Names() []string { return []string{"reset"} }

func (c *resetCommand) Usage() []string { return []string{"/reset"} }

func (c *resetCommand) Examples() []string { return []string{"/reset"} }

func (c *resetCommand) Info() string {
	return "disconnect, stop the interval and remove all variables"
}

func (c *resetCommand) Run(ctx context.Context, params string) error {
	if strings.TrimSpace(params) != "" {
		return usageError(c)
	}

	c.d.StopInterval()
	if c.d.conn.State() == connection.StateOpen {
		if err := c.d.conn.Close(); err != nil {
			c.d.logger.LogError(err)
		}
	}
	c.d.vars.Clear()

	c.d.terminal.Clear()
	c.d.terminal.Print(LineSystem, "Terminal reset")
	return nil
}

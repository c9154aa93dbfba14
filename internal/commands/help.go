package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
)

const syntaxTopic = "syntax"

var syntaxHelp = []string{
	"Template expressions",
	"",
	`  \\          backslash`,
	`  \$          dollar sign`,
	`  \n \r \0    line feed, carriage return, null`,
	`  \xhh        byte with two hex digits`,
	`  \uhhhh      code point with four hex digits`,
	`  \u{h...}    code point with one to six hex digits`,
	"  ${name}     variable, see /set",
	"  ${fn(a, b)} function call with decimal or 0x hex integers",
	"",
	"Hex digits are lowercase.",
}

var splashLines = []string{
	`                 _                      `,
	` __      _____  | |_ ___ _ __ _ __ ___  `,
	` \ \ /\ / / __| | __/ _ \ '__| '_ ' _ \ `,
	`  \ V  V /\__ \ | ||  __/ |  | | | | | |`,
	`   \_/\_/ |___/  \__\___|_|  |_| |_| |_|`,
	"",
	"WebSocket terminal",
	"",
	"Type /help to list commands, /connect <url> to get started.",
}

type helpCommand struct{ d *Dispatcher }

func (c *helpCommand) Names() []string { return []string{"help"} }

func (c *helpCommand) Usage() []string {
	return []string{"/help [command|function|syntax]"}
}

func (c *helpCommand) Examples() []string {
	return []string{"/help", "/help connect", "/help randomBytes", "/help syntax"}
}

func (c *helpCommand) Info() string { return "show help" }

func (c *helpCommand) Run(ctx context.Context, params string) error {
	topic := strings.TrimPrefix(strings.TrimSpace(params), "/")
	if topic == "" {
		c.d.terminal.Print(LineHelp, c.d.overview()...)
		return nil
	}
	if topic == syntaxTopic {
		c.d.terminal.Print(LineHelp, syntaxHelp...)
		return nil
	}
	if cmd, ok := c.d.Lookup(topic); ok {
		c.d.terminal.Print(LineHelp, topicLines("/"+cmd.Names()[0], cmd.Info(), cmd.Usage(), cmd.Examples())...)
		return nil
	}
	if fn, ok := c.d.funcs.Lookup(topic); ok {
		c.d.terminal.Print(LineHelp, topicLines(fn.Name()+"()", fn.Info(), fn.Usage(), fn.Examples())...)
		return nil
	}

	return wsterror.Newf("no help available for %q", topic).
		WithCode(wsterror.CodeInvalidUsage).
		WithOperation("commands.help")
}

func (d *Dispatcher) overview() []string {
	lines := []string{"Commands", ""}
	for _, cmd := range d.Commands() {
		names := make([]string, len(cmd.Names()))
		for i, n := range cmd.Names() {
			names[i] = "/" + n
		}
		lines = append(lines, fmt.Sprintf("  %-22s %s", strings.Join(names, ", "), cmd.Info()))
	}

	lines = append(lines, "", "Functions", "")
	for _, name := range d.funcs.Names() {
		fn, _ := d.funcs.Lookup(name)
		lines = append(lines, fmt.Sprintf("  %-22s %s", name+"()", fn.Info()))
	}

	return append(lines, "", "Lines without a leading slash are sent as text.",
		"Use /help <command>, /help <function> or /help syntax for details.")
}

func topicLines(title, info string, usage, examples []string) []string {
	lines := []string{title + " - " + info, "", "Usage"}
	for _, u := range usage {
		lines = append(lines, "  "+u)
	}
	if len(examples) > 0 {
		lines = append(lines, "", "Examples")
		for _, e := range examples {
			lines = append(lines, "  "+e)
		}
	}
	return lines
}

func (d *Dispatcher) helpTopics() []string {
	topics := []string{syntaxTopic}
	for _, cmd := range d.Commands() {
		topics = append(topics, cmd.Names()[0])
	}
	topics = append(topics, d.funcs.Names()...)
	sort.Strings(topics)
	return topics
}

type splashCommand struct{ d *Dispatcher }

func (c *splashCommand) Names() []string { return []string{"splash"} }

func (c *splashCommand) Usage() []string { return []string{"/splash"} }

func (c *splashCommand) Examples() []string { return []string{"/splash"} }

func (c *splashCommand) Info() string { return "show the intro screen" }

func (c *splashCommand) Run(ctx context.Context, params string) error {
	c.d.terminal.Print(LineHelp, splashLines...)
	return nil
}

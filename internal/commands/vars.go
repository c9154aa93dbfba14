package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/tmplexpr"
	"github.com/msto63/wsterm/internal/evaluator"
)

type setCommand struct{ d *Dispatcher }

func (c *setCommand) Names() []string { return []string{"set"} }

func (c *setCommand) Usage() []string { return []string{"/set <variable> [template expression]"} }

func (c *setCommand) Examples() []string {
	return []string{
		"/set name world",
		`/set header \x01\x00`,
		"/set token ${randomChars(24)}",
	}
}

func (c *setCommand) Info() string { return "set a variable for use as ${variable}" }

func (c *setCommand) Run(ctx context.Context, params string) error {
	name, expr, _ := strings.Cut(params, " ")
	if name == "" {
		return usageError(c)
	}
	if !tmplexpr.IsValidVariableName(name) {
		return wsterror.Newf("invalid variable name %q, use letters only", name).
			WithCode(wsterror.CodeInvalidInput).
			WithOperation("commands.set")
	}

	value, err := c.d.eval.Render(expr, evaluator.ModeBinary)
	if err != nil {
		return err
	}
	if err := c.d.vars.Set(name, value); err != nil {
		return err
	}

	c.d.terminal.Print(LineSystem, fmt.Sprintf("Variable %s set to %s", name, Quote(value)))
	return nil
}

type unsetCommand struct{ d *Dispatcher }

func (c *unsetCommand) Names() []string { return []string{"unset"} }

func (c *unsetCommand) Usage() []string { return []string{"/unset <variable>"} }

func (c *unsetCommand) Examples() []string { return []string{"/unset name"} }

func (c *unsetCommand) Info() string { return "remove a variable" }

func (c *unsetCommand) Run(ctx context.Context, params string) error {
	name := strings.TrimSpace(params)
	if name == "" || strings.Contains(name, " ") {
		return usageError(c)
	}
	if !c.d.vars.Unset(name) {
		return wsterror.Newf("variable %q is not defined", name).
			WithCode(wsterror.CodeUndefinedVariable).
			WithOperation("commands.unset")
	}
	c.d.terminal.Print(LineSystem, "Variable "+name+" removed")
	return nil
}

type varsCommand struct{ d *Dispatcher }

func (c *varsCommand) Names() []string { return []string{"vars"} }

func (c *varsCommand) Usage() []string { return []string{"/vars"} }

func (c *varsCommand) Examples() []string { return []string{"/vars"} }

func (c *varsCommand) Info() string { return "list variables" }

func (c *varsCommand) Run(ctx context.Context, params string) error {
	names := c.d.vars.Names()
	if len(names) == 0 {
		c.d.terminal.Print(LineHelp, "No variables defined. Create one with /set <variable> <value>")
		return nil
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		value, _ := c.d.vars.Get(name)
		lines = append(lines, fmt.Sprintf("%s = %s", name, Quote(value)))
	}
	c.d.terminal.Print(LineHelp, lines...)
	return nil
}

// Quote renders value as a template expression that evaluates back to the
// same bytes. Printable characters are kept, everything else is escaped.
func Quote(value []byte) string {
	var b strings.Builder
	for len(value) > 0 {
		r, size := utf8.DecodeRune(value)
		switch {
		case r == utf8.RuneError && size <= 1:
			fmt.Fprintf(&b, `\x%02x`, value[0])
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == 0:
			b.WriteString(`\0`)
		case unicode.IsPrint(r):
			b.WriteString(tmplexpr.Escape(string(r)))
		case r < 0x80:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			fmt.Fprintf(&b, `\u{%x}`, r)
		}
		value = value[size:]
	}
	return b.String()
}

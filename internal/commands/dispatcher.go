// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     commands
// Description: Slash command dispatcher and the built-in terminal commands
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package commands

import (
	"context"
	"sort"
	"strings"
	"sync"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/core/log"
	"github.com/msto63/wsterm/internal/evaluator"
	"github.com/msto63/wsterm/internal/functions"
	"github.com/msto63/wsterm/internal/history"
	"github.com/msto63/wsterm/internal/variables"
)

// DefaultMaxLineLength limits the length of an input line
const DefaultMaxLineLength = 1 << 20

// Config wires a Dispatcher to the rest of the terminal
type Config struct {
	Terminal   Terminal
	Connection Connection
	Variables  *variables.Store
	Functions  *functions.Registry
	History    history.Store
	Logger     *log.Logger

	MaxLineLength int
}

// Dispatcher parses input lines and runs the matching command
type Dispatcher struct {
	terminal Terminal
	conn     Connection
	vars     *variables.Store
	funcs    *functions.Registry
	history  history.Store
	eval     *evaluator.Evaluator
	logger   *log.Logger

	maxLineLength int

	mu       sync.RWMutex
	commands map[string]Command
	ordered  []Command

	intervalMu   sync.Mutex
	stopInterval context.CancelFunc
	intervalID   uint64
}

// NewDispatcher creates a dispatcher with all built-in commands registered
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.Variables == nil {
		cfg.Variables = variables.NewStore()
	}
	if cfg.Functions == nil {
		cfg.Functions = functions.NewDefaultRegistry(functions.Options{})
	}
	if cfg.History == nil {
		cfg.History = history.NewMemoryStore(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.GetDefault()
	}
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = DefaultMaxLineLength
	}

	d := &Dispatcher{
		terminal:      cfg.Terminal,
		conn:          cfg.Connection,
		vars:          cfg.Variables,
		funcs:         cfg.Functions,
		history:       cfg.History,
		eval:          evaluator.New(cfg.Variables, cfg.Functions),
		logger:        cfg.Logger.WithField("component", "commands"),
		maxLineLength: cfg.MaxLineLength,
		commands:      make(map[string]Command),
	}

	for _, cmd := range []Command{
		&connectCommand{d},
		&disconnectCommand{d},
		&sendCommand{d, evaluator.ModeText},
		&sendCommand{d, evaluator.ModeBinary},
		&setCommand{d},
		&unsetCommand{d},
		&varsCommand{d},
		&intervalCommand{d},
		&spamCommand{d},
		&forgetCommand{d},
		&clearCommand{d},
		&resetCommand{d},
		&helpCommand{d},
		&splashCommand{d},
	} {
		// built-in names do not collide
		_ = d.Register(cmd)
	}
	return d
}

// Register adds cmd under all of its names
func (d *Dispatcher) Register(cmd Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, name := range cmd.Names() {
		if _, exists := d.commands[name]; exists {
			return wsterror.Newf("command /%s is already registered", name).
				WithCode(wsterror.CodeInvalidInput).
				WithOperation("commands.Register")
		}
	}
	for _, name := range cmd.Names() {
		d.commands[name] = cmd
	}
	d.ordered = append(d.ordered, cmd)
	return nil
}

// Commands returns the registered commands sorted by name
func (d *Dispatcher) Commands() []Command {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := append([]Command(nil), d.ordered...)
	sort.Slice(out, func(i, j int) bool { return out[i].Names()[0] < out[j].Names()[0] })
	return out
}

// Lookup returns the command registered under name, without the slash
func (d *Dispatcher) Lookup(name string) (Command, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cmd, ok := d.commands[name]
	return cmd, ok
}

// Variables returns the variable store used for evaluation
func (d *Dispatcher) Variables() *variables.Store {
	return d.vars
}

// Functions returns the function registry used for evaluation
func (d *Dispatcher) Functions() *functions.Registry {
	return d.funcs
}

// Execute records line in the history and runs it
func (d *Dispatcher) Execute(ctx context.Context, line string) error {
	if len(line) > d.maxLineLength {
		return wsterror.Newf("line exceeds %d bytes", d.maxLineLength).
			WithCode(wsterror.CodeInvalidInput).
			WithOperation("commands.Execute")
	}

	if err := d.history.Append(ctx, line); err != nil {
		d.logger.LogError(err)
		d.terminal.Print(LineWarning, "History could not be saved: "+err.Error())
	}

	return d.Run(ctx, line)
}

// Run runs line without recording it. Lines starting with a slash name a
// command; any other non-empty line is sent as a text frame.
func (d *Dispatcher) Run(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	name, params := "send", line
	if strings.HasPrefix(line, "/") {
		name, params, _ = strings.Cut(line[1:], " ")
	}

	cmd, ok := d.Lookup(name)
	if !ok {
		return wsterror.Newf("unknown command /%s, see /help", name).
			WithCode(wsterror.CodeUnknownCommand).
			WithOperation("commands.Run").
			WithDetail("command", name)
	}

	d.logger.Debug("running command", log.Fields{"command": cmd.Names()[0]})
	return cmd.Run(ctx, params)
}

// Complete returns candidates completing prefix, sorted
func (d *Dispatcher) Complete(prefix string) []string {
	if !strings.HasPrefix(prefix, "/") {
		return nil
	}

	if topic, ok := strings.CutPrefix(prefix, "/help "); ok {
		var out []string
		for _, t := range d.helpTopics() {
			if strings.HasPrefix(t, topic) {
				out = append(out, "/help "+t)
			}
		}
		return out
	}

	if strings.Contains(prefix, " ") {
		return nil
	}

	d.mu.RLock()
	var out []string
	for name := range d.commands {
		if strings.HasPrefix("/"+name, prefix) {
			out = append(out, "/"+name)
		}
	}
	d.mu.RUnlock()

	sort.Strings(out)
	return out
}

// Close stops a running interval
func (d *Dispatcher) Close() {
	d.StopInterval()
}

// reportError prints err for lines that run outside of Execute
func (d *Dispatcher) reportError(err error) {
	d.logger.LogError(err)
	d.terminal.Print(LineError, err.Error())
}

func usageError(cmd Command) error {
	return wsterror.Newf("usage: %s", strings.Join(cmd.Usage(), " | ")).
		WithCode(wsterror.CodeInvalidUsage).
		WithOperation("commands." + cmd.Names()[0])
}

package commands

import (
	"context"
)

// Command is a slash command of the terminal
type Command interface {
	// Names returns the command name followed by its aliases
	Names() []string
	Usage() []string
	Examples() []string
	Info() string
	Run(ctx context.Context, params string) error
}

package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
)

// MinInterval is the shortest period accepted by /interval
const MinInterval = 10 * time.Millisecond

// MaxSpamCount is the largest repeat count accepted by /spam
const MaxSpamCount = 100000

const defaultRepeatLine = "/send"

type intervalCommand struct{ d *Dispatcher }

func (c *intervalCommand) Names() []string { return []string{"interval"} }

func (c *intervalCommand) Usage() []string {
	return []string{"/interval <milliseconds> [command line]", "/interval"}
}

func (c *intervalCommand) Examples() []string {
	return []string{
		"/interval 1000",
		"/interval 1000 /send ${time()}",
		"/interval 500 /binary ${randomBytes(8)}",
		"/interval",
	}
}

func (c *intervalCommand) Info() string {
	return "run a command periodically, without arguments stop it"
}

func (c *intervalCommand) Run(ctx context.Context, params string) error {
	params = strings.TrimSpace(params)
	if params == "" {
		if c.d.StopInterval() {
			c.d.terminal.Print(LineSystem, "Interval stopped")
		} else {
			c.d.terminal.Print(LineWarning, "No interval running")
		}
		return nil
	}

	msText, line, _ := strings.Cut(params, " ")
	ms, err := strconv.ParseUint(msText, 10, 32)
	if err != nil {
		return usageError(c)
	}
	period := time.Duration(ms) * time.Millisecond
	if period < MinInterval {
		return wsterror.Newf("interval must be at least %d ms", MinInterval.Milliseconds()).
			WithCode(wsterror.CodeInvalidArgument).
			WithOperation("commands.interval")
	}
	if line == "" {
		line = defaultRepeatLine
	}

	c.d.startInterval(period, line)
	c.d.terminal.Print(LineSystem, fmt.Sprintf("Running %q every %s", line, period))
	return nil
}

// startInterval replaces any running interval
func (d *Dispatcher) startInterval(period time.Duration, line string) {
	ctx, cancel := context.WithCancel(context.Background())

	d.intervalMu.Lock()
	if d.stopInterval != nil {
		d.stopInterval()
	}
	d.intervalID++
	id := d.intervalID
	d.stopInterval = cancel
	d.intervalMu.Unlock()

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := d.Run(ctx, line); err != nil {
				if ctx.Err() != nil {
					return
				}
				d.reportError(err)
				d.terminal.Print(LineWarning, "Interval stopped after error")
				d.clearInterval(id)
				return
			}
		}
	}()
}

// StopInterval cancels the running interval and reports whether one was
// running. A line already in progress is allowed to finish.
func (d *Dispatcher) StopInterval() bool {
	d.intervalMu.Lock()
	defer d.intervalMu.Unlock()

	if d.stopInterval == nil {
		return false
	}
	d.stopInterval()
	d.stopInterval = nil
	return true
}

// IntervalRunning reports whether an interval is active
func (d *Dispatcher) IntervalRunning() bool {
	d.intervalMu.Lock()
	defer d.intervalMu.Unlock()
	return d.stopInterval != nil
}

// clearInterval forgets interval id if it is still the current one
func (d *Dispatcher) clearInterval(id uint64) {
	d.intervalMu.Lock()
	defer d.intervalMu.Unlock()
	if d.intervalID == id && d.stopInterval != nil {
		d.stopInterval()
		d.stopInterval = nil
	}
}

type spamCommand struct{ d *Dispatcher }

func (c *spamCommand) Names() []string { return []string{"spam"} }

func (c *spamCommand) Usage() []string {
	return []string{"/spam <count> [command line]"}
}

func (c *spamCommand) Examples() []string {
	return []string{
		"/spam 10",
		"/spam 1000 /binary ${randomBytes(64)}",
	}
}

func (c *spamCommand) Info() string { return "run a command repeatedly" }

func (c *spamCommand) Run(ctx context.Context, params string) error {
	countText, line, _ := strings.Cut(strings.TrimSpace(params), " ")
	count, err := strconv.ParseUint(countText, 10, 32)
	if err != nil {
		return usageError(c)
	}
	if count > MaxSpamCount {
		return wsterror.Newf("count must not exceed %d", MaxSpamCount).
			WithCode(wsterror.CodeInvalidArgument).
			WithOperation("commands.spam")
	}
	if line == "" {
		line = defaultRepeatLine
	}

	for i := uint64(0); i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.d.Run(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

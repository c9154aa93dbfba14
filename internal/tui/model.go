// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     tui
// Description: Interactive terminal user interface
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/wsterm/foundation/core/log"
	"github.com/msto63/wsterm/internal/commands"
	"github.com/msto63/wsterm/internal/connection"
	"github.com/msto63/wsterm/internal/history"
)

// DefaultMaxLines is the number of lines kept on screen
const DefaultMaxLines = 5000

// Dispatcher runs input lines
type Dispatcher interface {
	Execute(ctx context.Context, line string) error
	Run(ctx context.Context, line string) error
	Complete(prefix string) []string
	StopInterval() bool
	IntervalRunning() bool
}

// Status reports the connection shown in the status bar
type Status interface {
	State() connection.State
	URL() string
	Protocol() string
}

// Options wires the model to the terminal core
type Options struct {
	Context    context.Context
	Dispatcher Dispatcher
	Status     Status
	Events     <-chan connection.Event
	History    history.Store
	Output     *Output
	Logger     *log.Logger

	// Startup lines run before the first input without entering the history
	Startup []string

	MaxLineLength int
	MaxLines      int
}

type line struct {
	kind commands.LineKind
	text string
}

// Model is the main TUI model
type Model struct {
	// State
	width  int
	height int
	ready  bool
	busy   int

	// Components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Screen
	lines    []line
	maxLines int

	// Input history
	inputHistory []string
	historyIndex int // -1 while editing a new line
	currentInput string

	ctx        context.Context
	dispatcher Dispatcher
	status     Status
	events     <-chan connection.Event
	history    history.Store
	output     *Output
	logger     *log.Logger
	startup    []string
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message or /help"
	ta.Prompt = ""
	ta.Focus()
	ta.CharLimit = opts.MaxLineLength
	ta.SetWidth(80)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	output := opts.Output
	if output == nil {
		output = NewOutput()
	}
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	return Model{
		textarea:     ta,
		spinner:      sp,
		maxLines:     maxLines,
		historyIndex: -1,
		busy:         len(opts.Startup),
		ctx:          ctx,
		dispatcher:   opts.Dispatcher,
		status:       opts.Status,
		events:       opts.Events,
		history:      opts.History,
		output:       output,
		logger:       logger.WithField("component", "tui"),
		startup:      append([]string(nil), opts.Startup...),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		m.spinner.Tick,
		m.output.wait(),
		m.waitForEvent(),
		m.loadHistory(),
	}
	if len(m.startup) > 0 {
		seq := make([]tea.Cmd, len(m.startup))
		for i, l := range m.startup {
			seq[i] = m.runStartupLine(l)
		}
		cmds = append(cmds, tea.Sequence(seq...))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.dispatcher.IntervalRunning() {
				m.dispatcher.StopInterval()
				m.appendLines(commands.LineSystem, "Interval stopped")
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+d":
			return m, tea.Quit

		case "ctrl+l":
			m.lines = nil
			m.refresh(true)
			return m, nil

		case "enter":
			input := m.textarea.Value()
			m.textarea.Reset()
			m.historyIndex = -1
			m.currentInput = ""
			if strings.TrimSpace(input) == "" {
				return m, nil
			}
			m.busy++
			return m, m.runLine(input)

		case "tab":
			m.complete()
			return m, nil

		case "up":
			if len(m.inputHistory) > 0 {
				if m.historyIndex == -1 {
					m.currentInput = m.textarea.Value()
					m.historyIndex = len(m.inputHistory) - 1
				} else if m.historyIndex > 0 {
					m.historyIndex--
				}
				m.textarea.SetValue(m.inputHistory[m.historyIndex])
				m.textarea.CursorEnd()
			}
			return m, nil

		case "down":
			if m.historyIndex != -1 {
				if m.historyIndex < len(m.inputHistory)-1 {
					m.historyIndex++
					m.textarea.SetValue(m.inputHistory[m.historyIndex])
				} else {
					m.historyIndex = -1
					m.textarea.SetValue(m.currentInput)
				}
				m.textarea.CursorEnd()
			}
			return m, nil

		case "pgup":
			m.viewport.ViewUp()
			return m, nil

		case "pgdown":
			m.viewport.ViewDown()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// input box (3 lines) and status bar (1 line)
		vpHeight := max(1, msg.Height-4)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(max(10, msg.Width-4))
		m.refresh(true)

	case printMsg:
		m.appendLines(msg.kind, msg.lines...)
		return m, m.output.wait()

	case clearMsg:
		m.lines = nil
		m.refresh(true)
		return m, m.output.wait()

	case eventMsg:
		m.logger.Debug("connection event", log.Fields{
			"event":   msg.event.Kind.String(),
			"session": msg.event.Session,
		})
		kind, lines := commands.FormatEvent(msg.event)
		m.appendLines(kind, lines...)
		return m, m.waitForEvent()

	case lineDoneMsg:
		m.busy = max(0, m.busy-1)
		if msg.err != nil {
			m.logger.LogError(msg.err)
			m.appendLines(commands.LineError, msg.err.Error())
		}
		if msg.history != nil {
			m.inputHistory = msg.history
		}
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.logger.LogError(msg.err)
			m.appendLines(commands.LineWarning, "History could not be loaded: "+msg.err.Error())
		} else {
			m.inputHistory = msg.lines
		}
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Update components
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(FocusedInputStyle.Width(max(10, m.width-2)).Render(m.textarea.View()))
	s.WriteString("\n")
	s.WriteString(m.renderStatusBar())
	return s.String()
}

// Lines returns the plain text of the lines on screen
func (m Model) Lines() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = l.text
	}
	return out
}

// Input returns the current input line
func (m Model) Input() string {
	return m.textarea.Value()
}

func (m *Model) renderStatusBar() string {
	state := connection.StateDisconnected
	target := ""
	if m.status != nil {
		state = m.status.State()
		target = m.status.URL()
		if p := m.status.Protocol(); p != "" {
			target += " (" + p + ")"
		}
	}

	var indicator string
	switch state {
	case connection.StateOpen:
		indicator = StatusOpenStyle.Render(state.String())
	case connection.StateConnecting, connection.StateClosing:
		indicator = StatusPendingStyle.Render(state.String())
	default:
		indicator = StatusClosedStyle.Render(state.String())
	}

	left := indicator
	if target != "" {
		left += " " + target
	}
	if m.busy > 0 || state == connection.StateConnecting {
		left = m.spinner.View() + " " + left
	}

	help := "Tab: complete  Ctrl+L: clear  Ctrl+C: quit"
	if m.dispatcher.IntervalRunning() {
		help = "interval running  Ctrl+C: stop"
	}

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(help)-2)
	return StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + help)
}

func (m *Model) appendLines(kind commands.LineKind, texts ...string) {
	for _, t := range texts {
		m.lines = append(m.lines, line{kind: kind, text: t})
	}
	if over := len(m.lines) - m.maxLines; over > 0 {
		m.lines = append([]line(nil), m.lines[over:]...)
	}
	m.refresh(false)
}

// refresh renders the lines into the viewport, following the end of the
// output unless the user scrolled up
func (m *Model) refresh(force bool) {
	if !m.ready {
		return
	}
	follow := force || m.viewport.AtBottom()

	rendered := make([]string, len(m.lines))
	for i, l := range m.lines {
		rendered[i] = RenderLine(l.kind, l.text)
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) complete() {
	value := m.textarea.Value()
	candidates := m.dispatcher.Complete(value)

	switch len(candidates) {
	case 0:
		return
	case 1:
		m.textarea.SetValue(candidates[0] + " ")
	default:
		if prefix := commonPrefix(candidates); len(prefix) > len(value) {
			m.textarea.SetValue(prefix)
		} else {
			m.appendLines(commands.LineHelp, strings.Join(candidates, "  "))
		}
	}
	m.textarea.CursorEnd()
}

func commonPrefix(values []string) string {
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// runLine executes an input line and reloads the history afterwards
func (m Model) runLine(input string) tea.Cmd {
	ctx, d, store := m.ctx, m.dispatcher, m.history
	return func() tea.Msg {
		msg := lineDoneMsg{line: input, err: d.Execute(ctx, input)}
		if store != nil {
			if entries, err := store.List(ctx, 0); err == nil {
				msg.history = history.Lines(entries)
			}
		}
		return msg
	}
}

func (m Model) runStartupLine(input string) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		return lineDoneMsg{line: input, err: d.Run(ctx, input)}
	}
}

func (m Model) loadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	ctx, store := m.ctx, m.history
	return func() tea.Msg {
		entries, err := store.List(ctx, 0)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{lines: history.Lines(entries)}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		return eventMsg{event: <-events}
	}
}

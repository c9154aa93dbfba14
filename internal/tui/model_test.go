package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/msto63/wsterm/internal/commands"
	"github.com/msto63/wsterm/internal/connection"
	"github.com/msto63/wsterm/internal/history"
)

type fakeDispatcher struct {
	mu       sync.Mutex
	executed []string
	run      []string
	err      error
	interval bool
	complete map[string][]string
}

func (f *fakeDispatcher) Execute(ctx context.Context, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.executed = append(f.executed, line)
	return f.err
}

func (f *fakeDispatcher) Run(ctx context.Context, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.run = append(f.run, line)
	return f.err
}

func (f *fakeDispatcher) Complete(prefix string) []string { return f.complete[prefix] }

func (f *fakeDispatcher) StopInterval() bool {
	was := f.interval
	f.interval = false
	return was
}

func (f *fakeDispatcher) IntervalRunning() bool { return f.interval }

type fakeStatus struct {
	state connection.State
	url   string
}

func (s fakeStatus) State() connection.State { return s.state }
func (s fakeStatus) URL() string             { return s.url }
func (s fakeStatus) Protocol() string        { return "" }

func newTestModel(t *testing.T, d *fakeDispatcher, opts Options) Model {
	t.Helper()
	opts.Dispatcher = d
	if opts.Status == nil {
		opts.Status = fakeStatus{}
	}
	m := NewModel(opts)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m.textarea.SetValue(text)
	return m
}

func TestModel_PrintAndClear(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, Options{})

	m = update(t, m, printMsg{kind: commands.LineSystem, lines: []string{"one", "two"}})
	m = update(t, m, printMsg{kind: commands.LineReceived, lines: []string{"three"}})

	if diff := cmp.Diff([]string{"one", "two", "three"}, m.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if view := m.View(); !strings.Contains(view, "< three") {
		t.Errorf("View() does not contain received line:\n%s", view)
	}

	m = update(t, m, clearMsg{})
	if len(m.Lines()) != 0 {
		t.Errorf("Lines() after clear = %v", m.Lines())
	}
}

func TestModel_MaxLines(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, Options{MaxLines: 3})

	m = update(t, m, printMsg{kind: commands.LineSystem, lines: []string{"1", "2", "3", "4", "5"}})

	if diff := cmp.Diff([]string{"3", "4", "5"}, m.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_Enter(t *testing.T) {
	d := &fakeDispatcher{}
	store := history.NewMemoryStore(0)
	if err := store.Append(context.Background(), "/help"); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, d, Options{History: store})

	m = typeText(t, m, "/help")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.Input() != "" {
		t.Errorf("Input() after enter = %q, want empty", m.Input())
	}
	if m.busy != 1 {
		t.Errorf("busy = %d, want 1", m.busy)
	}
	if cmd == nil {
		t.Fatal("enter returned no command")
	}

	done, ok := cmd().(lineDoneMsg)
	if !ok {
		t.Fatalf("command returned %T, want lineDoneMsg", cmd())
	}
	if diff := cmp.Diff([]string{"/help"}, d.executed); diff != "" {
		t.Errorf("executed mismatch (-want +got):\n%s", diff)
	}

	m = update(t, m, done)
	if m.busy != 0 {
		t.Errorf("busy = %d, want 0", m.busy)
	}
	if diff := cmp.Diff([]string{"/help"}, m.inputHistory); diff != "" {
		t.Errorf("inputHistory mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_EnterBlank(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, Options{})

	m = typeText(t, m, "   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank line produced a command")
	}
}

func TestModel_LineError(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, Options{})
	m.busy = 1

	m = update(t, m, lineDoneMsg{line: "/nope", err: errors.New("unknown command /nope, see /help")})

	if diff := cmp.Diff([]string{"unknown command /nope, see /help"}, m.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if m.lines[0].kind != commands.LineError {
		t.Errorf("kind = %v, want error", m.lines[0].kind)
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, Options{})
	m = update(t, m, historyLoadedMsg{lines: []string{"first", "second"}})
	m = typeText(t, m, "draft")

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	steps := []struct {
		key  tea.KeyMsg
		want string
	}{
		{up, "second"},
		{up, "first"},
		{up, "first"},
		{down, "second"},
		{down, "draft"},
		{down, "draft"},
	}

	for i, step := range steps {
		m = update(t, m, step.key)
		if got := m.Input(); got != step.want {
			t.Errorf("step %d: Input() = %q, want %q", i, got, step.want)
		}
	}
}

func TestModel_Complete(t *testing.T) {
	d := &fakeDispatcher{complete: map[string][]string{
		"/disc": {"/disconnect"},
		"/s":    {"/send", "/set", "/spam", "/splash"},
		"/sp":   {"/spam", "/splash"},
	}}
	tests := []struct {
		name      string
		input     string
		wantInput string
		wantLines []string
	}{
		{"single", "/disc", "/disconnect ", nil},
		{"no candidates", "hello", "hello", nil},
		{"list", "/s", "/s", []string{"/send  /set  /spam  /splash"}},
		{"common prefix", "/sp", "/sp", []string{"/spam  /splash"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, d, Options{})
			m = typeText(t, m, tt.input)
			m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

			if got := m.Input(); got != tt.wantInput {
				t.Errorf("Input() = %q, want %q", got, tt.wantInput)
			}
			if diff := cmp.Diff(tt.wantLines, nilIfEmpty(m.Lines())); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		values   []string
		expected string
	}{
		{[]string{"/spam", "/splash"}, "/sp"},
		{[]string{"/help syntax", "/help send"}, "/help s"},
		{[]string{"/a", "/b"}, "/"},
	}

	for _, tt := range tests {
		if got := commonPrefix(tt.values); got != tt.expected {
			t.Errorf("commonPrefix(%v) = %q, want %q", tt.values, got, tt.expected)
		}
	}
}

func TestModel_CtrlC(t *testing.T) {
	d := &fakeDispatcher{interval: true}
	m := newTestModel(t, d, Options{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	if cmd != nil {
		t.Error("ctrl+c with running interval returned a command")
	}
	if d.interval {
		t.Error("interval still running")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}

func TestModel_Event(t *testing.T) {
	events := make(chan connection.Event, 1)
	m := newTestModel(t, &fakeDispatcher{}, Options{Events: events})

	next, cmd := m.Update(eventMsg{event: connection.Event{
		Kind:    connection.EventMessage,
		Type:    connection.TextMessage,
		Payload: []byte("hello\nworld"),
	}})
	m = next.(Model)

	if diff := cmp.Diff([]string{"hello", "world"}, m.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if cmd == nil {
		t.Fatal("event did not resubscribe")
	}

	events <- connection.Event{Kind: connection.EventOpen}
	if msg, ok := cmd().(eventMsg); !ok || msg.event.Kind != connection.EventOpen {
		t.Errorf("next event = %#v", msg)
	}
}

func TestModel_Startup(t *testing.T) {
	d := &fakeDispatcher{}
	m := NewModel(Options{Dispatcher: d, Startup: []string{"/splash", "/connect ws://x"}})

	if m.busy != 2 {
		t.Errorf("busy = %d, want 2", m.busy)
	}
	for _, l := range m.startup {
		if _, ok := m.runStartupLine(l)().(lineDoneMsg); !ok {
			t.Fatal("startup line did not report completion")
		}
	}
	if diff := cmp.Diff([]string{"/splash", "/connect ws://x"}, d.run); diff != "" {
		t.Errorf("run mismatch (-want +got):\n%s", diff)
	}
	if len(d.executed) != 0 {
		t.Errorf("startup lines entered the history: %v", d.executed)
	}
}

func TestModel_StatusBar(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, Options{
		Status: fakeStatus{state: connection.StateOpen, url: "ws://127.0.0.1:8080/"},
	})

	view := m.View()
	for _, want := range []string{"open", "ws://127.0.0.1:8080/", "Ctrl+C: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() does not contain %q", want)
		}
	}
}

func TestOutput(t *testing.T) {
	out := NewOutput()
	out.Print(commands.LineSent, "a", "b")
	out.Clear()

	msg := out.wait()()
	p, ok := msg.(printMsg)
	if !ok || p.kind != commands.LineSent {
		t.Fatalf("first message = %#v", msg)
	}
	if diff := cmp.Diff([]string{"a", "b"}, p.lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if _, ok := out.wait()().(clearMsg); !ok {
		t.Error("second message is not a clear")
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

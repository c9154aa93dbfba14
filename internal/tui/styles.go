package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/wsterm/internal/commands"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorInfo      = lipgloss.Color("#60A5FA")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	// Line styles
	SystemLineStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	SentLineStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	ReceivedLineStyle = lipgloss.NewStyle().
				Foreground(colorInfo)

	WarningLineStyle = lipgloss.NewStyle().
				Foreground(colorAccent)

	ErrorLineStyle = lipgloss.NewStyle().
			Foreground(colorError)

	HelpLineStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	// Status styles
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	StatusOpenStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	StatusClosedStyle = lipgloss.NewStyle().
				Foreground(colorError)

	StatusPendingStyle = lipgloss.NewStyle().
				Foreground(colorAccent)

	// Input style
	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)
)

// linePrefix marks the origin of a line independent of color support
var linePrefix = map[commands.LineKind]string{
	commands.LineSystem:   "* ",
	commands.LineSent:     "> ",
	commands.LineReceived: "< ",
	commands.LineWarning:  "! ",
	commands.LineError:    "x ",
	commands.LineHelp:     "  ",
}

// RenderLine renders a single terminal line of the given kind
func RenderLine(kind commands.LineKind, text string) string {
	prefix := linePrefix[kind]
	switch kind {
	case commands.LineSent:
		return SentLineStyle.Render(prefix + text)
	case commands.LineReceived:
		return ReceivedLineStyle.Render(prefix + text)
	case commands.LineWarning:
		return WarningLineStyle.Render(prefix + text)
	case commands.LineError:
		return ErrorLineStyle.Render(prefix + text)
	case commands.LineHelp:
		return HelpLineStyle.Render(prefix + text)
	default:
		return SystemLineStyle.Render(prefix + text)
	}
}

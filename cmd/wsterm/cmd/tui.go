package cmd

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/wsterm/internal/commands"
	"github.com/msto63/wsterm/internal/connection"
	"github.com/msto63/wsterm/internal/history"
	"github.com/msto63/wsterm/internal/tui"
	"github.com/msto63/wsterm/pkg/core/config"
)

var noHistory bool

var tuiCmd = &cobra.Command{
	Use:   "tui [url]",
	Short: "Start the interactive terminal",
	Long: `Start the interactive terminal.

Keys:
  Enter      run the line
  Up/Down    browse the command history
  Tab        complete commands and help topics
  PgUp/PgDn  scroll the output
  Ctrl+L     clear the screen
  Ctrl+C     stop a running interval, otherwise quit
  Ctrl+D     quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&noHistory, "no-history", false, "keep the command history in memory only")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// the screen belongs to the terminal; logs go to the configured file only
	logger, closer, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	mgr := connection.New(connection.Options{
		HandshakeTimeout: cfg.Connection.HandshakeTimeout.Duration,
		ReadLimit:        cfg.Connection.ReadLimit,
		Headers:          cfg.Connection.HTTPHeader(),
		Logger:           logger,
	})

	out := tui.NewOutput()
	dispatcher := commands.NewDispatcher(commands.Config{
		Terminal:      out,
		Connection:    mgr,
		History:       store,
		Logger:        logger,
		MaxLineLength: cfg.Terminal.MaxLineLength,
	})
	defer dispatcher.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := tui.NewModel(tui.Options{
		Context:       ctx,
		Dispatcher:    dispatcher,
		Status:        mgr,
		Events:        mgr.Events(),
		History:       store,
		Output:        out,
		Logger:        logger,
		Startup:       startupLines(cfg, args),
		MaxLineLength: cfg.Terminal.MaxLineLength,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, runErr := p.Run()

	if mgr.State() != connection.StateDisconnected {
		if err := mgr.Close(); err != nil {
			logger.LogError(err)
		}
	}
	if runErr != nil {
		return fmt.Errorf("terminal: %w", runErr)
	}
	return nil
}

func openHistory(cfg *config.Config) (history.Store, error) {
	if noHistory {
		return history.NewMemoryStore(cfg.Terminal.HistoryLimit), nil
	}
	return history.NewSQLiteStore(history.SQLiteConfig{
		Path:  cfg.Terminal.HistoryPath,
		Limit: cfg.Terminal.HistoryLimit,
	})
}

// startupLines returns the command lines run when the terminal starts
func startupLines(cfg *config.Config, args []string) []string {
	var lines []string
	if cfg.Terminal.SplashEnabled() {
		lines = append(lines, "/splash")
	}
	if len(args) > 0 {
		line := "/connect " + args[0]
		if len(cfg.Connection.Protocols) > 0 {
			line += " " + strings.Join(cfg.Connection.Protocols, ",")
		}
		lines = append(lines, line)
	}
	return lines
}

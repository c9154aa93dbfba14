package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/wsterm/foundation/core/log"
	"github.com/msto63/wsterm/pkg/core/config"
	"github.com/msto63/wsterm/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wsterm [url]",
	Short: "wsterm - interactive WebSocket terminal",
	Long: `wsterm is a terminal for talking to WebSocket servers.

Type messages to send them as text frames, or commands starting with a
slash. Messages may contain template expressions such as \x00, \u{1f600},
${variable} or ${randomBytes(8)}.

Without a subcommand the interactive terminal is started. An optional URL
connects on start.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $WSTERM_CONFIG, ./wsterm.toml, ~/.config/wsterm/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "keep the command history in memory only")
}

func loadConfig() (*config.Config, error) {
	return config.Resolve(cfgFile)
}

// newLogger creates the command logger. fallback receives output when no
// log file is configured.
func newLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, io.Closer, error) {
	logger, closer, err := logging.NewLogger(logging.LoggerConfig{
		Name:     "wsterm",
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		File:     cfg.Log.File,
		Fallback: fallback,
		Verbose:  verbose,
	})
	if err != nil {
		return nil, nil, err
	}
	log.SetDefault(logger)
	return logger, closer, nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

func stderr(cmd *cobra.Command) io.Writer {
	if w := cmd.ErrOrStderr(); w != nil {
		return w
	}
	return os.Stderr
}

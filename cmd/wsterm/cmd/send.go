package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/wsterm/foundation/core/log"
	"github.com/msto63/wsterm/internal/commands"
	"github.com/msto63/wsterm/internal/connection"
	"github.com/msto63/wsterm/internal/evaluator"
	"github.com/msto63/wsterm/internal/functions"
	"github.com/msto63/wsterm/internal/variables"
)

var (
	sendBinary    bool
	sendWait      time.Duration
	sendProtocols []string
)

var sendCmd = &cobra.Command{
	Use:   "send <url> <expression>",
	Short: "Send one message and print the replies",
	Long: `Connect to a server, send one message and print received messages
until the wait time has elapsed or the server closes the connection.

Examples:
  wsterm send ws://127.0.0.1:8080/ 'hello ${randomChars(4)}'
  wsterm send --binary --wait 5s ws://127.0.0.1:8080/ '\x00\x01\x02'
  wsterm send --protocol chat ws://127.0.0.1:8080/ ping`,
	Args: cobra.ExactArgs(2),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolVarP(&sendBinary, "binary", "b", false, "send a binary frame")
	sendCmd.Flags().DurationVarP(&sendWait, "wait", "w", 2*time.Second, "time to wait for replies")
	sendCmd.Flags().StringSliceVarP(&sendProtocols, "protocol", "p", nil, "offer a subprotocol (repeatable)")
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, stderr(cmd))
	if err != nil {
		return err
	}
	defer closer.Close()

	mode, msgType := evaluator.ModeText, connection.TextMessage
	if sendBinary {
		mode, msgType = evaluator.ModeBinary, connection.BinaryMessage
	}

	eval := evaluator.New(variables.NewStore(), functions.NewDefaultRegistry(functions.Options{}))
	payload, err := eval.Render(args[1], mode)
	if err != nil {
		return err
	}

	protocolList := sendProtocols
	if len(protocolList) == 0 {
		protocolList = cfg.Connection.Protocols
	}
	protocols, rejected := connection.SplitProtocols(strings.Join(protocolList, ","))
	for _, r := range rejected {
		logger.Warn("skipping invalid protocol", log.Fields{"candidate": r.Candidate})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := connection.New(connection.Options{
		HandshakeTimeout: cfg.Connection.HandshakeTimeout.Duration,
		ReadLimit:        cfg.Connection.ReadLimit,
		Headers:          cfg.Connection.HTTPHeader(),
		Logger:           logger,
	})
	if err := mgr.Connect(ctx, args[0], protocols); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if p := mgr.Protocol(); p != "" {
		fmt.Fprintf(out, "* Selected protocol: %s\n", p)
	}
	if err := mgr.Send(ctx, msgType, payload); err != nil {
		mgr.Close()
		return err
	}
	printLines(out, commands.LineSent, commands.FormatPayload(msgType, payload))

	return awaitReplies(ctx, mgr, out, sendWait)
}

// awaitReplies prints events until wait elapses or the connection closes,
// then closes the connection
func awaitReplies(ctx context.Context, mgr *connection.Manager, out io.Writer, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	closing := false
	for {
		select {
		case ev := <-mgr.Events():
			if ev.Kind == connection.EventOpen {
				continue
			}
			kind, lines := commands.FormatEvent(ev)
			printLines(out, kind, lines)
			if ev.Kind == connection.EventClosed {
				return nil
			}
		case <-timer.C:
			if closing {
				return nil
			}
			closing = true
			if err := mgr.Close(); err != nil {
				return err
			}
			timer.Reset(2 * time.Second)
		case <-ctx.Done():
			mgr.Close()
			return nil
		}
	}
}

func printLines(w io.Writer, kind commands.LineKind, lines []string) {
	prefix := map[commands.LineKind]string{
		commands.LineSent:     "> ",
		commands.LineReceived: "< ",
		commands.LineError:    "x ",
		commands.LineWarning:  "! ",
	}[kind]
	if prefix == "" {
		prefix = "* "
	}
	for _, l := range lines {
		fmt.Fprintln(w, prefix+l)
	}
}

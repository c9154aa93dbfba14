package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/wsterm/foundation/core/log"
	"github.com/msto63/wsterm/internal/echoserver"
	"github.com/msto63/wsterm/pkg/core/health"
	"github.com/msto63/wsterm/pkg/core/version"
)

var (
	serveAddr      string
	serveProtocols []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local WebSocket echo server",
	Long: `Run a WebSocket server that echoes every frame back to the sender.

Examples:
  wsterm serve
  wsterm serve --addr :9000 --protocol chat --protocol superchat`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	serveCmd.Flags().StringSliceVarP(&serveProtocols, "protocol", "p", nil, "subprotocol accepted by the server (repeatable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, stderr(cmd))
	if err != nil {
		return err
	}
	defer closer.Close()

	addr := cfg.Echo.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	protocols := cfg.Echo.Protocols
	if len(serveProtocols) > 0 {
		protocols = serveProtocols
	}

	echo := echoserver.New(echoserver.Options{
		Protocols: protocols,
		Logger:    logger,
	})

	checks := health.NewRegistry("wsterm-echo", version.Version)
	checks.Register(health.ConnectionsCheck("connections", echo.Active, cfg.Echo.MaxConnections))

	mux := http.NewServeMux()
	mux.Handle(cfg.Echo.Path, echo)
	mux.Handle(cfg.Echo.HealthPath, health.Handler(checks, 2*time.Second))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Echo server listening on ws://%s%s\n", ln.Addr(), cfg.Echo.Path)
	logger.Info("echo server started", log.Fields{"addr": ln.Addr().String(), "protocols": protocols})

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("echo server stopped")
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/hexroute/internal/leaderboard"
	"github.com/vovakirdan/hexroute/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWithHTTP    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hexroute SSH server",
	Long: `Start an SSH server that lets operators connect and breach levels.

Each SSH connection gets its own session: name entry, level picker and
leaderboard. All sessions share the server's database, so everyone posts
to the same leaderboard. With --http the HTTP leaderboard runs alongside.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key from the config, generating it if missing

Examples:
  hexroute serve                           # Listen on :23234
  hexroute serve --ssh :2222               # Listen on port 2222
  hexroute serve --http                    # Also serve the leaderboard API
  hexroute serve --host-key ./my_host_key  # Use specific host key

Operators can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagWithHTTP, "http", false, "Also serve the HTTP leaderboard on server.http_addr")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.requireStore(); err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = a.cfg.Server.SSHAddr
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	cfg.HostKeyPath = a.cfg.Server.HostKey
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	deps := a.services()
	deps.Logger = a.logger.WithPrefix("ssh")
	server, err := tui.NewSSHServer(cfg, deps)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting hexroute SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.ListenAndServe(ctx) })
	if flagWithHTTP {
		api := leaderboard.NewServer(a.store, a.bus, a.logger.WithPrefix("http"))
		g.Go(func() error { return api.ListenAndServe(ctx, a.cfg.Server.HTTPAddr) })
	}
	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexroute/internal/leaderboard"
)

var flagHTTPAddr string

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Run or follow the HTTP leaderboard",
}

var leaderboardServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the leaderboard API",
	Long: `Serve the breach leaderboard over HTTP.

Endpoints:
  GET  /api/leaderboard        - Top 100 breaches, fastest first
  POST /api/leaderboard        - Submit {operatorName, timeCompleted, durationSeconds}
  GET  /api/leaderboard/stats  - Operative count and fastest breach
  GET  /api/leaderboard/live   - WebSocket feed of new entries

Examples:
  hexroute leaderboard serve
  hexroute leaderboard serve --addr :8080 --db ./board.db`,
	Args: cobra.NoArgs,
	RunE: runLeaderboardServe,
}

var leaderboardWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print new entries as they are accepted",
	Long: `Follow a remote leaderboard's live feed.

Examples:
  hexroute leaderboard watch --leaderboard-url http://localhost:3001`,
	Args: cobra.NoArgs,
	RunE: runLeaderboardWatch,
}

func init() {
	leaderboardServeCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (default from config, :3001)")

	leaderboardCmd.AddCommand(leaderboardServeCmd)
	leaderboardCmd.AddCommand(leaderboardWatchCmd)
}

func runLeaderboardServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.requireStore(); err != nil {
		return err
	}

	addr := a.cfg.Server.HTTPAddr
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Leaderboard listening on %s\n", addr)
	return leaderboard.NewServer(a.store, a.bus, a.logger.WithPrefix("http")).ListenAndServe(ctx, addr)
}

func runLeaderboardWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()
	if a.client == nil {
		return errors.New("no leaderboard configured: pass --leaderboard-url or set leaderboard.url")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feed, err := a.client.Live(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Watching for breaches. Press Ctrl+C to stop")
	for entry := range feed {
		fmt.Printf("%s  %-24s  %s\n", entry.CreatedAt.Local().Format("15:04:05"), entry.OperatorName, entry.TimeCompleted)
		a.bus.Publish(entry)
	}
	if ctx.Err() == nil {
		return errors.New("live feed closed by server")
	}
	return nil
}

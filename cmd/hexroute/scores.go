package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/leaderboard"
	"github.com/vovakirdan/hexroute/internal/platform/tui"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the leaderboard or a level's best runs",
	Long: `Without a level, prints the breach leaderboard: the remote one when
--leaderboard-url is set, otherwise the local database. With a level id,
prints the fastest local runs on that level.

Examples:
  hexroute scores
  hexroute scores lvl02
  hexroute scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
}

func runScores(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, flagScoresTUI)
	if err != nil {
		return err
	}
	defer a.close()

	if flagScoresTUI {
		w, h := terminalSize()
		_, err := tui.RunScoreboard(a.services(), w, h)
		return err
	}
	if len(args) == 1 {
		return printRuns(a, args[0])
	}
	return printLeaderboard(cmd.Context(), a)
}

func printLeaderboard(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		ranked []leaderboard.Ranked
		stats  leaderboard.Stats
	)
	if a.client != nil {
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		var err error
		if ranked, err = a.client.Top(ctx); err != nil {
			return err
		}
		if stats, err = a.client.Stats(ctx); err != nil {
			return err
		}
	} else {
		if err := a.requireStore(); err != nil {
			return err
		}
		entries, err := a.store.TopEntries(0)
		if err != nil {
			return err
		}
		for _, e := range entries {
			ranked = append(ranked, leaderboard.Ranked{Rank: e.Rank, OperatorName: e.OperatorName, TimeCompleted: e.TimeCompleted})
		}
		st, err := a.store.Stats()
		if err != nil {
			return err
		}
		stats.TotalOperatives = st.TotalOperatives
		if st.FastestBreach != "" {
			stats.FastestBreach = &st.FastestBreach
		}
	}

	fmt.Println("Breach Leaderboard")
	fmt.Println()
	if len(ranked) == 0 {
		fmt.Println("No breaches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'hexroute play' to set the first time!")
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %s\n", "Rank", "Operator", "Time")
	fmt.Printf("  %-4s  %-24s  %s\n", "----", "--------", "----")
	for _, r := range ranked {
		fmt.Printf("  %-4d  %-24s  %s\n", r.Rank, r.OperatorName, r.TimeCompleted)
	}

	fmt.Println()
	fastest := "--"
	if stats.FastestBreach != nil {
		fastest = *stats.FastestBreach
	}
	fmt.Printf("Operatives: %d  Fastest: %s\n", stats.TotalOperatives, fastest)
	return nil
}

func printRuns(a *app, levelID string) error {
	if err := a.requireStore(); err != nil {
		return err
	}
	runs, err := a.store.RecentRuns(levelID, 100)
	if err != nil {
		return err
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].ElapsedSeconds != runs[j].ElapsedSeconds {
			return runs[i].ElapsedSeconds < runs[j].ElapsedSeconds
		}
		return runs[i].Moves < runs[j].Moves
	})
	if len(runs) > 10 {
		runs = runs[:10]
	}

	fmt.Printf("Best Runs - %s\n", levelID)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'hexroute play %s' to set the first time!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %-8s  %-5s  %s\n", "Rank", "Operator", "Time", "Hops", "Date")
	fmt.Printf("  %-4s  %-24s  %-8s  %-5s  %s\n", "----", "--------", "----", "----", "----")
	for i, run := range runs {
		fmt.Printf("  %-4d  %-24s  %-8s  %-5d  %s\n",
			i+1, run.OperatorName, core.FormatDuration(run.ElapsedSeconds), run.Moves,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexroute/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive session",
	Long: `Start hexroute in interactive mode: identify yourself, pick a level,
and check the leaderboard between breaches.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Leaderboard
  Q            - Quit

Examples:
  hexroute menu
  hexroute menu --fps 60
  hexroute menu --leaderboard-url http://localhost:3001`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	return tui.RunSession(a.services(), a.runtimeConfig(), flagOperator, operatorSuggestion())
}

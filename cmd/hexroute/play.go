package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexroute/internal/games/hexlink"
	"github.com/vovakirdan/hexroute/internal/platform/tui"
	"github.com/vovakirdan/hexroute/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start breaching a level. Without an argument the configured start
level is played, or the core grid if none is set.

Controls:
  Arrows/WASD  - Select a node
  Space        - Rotate the selected node
  Enter        - Unlock (on the core) or rotate
  H/?          - Hint
  P            - Pause
  R            - Rescramble
  B/Esc        - Back
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start on the small training grid
  normal - Start on the standard grid
  hard   - Start wherever the config says
  fixed  - No scramble, levels start as authored

Examples:
  hexroute play
  hexroute play lvl03
  hexroute play --difficulty easy
  hexroute play --operator NEO --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	game, err := registry.Create(hexlink.GameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	if len(args) == 1 {
		if err := game.(registry.LevelSetter).SetLevel(args[0]); err != nil {
			return fmt.Errorf("%w\nRun 'hexroute list' to see available levels", err)
		}
	}

	cfg := a.runtimeConfig()
	operator := tui.NormalizeOperator(flagOperator)
	if operator == "" {
		operator, err = tui.RunNameEntry(operatorSuggestion(), cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return err
		}
		if operator == "" {
			return nil // Quit at the prompt
		}
	}

	a.logger.Info("Starting run", "operator", operator, "level", game.(*hexlink.Game).LevelID())
	if err := tui.Run(game, a.services(), operator, cfg); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

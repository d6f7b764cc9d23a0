package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexroute/internal/games/hexlink/levels"
	"github.com/vovakirdan/hexroute/internal/games/hexlink/levels/formats"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Inspect and validate level files",
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check that levels parse and can be solved",
	Long: `Load every level file under dir (or the built-in set) and confirm
each one is valid and solvable from any scramble.

Examples:
  hexroute levels validate
  hexroute levels validate ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevelsValidate,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsShow,
}

func init() {
	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsShowCmd)
}

func runLevelsValidate(_ *cobra.Command, args []string) error {
	loader := levels.Builtin()
	if len(args) == 1 {
		loader = levels.NewLoader(args[0])
	}

	all, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("cannot load levels from %s: %w", loader.Root, err)
	}
	if len(all) == 0 {
		return fmt.Errorf("no level files found in %s", loader.Root)
	}

	failed := 0
	for _, lvl := range all {
		if err := levels.Check(lvl); err != nil {
			failed++
			fmt.Printf("  FAIL  %-12s  %v\n", lvl.ID, err)
			continue
		}
		fmt.Printf("  ok    %-12s  %d nodes\n", lvl.ID, len(lvl.Layout.Tiles))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed", failed, len(all))
	}
	return nil
}

func runLevelsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lvl, err := levels.Resolve(cfg.Puzzle.LevelsDir, args[0])
	if errors.Is(err, levels.ErrNotFound) {
		return fmt.Errorf("unknown level %q\nRun 'hexroute list' to see available levels", args[0])
	}
	if err != nil {
		return err
	}

	data, err := formats.MarshalYAML(lvl.Layout, lvl.Description)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

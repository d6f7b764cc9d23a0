package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexroute/internal/games/hexlink/levels"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the core grid, levels from --level-dir and the built-in levels.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	all, err := levels.All(cfg.Puzzle.LevelsDir)
	if err != nil {
		return fmt.Errorf("cannot load levels: %w", err)
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range all {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %5s  %s\n", maxIDLen, "ID", "Nodes", "Name")
	fmt.Printf("  %-*s  %5s  %s\n", maxIDLen, "--", "-----", "----")
	for _, lvl := range all {
		fmt.Printf("  %-*s  %5d  %s\n", maxIDLen, lvl.ID, len(lvl.Layout.Tiles), lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'hexroute play <id>' to play a level.")
	return nil
}

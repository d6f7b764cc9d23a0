// hexroute is a hexagonal signal-routing puzzle played in the terminal.
//
// Usage:
//
//	hexroute list                  - List available levels
//	hexroute play [level]          - Play a level
//	hexroute menu                  - Start the interactive session
//	hexroute serve                 - Start SSH server for remote play
//	hexroute scores [level]        - Show the leaderboard or a level's runs
//	hexroute leaderboard serve     - Run the HTTP leaderboard
//	hexroute leaderboard watch     - Follow new leaderboard entries
//	hexroute levels validate <dir> - Check level files
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible scrambles
//	--db <path>          - Set database path (default: ~/.hexroute/hexroute.db)
//	--config <path>      - Use a specific config file
//	--difficulty <name>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/hexroute/internal/games/hexlink"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagLogLevel    string
	flagDifficulty  string
	flagSound       bool
	flagLevelDir    string
	flagOperator    string
	flagRemote      string
	flagLogToStderr bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexroute",
	Short: "Data Routing - breach the core by rotating hex relays",
	Long: `Data Routing is a terminal puzzle. Rotate relay nodes on a hexagonal
grid until the signal from every source reaches the core, then unlock it.
Finished breaches are timed and posted to a leaderboard.

Available commands:
  list         - Show all available levels
  play         - Play a level directly
  menu         - Name entry, level picker and leaderboard
  serve        - Start SSH server for remote play
  scores       - Print the leaderboard
  leaderboard  - Run or follow the HTTP leaderboard
  levels       - Inspect and validate level files
  config       - Write a starter config file

Examples:
  hexroute play
  hexroute play lvl02 --difficulty fixed
  hexroute menu --sound
  hexroute serve --ssh :2222
  hexroute leaderboard serve --addr :3001`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.hexroute/hexroute.db", "Path to the local database")
	pf.StringVar(&flagConfig, "config", "", "Path to a hexroute.yaml config file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVar(&flagSound, "sound", false, "Play audio cues")
	pf.StringVar(&flagLevelDir, "level-dir", "", "Extra directory searched for level files")
	pf.StringVar(&flagOperator, "operator", "", "Operator designation (skips name entry)")
	pf.StringVar(&flagRemote, "leaderboard-url", "", "Remote leaderboard base URL")
	pf.BoolVar(&flagLogToStderr, "log-stderr", false, "Log to stderr even in interactive commands")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
}

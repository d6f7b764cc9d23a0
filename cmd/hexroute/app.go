package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexroute/internal/config"
	"github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/events"
	"github.com/vovakirdan/hexroute/internal/games/hexlink"
	"github.com/vovakirdan/hexroute/internal/leaderboard"
	"github.com/vovakirdan/hexroute/internal/platform/tui"
	"github.com/vovakirdan/hexroute/internal/sfx"
	"github.com/vovakirdan/hexroute/internal/storage"
)

// app holds everything a command shares: config, logging, storage and the
// event bus.
type app struct {
	cfg     config.HexrouteConfig
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
	bus     *events.Bus
	client  *leaderboard.Client
	stop    context.CancelFunc
}

// newApp loads configuration and opens shared services. Interactive
// commands log to ~/.hexroute/hexroute.log so the terminal stays clean.
func newApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, bus: events.NewBus(), stop: func() {}}
	a.logger = a.openLogger(interactive)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - puzzles still work
		a.logger.Warn("Could not open database", "path", flagDBPath, "error", err)
	} else {
		a.store = store
	}

	if url := cfg.Leaderboard.URL; url != "" {
		a.client = leaderboard.NewClient(url,
			leaderboard.WithHTTPClient(&http.Client{Timeout: cfg.Leaderboard.Timeout}),
			leaderboard.WithRetries(cfg.Leaderboard.Retries),
			leaderboard.WithLogger(a.logger.WithPrefix("uplink")),
		)
	}

	if cfg.Sound.Enabled {
		a.startSound()
	}
	return a, nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.HexrouteConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, preset)
	}

	flags := cmd.Flags()
	if flags.Changed("level-dir") {
		cfg.Puzzle.LevelsDir = flagLevelDir
	}
	if flags.Changed("sound") {
		cfg.Sound.Enabled = flagSound
	}
	if flags.Changed("leaderboard-url") {
		cfg.Leaderboard.URL = flagRemote
	}

	// Set level options for games before creation
	hexlink.SetLevelDir(cfg.Puzzle.LevelsDir)
	hexlink.SetScramble(cfg.Puzzle.Scramble)
	hexlink.SetStartLevel(cfg.Puzzle.Level)
	return cfg, nil
}

func (a *app) openLogger(interactive bool) *log.Logger {
	var w io.Writer = os.Stderr
	if interactive && !flagLogToStderr {
		w = io.Discard
		if home, err := os.UserHomeDir(); err == nil {
			dir := filepath.Join(home, ".hexroute")
			if err := os.MkdirAll(dir, 0o755); err == nil {
				f, err := os.OpenFile(filepath.Join(dir, "hexroute.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err == nil {
					a.logFile = f
					w = f
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "hexroute",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("Unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// startSound plays cues for bus events. A missing audio device only
// silences the cues.
func (a *app) startSound() {
	out, err := sfx.OpenSpeaker()
	if err != nil {
		a.logger.Warn("Audio unavailable, continuing silently", "error", err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel

	player := sfx.NewPlayer(out, a.cfg.Sound.Volume, a.logger.WithPrefix("sfx"))
	go player.Run(ctx, a.bus.Subscribe(events.DefaultBuffer))
}

// services bundles the shared dependencies for TUI screens.
func (a *app) services() tui.Services {
	return tui.Services{
		Store:    a.store,
		Client:   a.client,
		Recorder: tui.NewRecorder(a.store, a.client, a.logger.WithPrefix("recorder")),
		Bus:      a.bus,
		LevelDir: a.cfg.Puzzle.LevelsDir,
		Logger:   a.logger,
	}
}

// runtimeConfig sizes the game to the current terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func (a *app) close() {
	a.stop()
	if a.store != nil {
		a.store.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// operatorSuggestion prefills name entry from the login name.
func operatorSuggestion() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}

// requireStore fails commands that cannot work without the database.
func (a *app) requireStore() error {
	if a.store == nil {
		return fmt.Errorf("database %s is unavailable", flagDBPath)
	}
	return nil
}

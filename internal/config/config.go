// Package config provides YAML-based configuration loading and difficulty
// presets for hexroute.
package config

import "time"

// HexrouteConfig contains all runtime configuration.
type HexrouteConfig struct {
	Puzzle      PuzzleConfig      `yaml:"puzzle"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Server      ServerConfig      `yaml:"server"`
	Sound       SoundConfig       `yaml:"sound"`
}

// PuzzleConfig selects what is played.
type PuzzleConfig struct {
	Level     string `yaml:"level"`      // Start level id; empty means the core grid
	LevelsDir string `yaml:"levels_dir"` // Extra directory searched for level files
	Scramble  bool   `yaml:"scramble"`   // Randomize rotations at the start of a run
}

// LeaderboardConfig describes the remote leaderboard.
type LeaderboardConfig struct {
	URL     string        `yaml:"url"` // Empty disables remote submission
	Retries int           `yaml:"retries"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig holds listen addresses for the serve commands.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	SSHAddr  string `yaml:"ssh_addr"`
	HostKey  string `yaml:"host_key"`
}

// SoundConfig controls audio cues.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// Normalize clamps out-of-range values to usable ones.
func (c *HexrouteConfig) Normalize() {
	def := DefaultConfig()
	if c.Leaderboard.Retries < 0 {
		c.Leaderboard.Retries = 0
	}
	if c.Leaderboard.Timeout <= 0 {
		c.Leaderboard.Timeout = def.Leaderboard.Timeout
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = def.Server.HTTPAddr
	}
	if c.Server.SSHAddr == "" {
		c.Server.SSHAddr = def.Server.SSHAddr
	}
	if c.Server.HostKey == "" {
		c.Server.HostKey = def.Server.HostKey
	}
	c.Sound.Volume = clampF(c.Sound.Volume, 0, 1)
}

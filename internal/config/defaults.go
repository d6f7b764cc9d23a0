package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/hexroute.yaml
var defaultHexrouteYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() HexrouteConfig {
	return HexrouteConfig{
		Puzzle: PuzzleConfig{
			Level:    "",
			Scramble: true,
		},
		Leaderboard: LeaderboardConfig{
			URL:     "",
			Retries: 2,
			Timeout: 5 * time.Second,
		},
		Server: ServerConfig{
			HTTPAddr: ":3001",
			SSHAddr:  ":23234",
			HostKey:  ".ssh/hexroute_ed25519",
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  0.5,
		},
	}
}

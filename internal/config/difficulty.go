package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. An empty name is DifficultyNormal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// LevelForPreset returns the start level of a preset. The core grid is "".
func LevelForPreset(preset DifficultyPreset) string {
	switch preset {
	case DifficultyEasy:
		return "lvl01"
	case DifficultyNormal:
		return "lvl02"
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables scrambling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset. An explicit
// level already in the config is kept.
func ApplyPreset(cfg *HexrouteConfig, preset DifficultyPreset) {
	cfg.Puzzle.Scramble = !IsFixedPreset(preset)
	if cfg.Puzzle.Level == "" {
		cfg.Puzzle.Level = LevelForPreset(preset)
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

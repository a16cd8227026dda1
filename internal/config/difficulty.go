package config

import "fmt"

// Presets lists the accepted --difficulty values in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyRainPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyRainPreset(cfg *RainConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Round.SpeedStep = 0.2
		cfg.Round.TimeLimit = 90
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Round.SpeedStep = 0.4
		cfg.Round.TimeLimit = 45
	case DifficultyFixed:
		cfg.Round.SpeedStep = 0
	}
}

// SpeedMultiplier returns the per-round speed ramp for a config.
// Rounds below 1 are treated as round 1.
func (r RoundConfig) SpeedMultiplier(round int) float64 {
	round = max(round, 1)
	return min(1+float64(round-1)*r.SpeedStep, r.MaxSpeedMultiplier)
}

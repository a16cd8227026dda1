package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "rain.yaml"

// Environment variables consulted by the CLI.
const (
	EnvConfig = "RAIN_CONFIG"
	EnvDB     = "RAIN_DB"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LoadRain loads Makeup Rain configuration.
// Search order: customPath -> ~/.arcade/configs/rain.yaml -> ./configs/rain.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadRain(customPath string) (RainConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RainConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parseRain(data)
		if err != nil {
			return RainConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRain(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parseRain(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseRain(defaultRainYAML)
	if err != nil {
		return DefaultRainConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseRain decodes YAML over the hardcoded defaults and validates the result.
func parseRain(data []byte) (RainConfig, error) {
	cfg := DefaultRainConfig()
	// Maps merge on decode, so thresholds from the file must replace the defaults.
	cfg.Score.ComboMultipliers = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RainConfig{}, err
	}
	if cfg.Score.ComboMultipliers == nil {
		cfg.Score.ComboMultipliers = DefaultRainConfig().Score.ComboMultipliers
	}
	if err := cfg.Validate(); err != nil {
		return RainConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate rejects configurations the simulation cannot run with.
func (c RainConfig) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive")
	check(c.World.CellWidth > 0 && c.World.CellHeight > 0, "world cell size must be positive")
	check(c.Player.Speed > 0, "player speed must be positive")
	check(c.Player.Lives > 0, "player lives must be at least 1")
	check(c.Player.DeathFrames > 0, "player death_frames must be positive")
	check(c.Enemy.MinSpeed > 0 && c.Enemy.MaxSpeed >= c.Enemy.MinSpeed, "enemy speed range is invalid")
	check(c.Collectible.MinSpeed > 0 && c.Collectible.MaxSpeed >= c.Collectible.MinSpeed, "collectible speed range is invalid")
	check(c.Collectible.Points >= 0, "collectible points must not be negative")

	check(len(c.Round.ItemsSequence) > 0, "round items_sequence must not be empty")
	for i, goal := range c.Round.ItemsSequence {
		if goal <= 0 {
			errs = append(errs, fmt.Errorf("round items_sequence[%d] must be positive", i))
		}
		if i > 0 && goal < c.Round.ItemsSequence[i-1] {
			errs = append(errs, fmt.Errorf("round items_sequence must be non-decreasing at index %d", i))
		}
	}
	check(c.Round.ItemsIncrement >= 0, "round items_increment must not be negative")
	check(c.Round.SpeedStep >= 0, "round speed_step must not be negative")
	check(c.Round.MaxSpeedMultiplier >= 1, "round max_speed_multiplier must be at least 1")
	check(c.Round.MinEnemySpawnFrames > 0 && c.Round.MinCollectibleFrames > 0, "round spawn interval floors must be positive")
	check(c.Round.TransitionFrames >= 0, "round transition_frames must not be negative")

	for threshold, mult := range c.Score.ComboMultipliers {
		if threshold <= 0 || mult < 1 {
			errs = append(errs, fmt.Errorf("score combo multiplier %d: %v is invalid", threshold, mult))
		}
	}
	thresholds := make([]int, 0, len(c.Score.ComboMultipliers))
	for threshold := range c.Score.ComboMultipliers {
		thresholds = append(thresholds, threshold)
	}
	slices.Sort(thresholds)
	for i := 1; i < len(thresholds); i++ {
		if c.Score.ComboMultipliers[thresholds[i]] < c.Score.ComboMultipliers[thresholds[i-1]] {
			errs = append(errs, fmt.Errorf("score combo multiplier at %d must not be lower than at %d", thresholds[i], thresholds[i-1]))
		}
	}
	check(c.Score.ComboWindowMs > 0, "score combo_window_ms must be positive")

	check(c.Particles.Max >= 0, "particles max must not be negative")
	check(c.Particles.MinLifetime > 0 && c.Particles.MaxLifetime >= c.Particles.MinLifetime, "particle lifetime range is invalid")
	check(c.Particles.MinSize > 0 && c.Particles.MaxSize >= c.Particles.MinSize, "particle size range is invalid")

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio volume must be within [0, 1]")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid rain config: %w", errors.Join(errs...))
	}
	return nil
}

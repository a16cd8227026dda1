// Package config provides YAML-based game configuration loading and
// difficulty presets for Makeup Rain.
package config

// RainConfig contains all tunables for a Makeup Rain run.
// Distances are world units on an 800x600 logical playfield; frame counts
// assume 60 ticks per second and are rescaled by the simulation.
type RainConfig struct {
	World       WorldConfig       `yaml:"world"`
	Player      PlayerConfig      `yaml:"player"`
	Enemy       EnemyConfig       `yaml:"enemy"`
	Collectible CollectibleConfig `yaml:"collectible"`
	Score       ScoreConfig       `yaml:"score"`
	Round       RoundConfig       `yaml:"round"`
	Particles   ParticleConfig    `yaml:"particles"`
	Sprites     SpriteConfig      `yaml:"sprites"`
	Audio       AudioConfig       `yaml:"audio"`
}

// WorldConfig defines the logical playfield and how it maps onto glyphs.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	CullMargin float64 `yaml:"cull_margin"` // Entities below height+margin are removed
	CellWidth  float64 `yaml:"cell_width"`  // World units per sprite glyph column
	CellHeight float64 `yaml:"cell_height"` // World units per sprite glyph row
}

// PlayerConfig defines the catcher.
type PlayerConfig struct {
	Speed          float64 `yaml:"speed"` // Units per frame
	Lives          int     `yaml:"lives"`
	InvulnerableMs int     `yaml:"invulnerable_ms"`
	DeathFrames    int     `yaml:"death_frames"` // Fully dead once the death timer exceeds this
	BlinkFrames    int     `yaml:"blink_frames"`
	BottomMargin   float64 `yaml:"bottom_margin"`
}

// EnemyConfig defines falling obstacles.
type EnemyConfig struct {
	MinSpeed     float64 `yaml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	InitialCount int     `yaml:"initial_count"`
	Rotation     float64 `yaml:"rotation"`  // Max degrees per frame either way
	SpawnTop     float64 `yaml:"spawn_top"` // Spawn band starts this far above the top edge
}

// CollectibleConfig defines falling makeup items.
type CollectibleConfig struct {
	MinSpeed     float64 `yaml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	InitialCount int     `yaml:"initial_count"`
	Points       int     `yaml:"points"`
	SpawnTop     float64 `yaml:"spawn_top"`
	DriftSpeed   float64 `yaml:"drift_speed"` // Peak horizontal drift in units per frame
	DriftStep    float64 `yaml:"drift_step"`  // Drift phase advance, degrees per frame
	PulseStep    float64 `yaml:"pulse_step"`  // Alpha pulse advance, degrees per frame
	PulseDepth   int     `yaml:"pulse_depth"`
}

// ScoreConfig defines combo and floating text behavior.
type ScoreConfig struct {
	ComboWindowMs     int             `yaml:"combo_window_ms"`
	ComboMultipliers  map[int]float64 `yaml:"combo_multipliers"`
	ComboBannerEvery  int             `yaml:"combo_banner_every"`
	TextLifetime      int             `yaml:"text_lifetime"`
	ComboTextLifetime int             `yaml:"combo_text_lifetime"`
}

// RoundConfig defines round goals and per-round difficulty scaling.
type RoundConfig struct {
	ItemsSequence          []int   `yaml:"items_sequence"`
	ItemsIncrement         int     `yaml:"items_increment"`
	TimeLimit              float64 `yaml:"time_limit"` // Seconds, 0 disables
	SpeedStep              float64 `yaml:"speed_step"`
	MaxSpeedMultiplier     float64 `yaml:"max_speed_multiplier"`
	EnemyIncrease          int     `yaml:"enemy_increase"`
	CollectibleIncrease    int     `yaml:"collectible_increase"`
	EnemyCapBase           int     `yaml:"enemy_cap_base"`
	CollectibleCapBase     int     `yaml:"collectible_cap_base"`
	CollectibleCapStep     int     `yaml:"collectible_cap_step"`
	EnemySpawnFrames       int     `yaml:"enemy_spawn_frames"`
	CollectibleSpawnFrames int     `yaml:"collectible_spawn_frames"`
	MinEnemySpawnFrames    int     `yaml:"min_enemy_spawn_frames"`
	MinCollectibleFrames   int     `yaml:"min_collectible_spawn_frames"`
	ClearBonus             int     `yaml:"clear_bonus"`
	TimeBonusPerSecond     int     `yaml:"time_bonus_per_second"`
	TransitionFrames       int     `yaml:"transition_frames"`
}

// ParticleConfig defines decorative bursts.
type ParticleConfig struct {
	Max          int     `yaml:"max"`
	CollectBurst int     `yaml:"collect_burst"`
	DamageBurst  int     `yaml:"damage_burst"`
	DeathBurst   int     `yaml:"death_burst"`
	MinSpeed     float64 `yaml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	MinKick      float64 `yaml:"min_kick"`
	MaxKick      float64 `yaml:"max_kick"`
	Gravity      float64 `yaml:"gravity"`
	MinLifetime  int     `yaml:"min_lifetime"`
	MaxLifetime  int     `yaml:"max_lifetime"`
	MinSize      int     `yaml:"min_size"`
	MaxSize      int     `yaml:"max_size"`
}

// SpriteConfig holds ASCII art for every drawable entity.
type SpriteConfig struct {
	Player      []string `yaml:"player"`
	Enemy       []string `yaml:"enemy"`
	Collectible []string `yaml:"collectible"`
	Life        string   `yaml:"life"`
}

// AudioConfig defines background music.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	File       string  `yaml:"file"` // wav or mp3, empty uses the synthesized loop
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

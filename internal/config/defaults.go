package config

import (
	_ "embed"
)

//go:embed defaults/rain.yaml
var defaultRainYAML []byte

// DefaultRainConfig returns the default Makeup Rain configuration.
func DefaultRainConfig() RainConfig {
	return RainConfig{
		World: WorldConfig{
			Width:      800,
			Height:     600,
			CullMargin: 100,
			CellWidth:  10,
			CellHeight: 25,
		},
		Player: PlayerConfig{
			Speed:          5.5,
			Lives:          3,
			InvulnerableMs: 1000,
			DeathFrames:    30,
			BlinkFrames:    5,
			BottomMargin:   20,
		},
		Enemy: EnemyConfig{
			MinSpeed:     1.5,
			MaxSpeed:     2.8,
			InitialCount: 8,
			Rotation:     2,
			SpawnTop:     500,
		},
		Collectible: CollectibleConfig{
			MinSpeed:     1.2,
			MaxSpeed:     2.2,
			InitialCount: 20,
			Points:       50,
			SpawnTop:     800,
			DriftSpeed:   0.6,
			DriftStep:    1,
			PulseStep:    5,
			PulseDepth:   30,
		},
		Score: ScoreConfig{
			ComboWindowMs:     2000,
			ComboMultipliers:  map[int]float64{3: 1.5, 5: 2.0, 10: 3.0},
			ComboBannerEvery:  5,
			TextLifetime:      60,
			ComboTextLifetime: 90,
		},
		Round: RoundConfig{
			ItemsSequence:          []int{10, 15, 25, 35, 50},
			ItemsIncrement:         15,
			TimeLimit:              60,
			SpeedStep:              0.3,
			MaxSpeedMultiplier:     3.0,
			EnemyIncrease:          3,
			CollectibleIncrease:    6,
			EnemyCapBase:           8,
			CollectibleCapBase:     10,
			CollectibleCapStep:     2,
			EnemySpawnFrames:       45,
			CollectibleSpawnFrames: 30,
			MinEnemySpawnFrames:    10,
			MinCollectibleFrames:   8,
			ClearBonus:             500,
			TimeBonusPerSecond:     10,
			TransitionFrames:       120,
		},
		Particles: ParticleConfig{
			Max:          100,
			CollectBurst: 20,
			DamageBurst:  25,
			DeathBurst:   50,
			MinSpeed:     2,
			MaxSpeed:     6,
			MinKick:      1,
			MaxKick:      3,
			Gravity:      0.2,
			MinLifetime:  30,
			MaxLifetime:  60,
			MinSize:      2,
			MaxSize:      5,
		},
		Sprites: SpriteConfig{
			Player: []string{
				`\=====/`,
				` \___/ `,
			},
			Enemy: []string{
				`.|.`,
				`'|'`,
				` | `,
			},
			Collectible: []string{
				`<>`,
				`[]`,
			},
			Life: "♥",
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.6,
			SampleRate: 44100,
		},
	}
}

// DefaultYAML returns the embedded default YAML, used by `rain config`.
func DefaultYAML() []byte {
	return defaultRainYAML
}

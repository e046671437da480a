package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration, used when the embedded
// YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Size: 4,
		},
		Spawn: SpawnConfig{
			FourProbability: 0.10,
			InitialTiles:    2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				MaxFourProbability: 0.25,
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

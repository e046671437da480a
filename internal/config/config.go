// Package config provides YAML-based configuration loading and difficulty
// management for the 2048 game.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config contains all configuration for the 2048 game.
type Config struct {
	Board      BoardConfig      `yaml:"board"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Log        LogConfig        `yaml:"log"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// SpawnConfig defines how new tiles appear.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"`
	InitialTiles    int     `yaml:"initial_tiles"`
}

// DifficultyConfig defines how the spawn odds harden during endless play.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty progression.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines what changes at max difficulty.
type ScalingConfig struct {
	MaxFourProbability float64 `yaml:"max_four_probability"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Board.Size < 2 {
		return fmt.Errorf("%w: board.size must be at least 2, got %d", ErrInvalidConfig, c.Board.Size)
	}
	if c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1 {
		return fmt.Errorf("%w: spawn.four_probability must be in [0, 1], got %g", ErrInvalidConfig, c.Spawn.FourProbability)
	}
	if c.Spawn.InitialTiles < 0 || c.Spawn.InitialTiles > c.Board.Size*c.Board.Size {
		return fmt.Errorf("%w: spawn.initial_tiles must be in [0, %d], got %d",
			ErrInvalidConfig, c.Board.Size*c.Board.Size, c.Spawn.InitialTiles)
	}
	if p := c.Difficulty.Scaling.MaxFourProbability; p < 0 || p > 1 {
		return fmt.Errorf("%w: difficulty.scaling.max_four_probability must be in [0, 1], got %g", ErrInvalidConfig, p)
	}
	switch c.Difficulty.Progression.Type {
	case "", "score", "moves", "none":
	default:
		return fmt.Errorf("%w: unknown difficulty.progression.type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty input yields "".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty preset %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

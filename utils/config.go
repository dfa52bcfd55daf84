package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	SeedDefault = "default"
	SeedEmpty   = "empty"
	SeedRandom  = "random"
)

// PatternPlacement anchors a named pattern at a cell.
type PatternPlacement struct {
	Name   string `json:"name"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// Config holds the configuration for the game
type Config struct {
	Width               int                `json:"width"`
	Height              int                `json:"height"`
	FrameRate           time.Duration      `json:"frame_rate"`
	MaxGenerations      int                `json:"max_generations"`
	Seed                string             `json:"seed"`
	RandomSeed          int64              `json:"random_seed"`
	RandomDensity       float64            `json:"random_density"`
	Patterns            []PatternPlacement `json:"patterns"`
	StagnationThreshold int                `json:"stagnation_threshold"`
	UseMemoryPool       bool               `json:"use_memory_pool"`
	Runs                int                `json:"runs"`
	Trace               bool               `json:"trace"`
}

// DefaultConfig returns the 64x64 board with the default seed pattern
func DefaultConfig() Config {
	return Config{
		Width:               64,
		Height:              64,
		FrameRate:           100 * time.Millisecond,
		MaxGenerations:      0,
		Seed:                SeedDefault,
		RandomSeed:          1,
		RandomDensity:       0.15,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		Runs:                1,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate reports the first setting that cannot produce a runnable game.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.FrameRate < 0:
		return errors.Errorf("frame_rate must not be negative, got %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Errorf("max_generations must not be negative, got %d", c.MaxGenerations)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.Runs < 1:
		return errors.Errorf("runs must be at least 1, got %d", c.Runs)
	}

	switch c.Seed {
	case SeedDefault, SeedEmpty, SeedRandom:
	default:
		return errors.Errorf("unknown seed %q", c.Seed)
	}
	return nil
}

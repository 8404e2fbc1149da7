// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the compliance estimator:
// preset mode, target volume, iteration budget and seed. It is built once at
// startup (defaults, then an optional YAML file, then explicit CLI flags) and
// treated as read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cardiocomp/minimize"
	"github.com/katalvlaran/cardiocomp/model"
)

// Defaults.
const (
	DefaultMode   = model.Healthy
	DefaultVolume = 5.0
)

// ErrInvalidConfig marks a configuration value outside its domain.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Run configures one estimation run.
type Run struct {
	// Mode selects a preset; see model.Modes.
	Mode string `yaml:"mode"`
	// Volume is the target total blood volume.
	Volume float64 `yaml:"volume"`
	// Iterations is the minimizer budget.
	Iterations int `yaml:"iterations"`
	// Seed drives the random start. 0 lets the driver pick one.
	Seed int64 `yaml:"seed,omitempty"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Run {
	return &Run{
		Mode:       DefaultMode,
		Volume:     DefaultVolume,
		Iterations: minimize.DefaultIterations,
	}
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (*Run, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Run) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks every field. An unknown mode is reported as
// model.ErrUnknownMode so callers can stop before any simulation work.
func (c *Run) Validate() error {
	if _, err := model.Lookup(c.Mode); err != nil {
		return err
	}
	if !(c.Volume > 0) || math.IsInf(c.Volume, 1) {
		return fmt.Errorf("%w: volume must be positive and finite, got %v", ErrInvalidConfig, c.Volume)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}

	return nil
}

// Model resolves the preset and returns the Model Builder input.
func (c *Run) Model() (model.Config, error) {
	p, err := model.Lookup(c.Mode)
	if err != nil {
		return model.Config{}, err
	}

	return model.Config{Preset: p, Volume: c.Volume}, nil
}

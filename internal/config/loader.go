package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure reported by LoadBowling.
var ErrInvalidConfig = errors.New("invalid bowling config")

// LoadBowling reads the bowling configuration. An explicit customPath must
// exist and be valid. Otherwise the first readable, valid file among
// ~/.bowling/configs/bowling.yaml and ./configs/bowling.yaml wins, then the
// embedded defaults. Keys a file leaves out keep their default values.
func LoadBowling(customPath string) (BowlingConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBowlingConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBowling(data)
		if err != nil {
			return DefaultBowlingConfig(), fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBowling(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseBowling(defaultBowlingYAML); err == nil {
		return cfg, nil
	}
	return DefaultBowlingConfig(), nil
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".bowling", "configs", "bowling.yaml"))
	}
	return append(paths, filepath.Join("configs", "bowling.yaml"))
}

// parseBowling overlays YAML onto the defaults and validates the result.
func parseBowling(data []byte) (BowlingConfig, error) {
	cfg := DefaultBowlingConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the ranges the game relies on.
func (c BowlingConfig) Validate() error {
	m, s := c.Meter, c.Difficulty.Scaling
	switch {
	case c.CPU.ThinkTicks < 0:
		return fmt.Errorf("%w: cpu.think_ticks is negative", ErrInvalidConfig)
	case m.CycleTicks < 2:
		return fmt.Errorf("%w: meter.cycle_ticks must be at least 2", ErrInvalidConfig)
	case m.OptimalMin < 0 || m.OptimalMax > 1 || m.OptimalMin > m.OptimalMax:
		return fmt.Errorf("%w: meter window [%.2f, %.2f] must lie in [0, 1]", ErrInvalidConfig, m.OptimalMin, m.OptimalMax)
	case s.MinSkill < 0 || s.MaxSkill > 1 || s.MinSkill > s.MaxSkill:
		return fmt.Errorf("%w: skill range [%.2f, %.2f] must lie in [0, 1]", ErrInvalidConfig, s.MinSkill, s.MaxSkill)
	}
	return nil
}

// ApplyBowlingPreset sets the CPU's starting level and the power meter's
// speed and window for a preset. The fixed preset keeps the meter and
// turns progression off.
func ApplyBowlingPreset(cfg *BowlingConfig, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)
	if cfg.Difficulty.Enabled {
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
	if m, ok := presetMeters[preset]; ok {
		cfg.Meter = m
	}
}

var presetMeters = map[DifficultyPreset]MeterConfig{
	DifficultyEasy:   {CycleTicks: 75, OptimalMin: 0.3, OptimalMax: 1.0},
	DifficultyNormal: {CycleTicks: 45, OptimalMin: 0.5, OptimalMax: 0.85},
	DifficultyHard:   {CycleTicks: 30, OptimalMin: 0.6, OptimalMax: 0.75},
}

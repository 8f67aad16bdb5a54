package config

import (
	_ "embed"
)

//go:embed defaults/bowling.yaml
var defaultBowlingYAML []byte

// DefaultBowlingConfig returns the default bowling configuration.
func DefaultBowlingConfig() BowlingConfig {
	return BowlingConfig{
		Player: PlayerConfig{
			Name: "Player",
		},
		CPU: CPUConfig{
			Name:       "CPU",
			ThinkTicks: 20,
		},
		Meter: MeterConfig{
			CycleTicks: 45,
			OptimalMin: 0.5,
			OptimalMax: 0.85,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "frame",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				MinSkill: 0.35,
				MaxSkill: 0.9,
			},
		},
	}
}

package config

import "math"

// DifficultyManager turns a DifficultyConfig into the CPU bowler's accuracy
// for each frame. Progression "frame" ramps the level from initial_level in
// frame 1 to 1.0 at frame max_at; any other type keeps it flat.
type DifficultyManager struct {
	start float64
	ramp  bool
	maxAt int
	skill ScalingConfig
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		start: unit(cfg.InitialLevel),
		ramp:  cfg.Enabled && cfg.Progression.Type == "frame",
		maxAt: max(cfg.Progression.MaxAt, 2),
		skill: cfg.Scaling,
	}
}

// IsEnabled reports whether the level changes during a game.
func (d *DifficultyManager) IsEnabled() bool {
	return d.ramp
}

// Level is the difficulty in [0, 1] for a frame numbered from 1.
func (d *DifficultyManager) Level(frame int) float64 {
	if !d.ramp {
		return d.start
	}
	t := unit(float64(frame-1) / float64(d.maxAt-1))
	return d.start + t*(1-d.start)
}

// Skill maps Level onto [min_skill, max_skill].
func (d *DifficultyManager) Skill(frame int) float64 {
	lo, hi := d.skill.MinSkill, d.skill.MaxSkill
	return unit(lo + d.Level(frame)*(hi-lo))
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

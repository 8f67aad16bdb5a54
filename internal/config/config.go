// Package config provides YAML-based game configuration loading and
// difficulty management for the bowling front ends.
package config

// BowlingConfig contains all configuration for the bowling game.
type BowlingConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	CPU        CPUConfig        `yaml:"cpu"`
	Meter      MeterConfig      `yaml:"meter"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines the human bowler.
type PlayerConfig struct {
	Name string `yaml:"name"`
}

// CPUConfig defines the computer opponent.
type CPUConfig struct {
	Name       string `yaml:"name"`
	ThinkTicks int    `yaml:"think_ticks"` // Ticks the CPU waits before each ball
}

// MeterConfig defines the power meter used for simulated throws.
// Power oscillates 0 -> 1 -> 0 once per cycle; releasing inside
// [OptimalMin, OptimalMax] gives a perfectly accurate throw.
type MeterConfig struct {
	CycleTicks int     `yaml:"cycle_ticks"`
	OptimalMin float64 `yaml:"optimal_min"`
	OptimalMax float64 `yaml:"optimal_max"`
}

// DifficultyConfig defines how the CPU bowler's skill progresses.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "frame" or "none"
	MaxAt int    `yaml:"max_at"` // Frame at which max difficulty is reached
}

// ScalingConfig maps difficulty level to CPU skill.
type ScalingConfig struct {
	MinSkill float64 `yaml:"min_skill"` // Skill at level 0.0
	MaxSkill float64 `yaml:"max_skill"` // Skill at level 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
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

// Package config provides YAML-based game configuration loading and
// difficulty management for the trick-shot course.
package config

// TrickshotConfig contains all configuration for the trick-shot game.
type TrickshotConfig struct {
	Physics    TrickshotPhysics `yaml:"physics"`
	Ball       TrickshotBall    `yaml:"ball"`
	Hole       TrickshotHole    `yaml:"hole"`
	Course     TrickshotCourse  `yaml:"course"`
	Shot       TrickshotShot    `yaml:"shot"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TrickshotPhysics defines resolver tuning. Speeds are squared.
type TrickshotPhysics struct {
	LinearDamping       float64 `yaml:"linear_damping"`
	RestThreshold       float64 `yaml:"rest_threshold"`
	BoostFactor         float64 `yaml:"boost_factor"`
	BoostCeiling        float64 `yaml:"boost_ceiling"`
	FrictionFactor      float64 `yaml:"friction_factor"`
	LipOutFactor        float64 `yaml:"lipout_factor"`
	CompletionThreshold float64 `yaml:"completion_threshold"`
	TimeStep            float64 `yaml:"time_step"` // seconds per tick
}

// TrickshotBall defines the ball.
type TrickshotBall struct {
	Radius float64 `yaml:"radius"`
}

// TrickshotHole defines the goal.
type TrickshotHole struct {
	Radius float64 `yaml:"radius"`
}

// TrickshotCourse defines how course files are read.
type TrickshotCourse struct {
	TileSize float64 `yaml:"tile_size"`
	Dir      string  `yaml:"dir,omitempty"` // extra stage directory; built-ins are used when empty
}

// TrickshotShot defines aiming and shooting.
type TrickshotShot struct {
	ImpulseScale   float64 `yaml:"impulse_scale"`
	MinDrag        float64 `yaml:"min_drag"` // squared drag length below which a drag is ignored
	MaxPower       float64 `yaml:"max_power"`
	PowerStep      float64 `yaml:"power_step"`
	AimStepDegrees float64 `yaml:"aim_step_degrees"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "stages" or "none"
	MaxAt int    `yaml:"max_at"` // Stages cleared at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	CompletionReduction float64 `yaml:"completion_reduction"` // Fraction of the completion threshold removed at max difficulty
	LipOutReduction     float64 `yaml:"lipout_reduction"`     // Fraction of the lip-out factor removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

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

// ParsePreset accepts a preset name; an empty name means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

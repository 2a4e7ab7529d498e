package config

import (
	_ "embed"
)

//go:embed defaults/trickshot.yaml
var defaultTrickshotYAML []byte

// DefaultTrickshotConfig returns the default trick-shot configuration.
func DefaultTrickshotConfig() TrickshotConfig {
	return TrickshotConfig{
		Physics: TrickshotPhysics{
			LinearDamping:       0.98,
			RestThreshold:       100,
			BoostFactor:         1.1,
			BoostCeiling:        1_000_000,
			FrictionFactor:      0.965,
			LipOutFactor:        0.45,
			CompletionThreshold: 10_000,
			TimeStep:            0.0167,
		},
		Ball: TrickshotBall{
			Radius: 6,
		},
		Hole: TrickshotHole{
			Radius: 10,
		},
		Course: TrickshotCourse{
			TileSize: 16,
		},
		Shot: TrickshotShot{
			ImpulseScale:   1,
			MinDrag:        550,
			MaxPower:       900,
			PowerStep:      50,
			AimStepDegrees: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "stages",
				MaxAt: 4,
			},
			Scaling: ScalingConfig{
				CompletionReduction: 0.6,
				LipOutReduction:     0.5,
			},
		},
	}
}

// DefaultTrickshotYAML returns a copy of the embedded default config file.
func DefaultTrickshotYAML() []byte {
	return append([]byte(nil), defaultTrickshotYAML...)
}

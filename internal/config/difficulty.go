package config

import (
	"math"

	"github.com/vovakirdan/mayhem/internal/physics"
)

// DifficultyManager tightens the hole as a session progresses.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) after cleared
// stages.
func (d *DifficultyManager) Level(cleared int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "stages" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(cleared)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Params returns base with the hole made stricter for the current level:
// a lower completion threshold and a harsher lip-out.
func (d *DifficultyManager) Params(base physics.Params, cleared int) physics.Params {
	level := d.Level(cleared)
	p := base
	p.CompletionThreshold *= 1.0 - level*clampF(d.cfg.Scaling.CompletionReduction, 0.0, 0.95)
	p.LipOutFactor *= 1.0 - level*clampF(d.cfg.Scaling.LipOutReduction, 0.0, 0.95)
	return p
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

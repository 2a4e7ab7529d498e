package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mayhem/internal/physics"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid value")

// Params converts the physics section into resolver parameters.
func (c TrickshotConfig) Params() physics.Params {
	return physics.Params{
		LinearDamping:       c.Physics.LinearDamping,
		RestThreshold:       c.Physics.RestThreshold,
		BoostFactor:         c.Physics.BoostFactor,
		BoostCeiling:        c.Physics.BoostCeiling,
		FrictionFactor:      c.Physics.FrictionFactor,
		LipOutFactor:        c.Physics.LipOutFactor,
		CompletionThreshold: c.Physics.CompletionThreshold,
		ImpulseScale:        c.Shot.ImpulseScale,
	}
}

// Validate checks the values the game cannot run without.
func (c TrickshotConfig) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	switch {
	case c.Physics.TimeStep <= 0:
		return fmt.Errorf("%w: physics.time_step %g must be positive", ErrInvalidConfig, c.Physics.TimeStep)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball.radius %g must be positive", ErrInvalidConfig, c.Ball.Radius)
	case c.Hole.Radius < c.Ball.Radius:
		return fmt.Errorf("%w: hole.radius %g is smaller than ball.radius %g", ErrInvalidConfig, c.Hole.Radius, c.Ball.Radius)
	case c.Course.TileSize <= 0:
		return fmt.Errorf("%w: course.tile_size %g must be positive", ErrInvalidConfig, c.Course.TileSize)
	case c.Shot.MaxPower <= 0:
		return fmt.Errorf("%w: shot.max_power %g must be positive", ErrInvalidConfig, c.Shot.MaxPower)
	case c.Shot.MinDrag < 0:
		return fmt.Errorf("%w: shot.min_drag %g is negative", ErrInvalidConfig, c.Shot.MinDrag)
	}
	return nil
}

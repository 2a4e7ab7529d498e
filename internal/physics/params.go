package physics

import "fmt"

// Params tunes the resolver. Speeds are compared squared throughout.
type Params struct {
	// LinearDamping multiplies the velocity once per tick, independent of
	// dt. Changing the time step therefore changes how far a shot rolls.
	LinearDamping float64

	// RestThreshold is the squared speed at or below which the ball stops.
	RestThreshold float64

	// BoostFactor multiplies the velocity per overlapped boost panel, but
	// only while the squared speed is below BoostCeiling. The ceiling is a
	// soft cap: one multiply can still carry the speed past it.
	BoostFactor  float64
	BoostCeiling float64

	// FrictionFactor multiplies the velocity per overlapped friction tile.
	FrictionFactor float64

	// LipOutFactor slows a ball that rolls over the goal too fast to drop.
	LipOutFactor float64

	// CompletionThreshold is the squared speed at or below which a ball
	// contained in the goal completes the stage.
	CompletionThreshold float64

	// ImpulseScale converts a drag vector into a velocity.
	ImpulseScale float64
}

// DefaultParams returns the tuning used by the trick-shot course.
func DefaultParams() Params {
	return Params{
		LinearDamping:       0.98,
		RestThreshold:       100,
		BoostFactor:         1.1,
		BoostCeiling:        1_000_000,
		FrictionFactor:      0.965,
		LipOutFactor:        0.45,
		CompletionThreshold: 10_000,
		ImpulseScale:        1,
	}
}

// Validate checks every parameter against its allowed range.
func (p Params) Validate() error {
	switch {
	case p.LinearDamping <= 0 || p.LinearDamping >= 1:
		return fmt.Errorf("%w: linear damping %g not in (0, 1)", ErrInvalidParams, p.LinearDamping)
	case p.RestThreshold < 0:
		return fmt.Errorf("%w: rest threshold %g is negative", ErrInvalidParams, p.RestThreshold)
	case p.BoostFactor <= 1:
		return fmt.Errorf("%w: boost factor %g must exceed 1", ErrInvalidParams, p.BoostFactor)
	case p.BoostCeiling <= 0:
		return fmt.Errorf("%w: boost ceiling %g must be positive", ErrInvalidParams, p.BoostCeiling)
	case p.FrictionFactor <= 0 || p.FrictionFactor >= 1:
		return fmt.Errorf("%w: friction factor %g not in (0, 1)", ErrInvalidParams, p.FrictionFactor)
	case p.LipOutFactor <= 0 || p.LipOutFactor >= 1:
		return fmt.Errorf("%w: lip-out factor %g not in (0, 1)", ErrInvalidParams, p.LipOutFactor)
	case p.CompletionThreshold < 0:
		return fmt.Errorf("%w: completion threshold %g is negative", ErrInvalidParams, p.CompletionThreshold)
	case p.ImpulseScale <= 0:
		return fmt.Errorf("%w: impulse scale %g must be positive", ErrInvalidParams, p.ImpulseScale)
	}
	return nil
}

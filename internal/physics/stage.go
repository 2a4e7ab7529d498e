package physics

import (
	"fmt"

	"github.com/vovakirdan/mayhem/internal/geom"
)

// noCopy makes `go vet` (copylocks) report value copies of the struct
// that embeds it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// StageConfig describes a stage as delivered by the map loader.
type StageConfig struct {
	Layout     *Layout   // shared, read-only colliders
	Start      geom.Vec2 // ball starting position
	BallRadius float64
	Goal       geom.Circle
	Params     Params
}

// Stage owns one ball moving through a shared Layout. It is only ever
// handled through the pointer returned by NewStage and must not be copied.
// A Stage is not safe for concurrent use; independent stages may share a
// Layout across goroutines.
type Stage struct {
	_ noCopy

	layout *Layout
	params Params
	start  geom.Vec2
	goal   geom.Circle

	ball     Ball
	canScore bool
	complete bool
	closed   bool
	strokes  int
	ticks    uint64
	events   Event
}

// NewStage validates cfg and places the ball at its starting position.
func NewStage(cfg StageConfig) (*Stage, error) {
	if cfg.Layout == nil {
		return nil, fmt.Errorf("%w: nil layout", ErrInvalidStage)
	}
	if cfg.BallRadius <= 0 {
		return nil, fmt.Errorf("%w: ball radius %g must be positive", ErrInvalidStage, cfg.BallRadius)
	}
	if !cfg.Goal.Valid() {
		return nil, fmt.Errorf("%w: goal radius %g must be positive", ErrInvalidStage, cfg.Goal.R)
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	s := &Stage{
		layout: cfg.Layout,
		params: cfg.Params,
		start:  cfg.Start,
		goal:   cfg.Goal,
	}
	s.ball.Hitbox.R = cfg.BallRadius
	s.ball.place(cfg.Start)
	return s, nil
}

// ApplyImpulse sets the ball velocity from a drag vector and arms the goal
// check. It does not wait for the ball to stop: calling it mid-roll simply
// replaces the velocity. A completed or closed stage ignores impulses.
func (s *Stage) ApplyImpulse(drag geom.Vec2) {
	if s.complete || s.closed {
		return
	}
	s.ball.Vel.Set(drag.Scale(s.params.ImpulseScale))
	s.canScore = true
	s.strokes++
}

// Tick advances the stage by one fixed step of dt seconds and reports
// whether the ball is still moving. dt must be small and constant across a
// session; there is no sub-stepping.
func (s *Stage) Tick(dt float64) MotionStatus {
	if s.complete || s.closed {
		return AtRest
	}
	s.ticks++
	s.events = 0

	s.resolveWalls(dt)
	s.applyBoosts()
	s.applyFriction()

	if s.touchesHazard() {
		s.ball.place(s.start)
		s.canScore = false
		s.events |= EventHazard | EventStopped
		return AtRest
	}

	if s.canScore && geom.CircleInCircle(s.ball.Hitbox, s.goal) {
		if s.ball.SpeedSq() <= s.params.CompletionThreshold {
			s.complete = true
			s.canScore = false
			s.ball.Vel.Zero()
			s.events |= EventHoled | EventStopped
			return AtRest
		}
		s.ball.Vel = s.ball.Vel.Scale(s.params.LipOutFactor)
		s.canScore = false
		s.events |= EventLipOut
	}

	s.integrate(dt)

	if s.ball.SpeedSq() <= s.params.RestThreshold {
		s.ball.Vel.Zero()
		s.events |= EventStopped
		return AtRest
	}
	return Moving
}

// IsComplete reports whether the ball has dropped into the goal since the
// last Reset.
func (s *Stage) IsComplete() bool {
	return s.complete
}

// Reset returns the ball to the start, stops it, and clears the stroke
// count and the goal flags.
func (s *Stage) Reset() {
	s.ball.place(s.start)
	s.canScore = false
	s.complete = false
	s.strokes = 0
	s.ticks = 0
	s.events = 0
}

// Close releases the stage's reference to its layout. A closed stage
// ignores impulses and reports AtRest from every tick.
func (s *Stage) Close() {
	s.closed = true
	s.layout = nil
}

// Ball returns the ball hitbox.
func (s *Stage) Ball() geom.Circle {
	return s.ball.Hitbox
}

// Velocity returns the ball velocity.
func (s *Stage) Velocity() geom.Vec2 {
	return s.ball.Vel
}

// Moving reports whether the ball currently has velocity.
func (s *Stage) Moving() bool {
	return !s.ball.Vel.IsZero()
}

// Goal returns the goal circle.
func (s *Stage) Goal() geom.Circle {
	return s.goal
}

// Start returns the ball starting position.
func (s *Stage) Start() geom.Vec2 {
	return s.start
}

// Layout returns the shared collider layout, or nil once closed.
func (s *Stage) Layout() *Layout {
	return s.layout
}

// Params returns the tuning in use.
func (s *Stage) Params() Params {
	return s.params
}

// Strokes returns how many impulses were applied since the last Reset.
func (s *Stage) Strokes() int {
	return s.strokes
}

// Ticks returns how many ticks ran since the last Reset.
func (s *Stage) Ticks() uint64 {
	return s.ticks
}

// Events returns what happened during the most recent tick.
func (s *Stage) Events() Event {
	return s.events
}

// Package trickshot drives one physics.Stage from platform frames: aiming,
// shooting, fixed-step ticking and drawing the course into a core.Screen.
package trickshot

import (
	"fmt"
	"math"

	"github.com/vovakirdan/mayhem/internal/config"
	"github.com/vovakirdan/mayhem/internal/core"
	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/physics"
	"github.com/vovakirdan/mayhem/internal/stage"
)

// cellDragGain converts a drag measured in stage pixels on a terminal into
// an impulse. Terminal drags cover far fewer pixels than mouse drags in a
// window.
const cellDragGain = 4.0

// Option configures a Game.
type Option func(*Game)

// WithParams overrides the resolver tuning taken from the config, e.g. with
// difficulty-adjusted values.
func WithParams(p physics.Params) Option {
	return func(g *Game) {
		g.opts.Params = p
	}
}

// Game implements the trick-shot course.
type Game struct {
	m    *stage.Map
	cfg  config.TrickshotConfig
	opts stage.BuildOptions

	stage *physics.Stage
	clock *physics.Clock

	runtime core.RuntimeConfig
	view    viewport

	aim   float64 // radians, 0 points right, y grows downward
	power float64
	ticks uint64 // physics ticks since the last reset
	shots []Shot
	quit  bool
}

// New creates a game on m. The stage is built immediately so invalid
// tuning is reported here rather than on the first frame.
func New(m *stage.Map, cfg config.TrickshotConfig, opts ...Option) (*Game, error) {
	g := &Game{
		m:   m,
		cfg: cfg,
		opts: stage.BuildOptions{
			BallRadius: cfg.Ball.Radius,
			HoleRadius: cfg.Hole.Radius,
			Params:     cfg.Params(),
		},
	}
	for _, opt := range opts {
		opt(g)
	}

	s, err := m.Build(g.opts)
	if err != nil {
		return nil, err
	}
	clock, err := physics.NewClock(cfg.Physics.TimeStep)
	if err != nil {
		return nil, fmt.Errorf("trickshot: %w", err)
	}
	g.stage = s
	g.clock = clock
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "trickshot"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Trick Shot: " + g.m.Name
}

// Map returns the course being played.
func (g *Game) Map() *stage.Map {
	return g.m
}

// Stage exposes the underlying resolver for inspection.
func (g *Game) Stage() *physics.Stage {
	return g.stage
}

// Reset puts the ball back on the tee and forgets the attempt.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.view = newViewport(g.m, rc.ScreenW, rc.ScreenH)
	g.restart()
}

func (g *Game) restart() {
	g.stage.Reset()
	g.clock.Reset()
	g.aim = 0
	g.power = g.cfg.Shot.MaxPower / 2
	g.ticks = 0
	g.shots = nil
	g.quit = false
}

// Resize adapts the view to a new screen size without touching the ball.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.view = newViewport(g.m, w, h)
}

// Step consumes one platform frame of input and runs as many fixed physics
// ticks as the frame covers.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		g.quit = true
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionRestart) || (g.stage.IsComplete() && in.Has(core.ActionConfirm)) {
		g.restart()
	}

	if g.ready() {
		g.handleAim(in)
		if in.Has(core.ActionShoot) {
			g.Shoot(g.AimVector())
		} else if in.Drag != nil {
			from := g.view.toStage(in.Drag.FromX, in.Drag.FromY)
			to := g.view.toStage(in.Drag.ToX, in.Drag.ToY)
			g.ShootDrag(from, to)
		}
	}

	n := g.clock.Advance(g.runtime.FrameSeconds(), g.tick)
	return core.StepResult{State: g.State(), Ticks: n}
}

func (g *Game) tick(dt float64) {
	g.stage.Tick(dt)
	g.ticks++
}

func (g *Game) handleAim(in core.InputFrame) {
	step := g.cfg.Shot.AimStepDegrees * math.Pi / 180
	if in.Has(core.ActionAimLeft) {
		g.aim -= step
	}
	if in.Has(core.ActionAimRight) {
		g.aim += step
	}
	g.aim = math.Remainder(g.aim, 2*math.Pi)

	if in.Has(core.ActionPowerUp) {
		g.power += g.cfg.Shot.PowerStep
	}
	if in.Has(core.ActionPowerDown) {
		g.power -= g.cfg.Shot.PowerStep
	}
	g.power = geom.Clamp(g.power, g.cfg.Shot.PowerStep, g.cfg.Shot.MaxPower)
}

// ready reports whether the player may shoot: the ball is at rest and the
// hole has not been made.
func (g *Game) ready() bool {
	return !g.stage.Moving() && !g.stage.IsComplete()
}

// Shoot strikes the ball with impulse dm. It is ignored while the ball
// rolls or after the hole is made.
func (g *Game) Shoot(dm geom.Vec2) bool {
	if !g.ready() || dm.IsZero() {
		return false
	}
	g.stage.ApplyImpulse(dm)
	g.shots = append(g.shots, Shot{Tick: g.ticks, DX: dm.X, DY: dm.Y})
	return true
}

// ShootDrag shoots like a slingshot: the ball flies from the release point
// back toward where the drag started. Drags shorter than the configured
// minimum are ignored.
func (g *Game) ShootDrag(from, to geom.Vec2) bool {
	dm := from.Sub(to).Scale(cellDragGain)
	if dm.LenSq() < g.cfg.Shot.MinDrag {
		return false
	}
	return g.Shoot(dm)
}

// Aim returns the aim angle in radians.
func (g *Game) Aim() float64 {
	return g.aim
}

// Power returns the keyboard shot power.
func (g *Game) Power() float64 {
	return g.power
}

// AimVector returns the impulse the next keyboard shot will apply.
func (g *Game) AimVector() geom.Vec2 {
	return geom.V(math.Cos(g.aim), math.Sin(g.aim)).Scale(g.power)
}

// AimPreview casts the aimed shot against the walls. The path length is
// how far the ball would roll on open floor before damping stops it.
func (g *Game) AimPreview() (physics.PathHit, bool) {
	return physics.PredictPath(g.stage.Layout(), g.stage.Ball().C, g.AimVector(), g.rollDistance())
}

func (g *Game) rollDistance() float64 {
	p := g.opts.Params
	return g.power * p.ImpulseScale * g.clock.Step() / (1 - p.LinearDamping)
}

// Shots returns the shots taken since the last reset.
func (g *Game) Shots() []Shot {
	return g.shots
}

// Ticks returns the physics ticks run since the last reset.
func (g *Game) Ticks() uint64 {
	return g.ticks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Strokes:  g.stage.Strokes(),
		Moving:   g.stage.Moving(),
		Complete: g.stage.IsComplete(),
		Quit:     g.quit,
	}
}

// Close releases the stage.
func (g *Game) Close() {
	g.stage.Close()
}

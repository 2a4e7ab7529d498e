package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mayhem/internal/geom"
)

const dt = DefaultTimeStep

// newTestStage builds a stage with the ball at start and a far-away goal
// unless one is given.
func newTestStage(t *testing.T, start geom.Vec2, radius float64, colliders ...Collider) *Stage {
	t.Helper()
	return newTestStageWithGoal(t, start, radius, geom.NewCircle(geom.V(-1000, -1000), 10), colliders...)
}

func newTestStageWithGoal(t *testing.T, start geom.Vec2, radius float64, goal geom.Circle, colliders ...Collider) *Stage {
	t.Helper()
	layout, err := NewLayout(colliders)
	require.NoError(t, err)
	s, err := NewStage(StageConfig{
		Layout:     layout,
		Start:      start,
		BallRadius: radius,
		Goal:       goal,
		Params:     DefaultParams(),
	})
	require.NoError(t, err)
	return s
}

func rollUntilRest(t *testing.T, s *Stage, maxTicks int) int {
	t.Helper()
	for i := 1; i <= maxTicks; i++ {
		if s.Tick(dt) == AtRest {
			return i
		}
	}
	t.Fatalf("ball still moving after %d ticks (vel %v)", maxTicks, s.Velocity())
	return 0
}

func TestMovingAwayFromWallDoesNotCollide(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 8, Wall(geom.V(116, 84), geom.V(132, 116)))

	s.ApplyImpulse(geom.V(-200, 0))
	status := s.Tick(dt)

	assert.Equal(t, Moving, status)
	assert.Less(t, s.Ball().C.X, 100.0)
	assert.False(t, s.Events().Has(EventBounce))
	assert.False(t, s.Events().Has(EventTunnel))
	assert.Less(t, s.Velocity().X, 0.0)
}

func TestOverlappingWallReversesVelocity(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 8, Wall(geom.V(108, 84), geom.V(124, 116)))

	s.ApplyImpulse(geom.V(200, 0))
	s.Tick(dt)

	assert.True(t, s.Events().Has(EventBounce))
	assert.Less(t, s.Ball().C.X, 100.0)
	// Reversed to -200, then damped once by integration.
	assert.InDelta(t, -200*DefaultParams().LinearDamping, s.Velocity().X, 1e-9)
	assert.InDelta(t, 0, s.Velocity().Y, 1e-12)
}

func TestVerticalWallContactReversesY(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 8, Wall(geom.V(84, 108), geom.V(116, 124)))

	s.ApplyImpulse(geom.V(30, 200))
	s.Tick(dt)

	assert.True(t, s.Events().Has(EventBounce))
	assert.Greater(t, s.Velocity().X, 0.0, "x untouched")
	assert.Less(t, s.Velocity().Y, 0.0, "y reversed")
}

func TestCornerHitReversesBothAxes(t *testing.T) {
	// Ball sits diagonally off the wall's min corner, overlapping it.
	s := newTestStage(t, geom.V(105, 81), 8, Wall(geom.V(108, 84), geom.V(124, 116)))

	s.ApplyImpulse(geom.V(100, 150))
	s.Tick(dt)

	assert.True(t, s.Events().Has(EventBounce))
	assert.Less(t, s.Velocity().X, 0.0)
	assert.Less(t, s.Velocity().Y, 0.0)
}

func TestDeepContainmentUsesTravelDirection(t *testing.T) {
	wall := Wall(geom.V(108, 84), geom.V(124, 116))
	s := newTestStage(t, geom.V(100, 100), 4, wall)

	// One big step carries the center from outside the box on the left to
	// inside it; the resolver sees a zero normal on the next tick.
	s.ApplyImpulse(geom.V(600, 0))
	s.Tick(dt) // 100 -> ~110
	require.True(t, wall.Box.ContainsPoint(s.Ball().C))

	s.Tick(dt)
	assert.True(t, s.Events().Has(EventBounce))
	assert.Less(t, s.Velocity().X, 0.0, "x reversed because the ball entered through min.x")
}

func TestTunnelingGuardCatchesFastBall(t *testing.T) {
	// Thin wall; a single step jumps clean over it.
	wall := Wall(geom.V(110, 80), geom.V(112, 120))
	s := newTestStage(t, geom.V(100, 100), 2, wall)

	s.ApplyImpulse(geom.V(1500, 0))
	s.Tick(dt) // 100 -> ~125, never overlapping
	require.Greater(t, s.Ball().C.X, 112.0+2)

	s.Tick(dt)
	assert.True(t, s.Events().Has(EventTunnel))
	assert.Less(t, s.Velocity().X, 0.0)
}

func TestOnlyFirstWallResolvesPerTick(t *testing.T) {
	first := Wall(geom.V(108, 84), geom.V(124, 116))
	second := Wall(geom.V(84, 108), geom.V(116, 124))
	s := newTestStage(t, geom.V(100, 100), 8, first, second)

	s.ApplyImpulse(geom.V(200, 200))
	s.Tick(dt)

	// The first wall (to the right) fires; the second (below) is skipped.
	assert.Less(t, s.Velocity().X, 0.0)
	assert.Greater(t, s.Velocity().Y, 0.0)
}

func TestBoostPanelAcceleratesBelowCeiling(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 4, Boost(geom.V(90, 90), geom.V(110, 110)))

	s.ApplyImpulse(geom.V(100, 0))
	s.Tick(dt)

	p := DefaultParams()
	assert.True(t, s.Events().Has(EventBoost))
	assert.InDelta(t, 100*p.BoostFactor*p.LinearDamping, s.Velocity().X, 1e-9)
}

func TestBoostPanelSkipsAboveCeiling(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 4, Boost(geom.V(90, 90), geom.V(110, 110)))

	s.ApplyImpulse(geom.V(1001, 0)) // speed² just over 1e6
	s.Tick(dt)

	assert.InDelta(t, 1001*DefaultParams().LinearDamping, s.Velocity().X, 1e-9)
}

func TestBoostCeilingIsSoft(t *testing.T) {
	// Two overlapping panels: the first multiply crosses the ceiling, the
	// second is skipped, and the result is above the ceiling.
	s := newTestStage(t, geom.V(100, 100), 4,
		Boost(geom.V(90, 90), geom.V(110, 110)),
		Boost(geom.V(95, 95), geom.V(105, 105)),
	)

	s.ApplyImpulse(geom.V(990, 0))
	s.Tick(dt)

	p := DefaultParams()
	assert.InDelta(t, 990*p.BoostFactor*p.LinearDamping, s.Velocity().X, 1e-9)
}

func TestFrictionTilesStack(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 4,
		Friction(geom.V(90, 90), geom.V(110, 110)),
		Friction(geom.V(95, 95), geom.V(105, 105)),
	)

	s.ApplyImpulse(geom.V(300, 0))
	s.Tick(dt)

	p := DefaultParams()
	want := 300 * p.FrictionFactor * p.FrictionFactor * p.LinearDamping
	assert.InDelta(t, want, s.Velocity().X, 1e-9)
	assert.True(t, s.Events().Has(EventFriction))
}

func TestHazardResetsBall(t *testing.T) {
	start := geom.V(100, 100)
	s := newTestStage(t, start, 8, Hazard(geom.V(92, 92), geom.V(108, 108)))

	s.ApplyImpulse(geom.V(150, -40))
	status := s.Tick(dt)

	assert.Equal(t, AtRest, status)
	assert.Equal(t, start, s.Ball().C)
	assert.True(t, s.Velocity().IsZero())
	assert.False(t, s.IsComplete())
	assert.True(t, s.Events().Has(EventHazard))
}

func TestHazardReachedAfterRolling(t *testing.T) {
	start := geom.V(100, 100)
	s := newTestStage(t, start, 4, Hazard(geom.V(140, 90), geom.V(160, 110)))

	s.ApplyImpulse(geom.V(400, 0))
	var status MotionStatus
	for range 30 {
		status = s.Tick(dt)
		if s.Events().Has(EventHazard) {
			break
		}
	}

	require.True(t, s.Events().Has(EventHazard))
	assert.Equal(t, AtRest, status)
	assert.Equal(t, start, s.Ball().C)
	assert.False(t, s.IsComplete())
}

func TestGoalCompletesWhenSlow(t *testing.T) {
	goal := geom.NewCircle(geom.V(100, 100), 10)
	s := newTestStageWithGoal(t, geom.V(100, 100), 5, goal)

	s.ApplyImpulse(geom.V(50, 50)) // speed² 5000
	status := s.Tick(dt)

	assert.Equal(t, AtRest, status)
	assert.True(t, s.IsComplete())
	assert.True(t, s.Events().Has(EventHoled))

	pos := s.Ball().C
	vel := s.Velocity()
	assert.Equal(t, AtRest, s.Tick(dt))
	assert.True(t, s.IsComplete())
	assert.Equal(t, pos, s.Ball().C)
	assert.Equal(t, vel, s.Velocity())
}

func TestGoalLipOutWhenFast(t *testing.T) {
	goal := geom.NewCircle(geom.V(100, 100), 10)
	s := newTestStageWithGoal(t, geom.V(100, 100), 5, goal)

	s.ApplyImpulse(geom.V(200, 0)) // speed² 40000
	status := s.Tick(dt)

	p := DefaultParams()
	assert.Equal(t, Moving, status)
	assert.False(t, s.IsComplete())
	assert.True(t, s.Events().Has(EventLipOut))
	assert.InDelta(t, 200*p.LipOutFactor*p.LinearDamping, s.Velocity().X, 1e-9)

	// The can-score flag is spent: staying in the goal does not retrigger.
	s.Tick(dt)
	assert.False(t, s.Events().Has(EventLipOut))
	assert.False(t, s.IsComplete())
}

func TestGoalIgnoredWithoutImpulse(t *testing.T) {
	goal := geom.NewCircle(geom.V(100, 100), 10)
	s := newTestStageWithGoal(t, geom.V(100, 100), 5, goal)

	assert.Equal(t, AtRest, s.Tick(dt))
	assert.False(t, s.IsComplete())
}

func TestRestIsIdempotent(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 8)

	s.ApplyImpulse(geom.V(120, -60))
	rollUntilRest(t, s, 1000)

	pos := s.Ball().C
	for range 5 {
		assert.Equal(t, AtRest, s.Tick(dt))
		assert.Equal(t, pos, s.Ball().C)
		assert.True(t, s.Velocity().IsZero())
	}
}

func TestSpeedNonIncreasingWithoutBoost(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 8,
		Wall(geom.V(0, 0), geom.V(300, 16)),
		Wall(geom.V(0, 184), geom.V(300, 200)),
		Wall(geom.V(0, 0), geom.V(16, 200)),
		Wall(geom.V(284, 0), geom.V(300, 200)),
		Friction(geom.V(150, 50), geom.V(200, 150)),
	)

	s.ApplyImpulse(geom.V(500, 350))
	prev := s.Velocity().LenSq()
	for range 400 {
		s.Tick(dt)
		cur := s.Velocity().LenSq()
		assert.LessOrEqual(t, cur, prev*(1+1e-12))
		prev = cur
	}
}

func TestBallComesToRestOutsideIsolatedWall(t *testing.T) {
	wall := Wall(geom.V(200, 84), geom.V(216, 116))
	s := newTestStage(t, geom.V(100, 100), 8, wall)

	s.ApplyImpulse(geom.V(400, 0))
	rollUntilRest(t, s, 2000)

	nearest := geom.ClosestPoint(wall.Box, s.Ball().C)
	assert.GreaterOrEqual(t, nearest.DistSq(s.Ball().C), 8*8-1e-6)
	assert.Less(t, s.Ball().C.X, 200.0)
}

func TestResetRestoresStart(t *testing.T) {
	goal := geom.NewCircle(geom.V(100, 100), 10)
	s := newTestStageWithGoal(t, geom.V(100, 100), 5, goal)

	s.ApplyImpulse(geom.V(10, 10))
	s.Tick(dt)
	require.True(t, s.IsComplete())
	require.Equal(t, 1, s.Strokes())

	s.Reset()
	assert.False(t, s.IsComplete())
	assert.Equal(t, 0, s.Strokes())
	assert.Equal(t, geom.V(100, 100), s.Ball().C)
	assert.True(t, s.Velocity().IsZero())

	// can-score was cleared: resting in the goal does not complete.
	s.Tick(dt)
	assert.False(t, s.IsComplete())
}

func TestImpulseOverridesVelocityMidRoll(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 8)

	s.ApplyImpulse(geom.V(300, 0))
	s.Tick(dt)
	s.ApplyImpulse(geom.V(0, 300))

	assert.Equal(t, geom.V(0, 300), s.Velocity())
	assert.Equal(t, 2, s.Strokes())
}

func TestImpulseScale(t *testing.T) {
	layout, err := NewLayout(nil)
	require.NoError(t, err)
	p := DefaultParams()
	p.ImpulseScale = 0.5
	s, err := NewStage(StageConfig{Layout: layout, Start: geom.V(0, 0), BallRadius: 4, Goal: geom.NewCircle(geom.V(500, 500), 8), Params: p})
	require.NoError(t, err)

	s.ApplyImpulse(geom.V(100, -40))
	assert.Equal(t, geom.V(50, -20), s.Velocity())
}

func TestClosedStageIsInert(t *testing.T) {
	s := newTestStage(t, geom.V(100, 100), 8)
	s.Close()

	s.ApplyImpulse(geom.V(100, 0))
	assert.Equal(t, AtRest, s.Tick(dt))
	assert.Nil(t, s.Layout())
	assert.True(t, s.Velocity().IsZero())
}

func TestNewStageValidation(t *testing.T) {
	layout, err := NewLayout(nil)
	require.NoError(t, err)
	goal := geom.NewCircle(geom.V(0, 0), 8)

	_, err = NewStage(StageConfig{Start: geom.V(0, 0), BallRadius: 4, Goal: goal, Params: DefaultParams()})
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, err = NewStage(StageConfig{Layout: layout, BallRadius: 0, Goal: goal, Params: DefaultParams()})
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, err = NewStage(StageConfig{Layout: layout, BallRadius: 4, Params: DefaultParams()})
	assert.ErrorIs(t, err, ErrInvalidStage)

	bad := DefaultParams()
	bad.LinearDamping = 1
	_, err = NewStage(StageConfig{Layout: layout, BallRadius: 4, Goal: goal, Params: bad})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestDeterminism(t *testing.T) {
	run := func() (geom.Vec2, geom.Vec2) {
		s := newTestStage(t, geom.V(40, 40), 6,
			Wall(geom.V(0, 0), geom.V(320, 16)),
			Wall(geom.V(0, 224), geom.V(320, 240)),
			Wall(geom.V(0, 0), geom.V(16, 240)),
			Wall(geom.V(304, 0), geom.V(320, 240)),
			Wall(geom.V(144, 64), geom.V(176, 176)),
			Boost(geom.V(64, 96), geom.V(96, 128)),
			Friction(geom.V(208, 96), geom.V(256, 160)),
		)
		s.ApplyImpulse(geom.V(420, 310))
		for range 600 {
			s.Tick(dt)
		}
		return s.Ball().C, s.Velocity()
	}

	p1, v1 := run()
	p2, v2 := run()
	assert.Equal(t, p1, p2)
	assert.Equal(t, v1, v2)
}

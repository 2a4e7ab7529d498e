package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mayhem/internal/geom"
)

func TestClockAccumulates(t *testing.T) {
	c, err := NewClock(0.01)
	require.NoError(t, err)

	var steps []float64
	tick := func(dt float64) { steps = append(steps, dt) }

	assert.Equal(t, 0, c.Advance(0.005, tick))
	assert.Equal(t, 1, c.Advance(0.007, tick)) // 0.012 accumulated
	assert.Equal(t, 2, c.Advance(0.0185, tick))
	assert.Len(t, steps, 3)
	for _, s := range steps {
		assert.Equal(t, 0.01, s)
	}
}

func TestClockIgnoresNegativeFrames(t *testing.T) {
	c, err := NewClock(0.01)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Advance(-5, func(float64) {}))
	assert.Equal(t, 1, c.Advance(0.0101, func(float64) {}))
}

func TestClockCapsCatchUp(t *testing.T) {
	c, err := NewClock(0.01)
	require.NoError(t, err)

	n := c.Advance(10, func(float64) {})
	assert.Equal(t, maxStepsPerAdvance, n)
	// The backlog was dropped rather than carried.
	assert.Equal(t, 0, c.Advance(0, func(float64) {}))
}

func TestClockReset(t *testing.T) {
	c, err := NewClock(0.01)
	require.NoError(t, err)
	c.Advance(0.009, func(float64) {})
	c.Reset()
	assert.Equal(t, 0, c.Advance(0.002, func(float64) {}))
}

func TestNewClockRejectsNonPositiveStep(t *testing.T) {
	_, err := NewClock(0)
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = NewClock(-1)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestPredictPathFindsNearestWall(t *testing.T) {
	l, err := NewLayout([]Collider{
		Wall(geom.V(200, 0), geom.V(216, 200)),
		Wall(geom.V(100, 0), geom.V(116, 200)),
		Hazard(geom.V(50, 0), geom.V(60, 200)),
	})
	require.NoError(t, err)

	hit, ok := PredictPath(l, geom.V(0, 100), geom.V(1, 0), 500)
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index)
	assert.InDelta(t, 100, hit.Distance, 1e-9)
	assert.Equal(t, geom.AxisX, hit.Axis)
	assert.InDelta(t, 100, hit.Point.X, 1e-9)
}

func TestPredictPathMisses(t *testing.T) {
	l, err := NewLayout([]Collider{Wall(geom.V(100, 0), geom.V(116, 50))})
	require.NoError(t, err)

	_, ok := PredictPath(l, geom.V(0, 100), geom.V(1, 0), 500)
	assert.False(t, ok)
	_, ok = PredictPath(l, geom.V(0, 10), geom.V(1, 0), 50)
	assert.False(t, ok, "wall beyond the path length")
	_, ok = PredictPath(l, geom.V(0, 10), geom.V(0, 0), 500)
	assert.False(t, ok, "zero direction")
}

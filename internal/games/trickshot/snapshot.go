package trickshot

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Snapshot contains the observable game state for replay checks and
// determinism tests. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	BallX    float64
	BallY    float64
	VelX     float64
	VelY     float64
	Strokes  int
	Complete bool
	Aim      float64
	Power    float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	ball, vel := g.stage.Ball().C, g.stage.Velocity()
	return Snapshot{
		Tick:     g.ticks,
		BallX:    ball.X,
		BallY:    ball.Y,
		VelX:     vel.X,
		VelY:     vel.Y,
		Strokes:  g.stage.Strokes(),
		Complete: g.stage.IsComplete(),
		Aim:      g.aim,
		Power:    g.power,
	}
}

// Hash returns an xxhash digest of the snapshot. Floats are hashed by their
// bit patterns, so two runs match only if they are bit-identical.
func (snap *Snapshot) Hash() uint64 {
	var buf [8]byte
	d := xxhash.New()
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	put(snap.Tick)
	for _, f := range []float64{snap.BallX, snap.BallY, snap.VelX, snap.VelY, snap.Aim, snap.Power} {
		put(math.Float64bits(f))
	}
	put(uint64(snap.Strokes)) //#nosec G115 -- hash computation
	if snap.Complete {
		put(1)
	} else {
		put(0)
	}
	return d.Sum64()
}

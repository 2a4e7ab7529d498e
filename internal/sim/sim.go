// Package sim searches for good shots by simulating many candidate impulses
// on one course at once. Every candidate gets its own Stage; all of them
// share the course's read-only Layout.
package sim

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/physics"
	"github.com/vovakirdan/mayhem/internal/stage"
)

const (
	// DefaultMaxTicks bounds a shot that never settles, about five minutes
	// of play at 60 ticks per second.
	DefaultMaxTicks = 18000

	// ctxCheckEvery is how many ticks a candidate runs between context checks.
	ctxCheckEvery = 256
)

// ErrNoCandidates is returned when the sweep has nothing to try.
var ErrNoCandidates = errors.New("sim: no candidate shots")

// Candidate is one shot from the tee: a direction in degrees (0 points
// right, y grows downward) and an impulse length.
type Candidate struct {
	Angle float64
	Power float64
}

// Impulse returns the drag vector for the candidate.
func (c Candidate) Impulse() geom.Vec2 {
	rad := c.Angle * math.Pi / 180
	return geom.V(math.Cos(rad), math.Sin(rad)).Scale(c.Power)
}

// Result is the outcome of one simulated shot.
type Result struct {
	Candidate
	Holed   bool
	Hazard  bool // the ball was sent back to the tee
	Bounces int
	Ticks   uint64
	Final   geom.Vec2
}

// SweepConfig describes a grid search over angles and powers.
type SweepConfig struct {
	Map      *stage.Map
	Options  stage.BuildOptions
	TimeStep float64
	Angles   []float64
	Powers   []float64
	MaxTicks int
	Workers  int // defaults to GOMAXPROCS
}

// Range returns from, from+step, ... up to and including to.
func Range(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return nil
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

// Candidates returns the cross product of angles and powers.
func Candidates(angles, powers []float64) []Candidate {
	out := make([]Candidate, 0, len(angles)*len(powers))
	for _, a := range angles {
		for _, p := range powers {
			out = append(out, Candidate{Angle: a, Power: p})
		}
	}
	return out
}

// Sweep simulates every candidate concurrently and returns the results,
// holes first and then by fewest ticks. It stops early when ctx is done.
func Sweep(ctx context.Context, cfg SweepConfig, logger *log.Logger) ([]Result, error) {
	cands := Candidates(cfg.Angles, cfg.Powers)
	if len(cands) == 0 {
		return nil, ErrNoCandidates
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	started := time.Now()
	results := make([]Result, len(cands))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cands {
		g.Go(func() error {
			r, err := Simulate(ctx, cfg.Map, cfg.Options, c, cfg.TimeStep, cfg.MaxTicks)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, compareResults)
	if logger != nil {
		holed := 0
		for _, r := range results {
			if r.Holed {
				holed++
			}
		}
		logger.Debug("sweep finished",
			"stage", cfg.Map.ID,
			"candidates", len(cands),
			"holed", holed,
			"workers", workers,
			"elapsed", time.Since(started))
	}
	return results, nil
}

func compareResults(a, b Result) int {
	if a.Holed != b.Holed {
		if a.Holed {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(a.Ticks, b.Ticks),
		cmp.Compare(a.Power, b.Power),
		cmp.Compare(a.Angle, b.Angle),
	)
}

// Simulate plays a single shot from the tee until the ball rests, drops or
// maxTicks runs out.
func Simulate(ctx context.Context, m *stage.Map, opts stage.BuildOptions, c Candidate, dt float64, maxTicks int) (Result, error) {
	if dt <= 0 {
		return Result{}, fmt.Errorf("%w: time step %g must be positive", physics.ErrInvalidParams, dt)
	}
	s, err := m.Build(opts)
	if err != nil {
		return Result{}, err
	}
	defer s.Close()

	res := Result{Candidate: c}
	s.ApplyImpulse(c.Impulse())
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	for res.Ticks < uint64(maxTicks) {
		if res.Ticks%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		status := s.Tick(dt)
		res.Ticks++
		ev := s.Events()
		if ev.Has(physics.EventBounce) || ev.Has(physics.EventTunnel) {
			res.Bounces++
		}
		if ev.Has(physics.EventHazard) {
			res.Hazard = true
		}
		if status == physics.AtRest {
			break
		}
	}
	res.Holed = s.IsComplete()
	res.Final = s.Ball().C
	return res, nil
}

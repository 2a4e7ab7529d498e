package trickshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/physics"
	"github.com/vovakirdan/mayhem/internal/stage"
)

// replayVersion is bumped when the encoded layout changes.
const replayVersion = 1

// ErrStageMismatch is returned when a replay is run on a course whose
// colliders differ from the one it was recorded on.
var ErrStageMismatch = errors.New("trickshot: replay recorded on a different stage")

// Shot is one impulse, applied before physics tick Tick+1.
type Shot struct {
	Tick uint64  `msgpack:"t"`
	DX   float64 `msgpack:"dx"`
	DY   float64 `msgpack:"dy"`
}

// Replay is everything needed to re-simulate an attempt.
type Replay struct {
	Version     int            `msgpack:"v"`
	ID          string         `msgpack:"id"`
	StageID     string         `msgpack:"stage"`
	Fingerprint uint64         `msgpack:"fp"`
	TimeStep    float64        `msgpack:"dt"`
	BallRadius  float64        `msgpack:"ball_r"`
	HoleRadius  float64        `msgpack:"hole_r"`
	Params      physics.Params `msgpack:"params"`
	Shots       []Shot         `msgpack:"shots"`
	Ticks       uint64         `msgpack:"ticks"`
	Complete    bool           `msgpack:"complete"`
	RecordedAt  time.Time      `msgpack:"at"`
}

// Replay records the current attempt.
func (g *Game) Replay() Replay {
	return Replay{
		Version:     replayVersion,
		ID:          uuid.NewString(),
		StageID:     g.m.ID,
		Fingerprint: g.m.Fingerprint(),
		TimeStep:    g.clock.Step(),
		BallRadius:  g.opts.BallRadius,
		HoleRadius:  g.opts.HoleRadius,
		Params:      g.opts.Params,
		Shots:       append([]Shot(nil), g.shots...),
		Ticks:       g.ticks,
		Complete:    g.stage.IsComplete(),
		RecordedAt:  time.Now().UTC(),
	}
}

// Encode serializes the replay with msgpack.
func (r Replay) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("trickshot: encode replay: %w", err)
	}
	return data, nil
}

// DecodeReplay parses a replay written by Encode.
func DecodeReplay(data []byte) (Replay, error) {
	var r Replay
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return Replay{}, fmt.Errorf("trickshot: decode replay: %w", err)
	}
	if r.Version != replayVersion {
		return Replay{}, fmt.Errorf("trickshot: replay version %d, want %d", r.Version, replayVersion)
	}
	return r, nil
}

// RunResult is the outcome of re-simulating a replay.
type RunResult struct {
	Complete bool
	Strokes  int
	Ticks    uint64
	Ball     geom.Vec2
}

// Run re-simulates the replay on m, applying each shot at its recorded
// tick, until the hole is made or the recorded tick count is reached. A shot
// taken after the last recorded tick still counts as a stroke.
func (r Replay) Run(m *stage.Map) (RunResult, error) {
	if m.Fingerprint() != r.Fingerprint {
		return RunResult{}, fmt.Errorf("%w: %s", ErrStageMismatch, m.ID)
	}
	s, err := m.Build(stage.BuildOptions{
		BallRadius: r.BallRadius,
		HoleRadius: r.HoleRadius,
		Params:     r.Params,
	})
	if err != nil {
		return RunResult{}, err
	}
	defer s.Close()

	next := 0
	var tick uint64
	for tick < r.Ticks && !s.IsComplete() {
		for next < len(r.Shots) && r.Shots[next].Tick == tick {
			s.ApplyImpulse(geom.V(r.Shots[next].DX, r.Shots[next].DY))
			next++
		}
		s.Tick(r.TimeStep)
		tick++
	}
	for ; next < len(r.Shots) && r.Shots[next].Tick <= tick && !s.IsComplete(); next++ {
		s.ApplyImpulse(geom.V(r.Shots[next].DX, r.Shots[next].DY))
	}

	return RunResult{
		Complete: s.IsComplete(),
		Strokes:  s.Strokes(),
		Ticks:    tick,
		Ball:     s.Ball().C,
	}, nil
}

// Package stage turns course files into collider layouts and playable
// physics stages. Parsing lives in the formats subpackage; this package
// validates, names and caches what the parsers return.
package stage

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/physics"
	"github.com/vovakirdan/mayhem/internal/stage/formats"
)

// Map is a validated course: its grid for drawing and its collider layout
// for the resolver. A Map is immutable and safe to share; every Build call
// returns an independent Stage over the same Layout.
type Map struct {
	ID       string
	Name     string
	Width    int // tiles
	Height   int // tiles
	TileSize float64
	Grid     []string
	Start    geom.Vec2
	Hole     geom.Vec2
	Metadata map[string]string
	FilePath string

	layout *physics.Layout
}

// BuildOptions sizes the ball and the hole and tunes the resolver.
type BuildOptions struct {
	BallRadius float64
	HoleRadius float64
	Params     physics.Params
}

// DefaultBuildOptions returns the trick-shot defaults. The ball is smaller
// than the hole so it can drop in.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		BallRadius: 6,
		HoleRadius: 10,
		Params:     physics.DefaultParams(),
	}
}

// NewMap validates a parsed stage and builds its layout.
func NewMap(s formats.Stage) (*Map, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("%w: stage has no id", ErrMalformedMap)
	}
	layout, err := physics.NewLayout(s.Colliders)
	if err != nil {
		return nil, fmt.Errorf("%w: stage %s: %v", ErrMalformedMap, s.ID, err)
	}
	name := s.Name
	if name == "" {
		name = s.ID
	}
	return &Map{
		ID:       s.ID,
		Name:     name,
		Width:    s.Width,
		Height:   s.Height,
		TileSize: s.TileSize,
		Grid:     s.Grid,
		Start:    s.Start,
		Hole:     s.Hole,
		Metadata: s.Metadata,
		layout:   layout,
	}, nil
}

// Layout returns the shared collider layout.
func (m *Map) Layout() *physics.Layout {
	return m.layout
}

// Size returns the course dimensions in stage pixels.
func (m *Map) Size() geom.Vec2 {
	return geom.V(float64(m.Width)*m.TileSize, float64(m.Height)*m.TileSize)
}

// Tile returns the grid character at (col, row), or the floor tile outside
// the grid. Ball and hole cells read as floor.
func (m *Map) Tile(col, row int) byte {
	if row < 0 || row >= len(m.Grid) || col < 0 || col >= len(m.Grid[row]) || col >= m.Width {
		return formats.TileFloor
	}
	switch ch := m.Grid[row][col]; ch {
	case formats.TileBall, formats.TileHole:
		return formats.TileFloor
	default:
		return ch
	}
}

// Build creates a fresh Stage for one attempt.
func (m *Map) Build(opts BuildOptions) (*physics.Stage, error) {
	s, err := physics.NewStage(physics.StageConfig{
		Layout:     m.layout,
		Start:      m.Start,
		BallRadius: opts.BallRadius,
		Goal:       geom.NewCircle(m.Hole, opts.HoleRadius),
		Params:     opts.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", m.ID, err)
	}
	return s, nil
}

// Fingerprint hashes everything the resolver sees: colliders in scan order,
// the start and the hole. Replays use it to detect edited courses.
func (m *Map) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	for _, c := range m.layout.All() {
		_, _ = d.Write([]byte{byte(c.Kind)})
		lo, hi := c.Box.Min(), c.Box.Max()
		put(lo.X)
		put(lo.Y)
		put(hi.X)
		put(hi.Y)
	}
	put(m.Start.X)
	put(m.Start.Y)
	put(m.Hole.X)
	put(m.Hole.Y)
	return d.Sum64()
}

// Encode writes the map in the plain-text course format.
func (m *Map) Encode() []byte {
	return formats.EncodeMap(formats.Stage{
		Width:     m.Width,
		Height:    m.Height,
		TileSize:  m.TileSize,
		Grid:      m.Grid,
		Colliders: m.layout.All(),
	})
}

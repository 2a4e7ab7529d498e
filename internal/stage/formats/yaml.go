package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/physics"
)

// YAMLStage represents the YAML structure for a stage file.
type YAMLStage struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Size      *YAMLSize         `yaml:"size,omitempty"`
	TileSize  float64           `yaml:"tile_size,omitempty"`
	Grid      []string          `yaml:"grid"`
	Colliders []YAMLCollider    `yaml:"colliders,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions in tiles.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLCollider is an explicit collider in stage pixels.
type YAMLCollider struct {
	Kind string     `yaml:"kind"`
	Min  [2]float64 `yaml:"min"`
	Max  [2]float64 `yaml:"max"`
}

// ParseYAML parses a YAML stage file. When the file lists no colliders they
// are derived from the grid.
func ParseYAML(data []byte, tileSize float64) (Stage, error) {
	var ys YAMLStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Stage{}, fmt.Errorf("%w: yaml unmarshal: %v", ErrMalformed, err)
	}

	if ys.TileSize > 0 {
		tileSize = ys.TileSize
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	height := len(ys.Grid)
	width := 0
	for _, row := range ys.Grid {
		width = max(width, len(row))
	}
	if ys.Size != nil {
		if ys.Size.W != width || ys.Size.H != height {
			return Stage{}, fmt.Errorf("%w: size %dx%d does not match grid %dx%d",
				ErrMalformed, ys.Size.W, ys.Size.H, width, height)
		}
	}
	if width == 0 || height == 0 {
		return Stage{}, fmt.Errorf("%w: empty grid", ErrMalformed)
	}

	start, hole, err := scanGrid(ys.Grid, width, tileSize)
	if err != nil {
		return Stage{}, err
	}

	var colliders []physics.Collider
	if len(ys.Colliders) == 0 {
		colliders = GridColliders(ys.Grid, width, tileSize)
	} else {
		colliders = make([]physics.Collider, 0, len(ys.Colliders))
		for i, yc := range ys.Colliders {
			kind, err := physics.ParseKind(yc.Kind)
			if err != nil {
				return Stage{}, fmt.Errorf("%w: collider %d: %v", ErrMalformed, i, err)
			}
			colliders = append(colliders, physics.Collider{
				Kind: kind,
				Box:  geom.NewAABB(geom.V(yc.Min[0], yc.Min[1]), geom.V(yc.Max[0], yc.Max[1])),
			})
		}
	}

	return Stage{
		ID:        ys.ID,
		Name:      ys.Name,
		Width:     width,
		Height:    height,
		TileSize:  tileSize,
		Grid:      ys.Grid,
		Colliders: colliders,
		Start:     start,
		Hole:      hole,
		Metadata:  ys.Metadata,
	}, nil
}

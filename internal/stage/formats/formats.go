// Package formats provides the stage file parsers. Every parser produces the
// same Stage value; the stage package turns it into a playable map.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/physics"
)

// DefaultTileSize is the edge of one grid tile in stage pixels.
const DefaultTileSize = 16.0

// ErrMalformed is returned for stage files that cannot be parsed.
var ErrMalformed = errors.New("malformed stage file")

// Grid tile characters.
const (
	TileWall  = 'w'
	TileBoost = 'B'
	TileSand  = 's'
	TileWater = 'W'
	TileBall  = 'b'
	TileHole  = 'h'
	TileFloor = '.'
)

// Stage is a parsed stage file ready for validation.
type Stage struct {
	ID        string
	Name      string
	Width     int // tiles
	Height    int // tiles
	TileSize  float64
	Grid      []string
	Colliders []physics.Collider // stage pixels
	Start     geom.Vec2          // ball start, stage pixels
	Hole      geom.Vec2          // goal center, stage pixels
	Metadata  map[string]string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".map", ".yaml", ".yml"}
}

// Parse routes data to the parser for ext.
func Parse(data []byte, ext string, tileSize float64) (Stage, error) {
	switch ext {
	case ".map":
		return ParseMap(data, tileSize)
	case ".yaml", ".yml":
		return ParseYAML(data, tileSize)
	default:
		return Stage{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// TileKind maps a grid character to the collider kind it produces.
func TileKind(ch byte) (physics.Kind, bool) {
	switch ch {
	case TileWall:
		return physics.KindWall, true
	case TileBoost:
		return physics.KindBoost, true
	case TileSand:
		return physics.KindFriction, true
	case TileWater:
		return physics.KindHazard, true
	}
	return 0, false
}

// TileCenter returns the stage-pixel center of grid cell (col, row).
func TileCenter(col, row int, tileSize float64) geom.Vec2 {
	return geom.V((float64(col)+0.5)*tileSize, (float64(row)+0.5)*tileSize)
}

// scanGrid locates the ball and the hole. Their cells are floor.
func scanGrid(grid []string, width int, tileSize float64) (start, hole geom.Vec2, err error) {
	var haveStart, haveHole bool
	for row, line := range grid {
		if len(line) < width {
			return start, hole, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrMalformed, row, len(line), width)
		}
		for col := range width {
			switch line[col] {
			case TileBall:
				if haveStart {
					return start, hole, fmt.Errorf("%w: second ball at row %d col %d", ErrMalformed, row, col)
				}
				start, haveStart = TileCenter(col, row, tileSize), true
			case TileHole:
				if haveHole {
					return start, hole, fmt.Errorf("%w: second hole at row %d col %d", ErrMalformed, row, col)
				}
				hole, haveHole = TileCenter(col, row, tileSize), true
			}
		}
	}
	if !haveStart {
		return start, hole, fmt.Errorf("%w: no ball start ('b') in grid", ErrMalformed)
	}
	if !haveHole {
		return start, hole, fmt.Errorf("%w: no hole ('h') in grid", ErrMalformed)
	}
	return start, hole, nil
}

// GridColliders derives colliders from the grid, merging horizontal runs of
// the same tile into one box. Output is in row-major order.
func GridColliders(grid []string, width int, tileSize float64) []physics.Collider {
	var out []physics.Collider
	for row, line := range grid {
		y0 := float64(row) * tileSize
		col := 0
		for col < width && col < len(line) {
			kind, ok := TileKind(line[col])
			if !ok {
				col++
				continue
			}
			end := col + 1
			for end < width && end < len(line) && line[end] == line[col] {
				end++
			}
			out = append(out, physics.Collider{
				Kind: kind,
				Box: geom.NewAABB(
					geom.V(float64(col)*tileSize, y0),
					geom.V(float64(end)*tileSize, y0+tileSize),
				),
			})
			col = end
		}
	}
	return out
}

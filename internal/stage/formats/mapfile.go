package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/physics"
)

// ParseMap parses the plain-text course format:
//
//	width
//	height
//	walls
//	boosts
//	sand
//	water
//	<height grid rows>
//	minx,miny|maxx,maxy   (one line per collider: walls, boosts, sand, water)
//
// Collider coordinates are stage pixels for 16-pixel tiles and are scaled
// when tileSize differs. The file carries no ID or name.
func ParseMap(data []byte, tileSize float64) (Stage, error) {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	lines, err := splitLines(data)
	if err != nil {
		return Stage{}, err
	}
	next := 0
	readInt := func(field string) (int, error) {
		if next >= len(lines) {
			return 0, fmt.Errorf("%w: missing %s", ErrMalformed, field)
		}
		n, err := strconv.Atoi(strings.TrimSpace(lines[next]))
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %s: %v", ErrMalformed, next+1, field, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: line %d: %s is negative", ErrMalformed, next+1, field)
		}
		next++
		return n, nil
	}

	var header [6]int
	for i, field := range []string{"width", "height", "wall count", "boost count", "sand count", "water count"} {
		n, err := readInt(field)
		if err != nil {
			return Stage{}, err
		}
		header[i] = n
	}
	width, height := header[0], header[1]
	if width == 0 || height == 0 {
		return Stage{}, fmt.Errorf("%w: empty grid %dx%d", ErrMalformed, width, height)
	}

	if next+height > len(lines) {
		return Stage{}, fmt.Errorf("%w: grid has %d rows, want %d", ErrMalformed, len(lines)-next, height)
	}
	grid := make([]string, height)
	for i := range height {
		grid[i] = lines[next+i]
	}
	next += height

	start, hole, err := scanGrid(grid, width, tileSize)
	if err != nil {
		return Stage{}, err
	}

	scale := tileSize / DefaultTileSize
	var colliders []physics.Collider
	for k, count := range header[2:] {
		kind := physics.Kinds[k]
		for range count {
			if next >= len(lines) {
				return Stage{}, fmt.Errorf("%w: missing %s collider lines", ErrMalformed, kind)
			}
			box, err := parseBox(lines[next])
			if err != nil {
				return Stage{}, fmt.Errorf("%w: line %d: %v", ErrMalformed, next+1, err)
			}
			next++
			colliders = append(colliders, physics.Collider{
				Kind: kind,
				Box:  geom.NewAABB(box[0].Scale(scale), box[1].Scale(scale)),
			})
		}
	}

	return Stage{
		Width:     width,
		Height:    height,
		TileSize:  tileSize,
		Grid:      grid,
		Colliders: colliders,
		Start:     start,
		Hole:      hole,
	}, nil
}

// parseBox reads "minx,miny|maxx,maxy".
func parseBox(line string) ([2]geom.Vec2, error) {
	var box [2]geom.Vec2
	lo, hi, ok := strings.Cut(strings.TrimSpace(line), "|")
	if !ok {
		return box, fmt.Errorf("collider %q: want minx,miny|maxx,maxy", line)
	}
	for i, part := range []string{lo, hi} {
		xs, ys, ok := strings.Cut(part, ",")
		if !ok {
			return box, fmt.Errorf("collider %q: corner %q lacks a comma", line, part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return box, fmt.Errorf("collider %q: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return box, fmt.Errorf("collider %q: %w", line, err)
		}
		box[i] = geom.V(x, y)
	}
	return box, nil
}

// EncodeMap writes s in the plain-text course format. Colliders are written
// in kind order and scaled back to 16-pixel tiles.
func EncodeMap(s Stage) []byte {
	var counts [len(physics.Kinds)]int
	for _, c := range s.Colliders {
		counts[c.Kind]++
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d\n%d\n", s.Width, s.Height)
	for _, n := range counts {
		fmt.Fprintf(&buf, "%d\n", n)
	}
	for _, row := range s.Grid {
		buf.WriteString(row)
		buf.WriteByte('\n')
	}

	scale := 1.0
	if s.TileSize > 0 {
		scale = DefaultTileSize / s.TileSize
	}
	for _, k := range physics.Kinds {
		for _, c := range s.Colliders {
			if c.Kind != k {
				continue
			}
			lo, hi := c.Box.Min().Scale(scale), c.Box.Max().Scale(scale)
			fmt.Fprintf(&buf, "%s,%s|%s,%s\n", ftoa(lo.X), ftoa(lo.Y), ftoa(hi.X), ftoa(hi.Y))
		}
	}
	return buf.Bytes()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func splitLines(data []byte) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, len(lines)+1, err)
	}
	return lines, nil
}

package stage

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/physics"
	"github.com/vovakirdan/mayhem/internal/stage/formats"
)

const tinyMap = `6
5
4
0
1
1
wwwwww
wb..hw
w.sW.w
w....w
wwwwww
0,0|96,16
0,64|96,80
0,16|16,64
80,16|96,64
32,32|48,48
48,32|64,48
`

const tinyYAML = `id: tiny
name: Tiny Course
grid:
  - "wwwwww"
  - "wb.Bhw"
  - "wwwwww"
`

func TestLoadAllSortsAndSkipsBadFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"b-course.map":     {Data: []byte(tinyMap)},
		"nested/tiny.yaml": {Data: []byte(tinyYAML)},
		"broken.map":       {Data: []byte("not a map")},
		"notes.txt":        {Data: []byte("ignored")},
	}
	l := NewFSLoader(fsys, "test")

	maps, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("got %d maps, want 2", len(maps))
	}
	if maps[0].ID != "b-course" || maps[1].ID != "tiny" {
		t.Errorf("order = %s, %s; want b-course, tiny", maps[0].ID, maps[1].ID)
	}
	if maps[1].Name != "Tiny Course" {
		t.Errorf("name = %q", maps[1].Name)
	}
	if maps[0].Name != "b-course" {
		t.Errorf("map without a name should fall back to its id, got %q", maps[0].Name)
	}
}

func TestParseMapFile(t *testing.T) {
	l := NewFSLoader(fstest.MapFS{"tiny.map": {Data: []byte(tinyMap)}}, "test")
	m, err := l.LoadFile("tiny.map")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if m.Width != 6 || m.Height != 5 {
		t.Errorf("size = %dx%d, want 6x5", m.Width, m.Height)
	}
	if want := geom.V(24, 24); m.Start != want {
		t.Errorf("start = %v, want %v", m.Start, want)
	}
	if want := geom.V(72, 24); m.Hole != want {
		t.Errorf("hole = %v, want %v", m.Hole, want)
	}

	layout := m.Layout()
	counts := map[physics.Kind]int{
		physics.KindWall:     4,
		physics.KindBoost:    0,
		physics.KindFriction: 1,
		physics.KindHazard:   1,
	}
	for k, want := range counts {
		if got := layout.Count(k); got != want {
			t.Errorf("%s count = %d, want %d", k, got, want)
		}
	}
	if got := layout.Of(physics.KindHazard)[0].Box.Min(); got != geom.V(48, 32) {
		t.Errorf("hazard min = %v", got)
	}
	if m.FilePath != "test/tiny.map" {
		t.Errorf("file path = %q", m.FilePath)
	}
}

func TestMapFileScalesWithTileSize(t *testing.T) {
	l := NewFSLoader(fstest.MapFS{"tiny.map": {Data: []byte(tinyMap)}}, "test", WithTileSize(32))
	m, err := l.LoadFile("tiny.map")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if want := geom.V(48, 48); m.Start != want {
		t.Errorf("start = %v, want %v", m.Start, want)
	}
	if got := m.Layout().Of(physics.KindWall)[0].Box.Max(); got != geom.V(192, 32) {
		t.Errorf("first wall max = %v, want (192, 32)", got)
	}
}

func TestYAMLDerivesCollidersFromGrid(t *testing.T) {
	m := loadYAML(t, tinyYAML)

	layout := m.Layout()
	// Top and bottom rows merge into one wall each; the middle row has two
	// single-tile walls.
	if got := layout.Count(physics.KindWall); got != 4 {
		t.Errorf("walls = %d, want 4", got)
	}
	if got := layout.Count(physics.KindBoost); got != 1 {
		t.Fatalf("boosts = %d, want 1", got)
	}
	boost := layout.Of(physics.KindBoost)[0].Box
	if boost.Min() != geom.V(48, 16) || boost.Max() != geom.V(64, 32) {
		t.Errorf("boost box = %v", boost)
	}
	top := layout.Of(physics.KindWall)[0].Box
	if top.Max() != geom.V(96, 16) {
		t.Errorf("top wall = %v", top)
	}
}

func TestYAMLExplicitColliders(t *testing.T) {
	m := loadYAML(t, `id: explicit
grid:
  - "b..h"
colliders:
  - {kind: water, min: [16, 0], max: [32, 16]}
  - {kind: wall, min: [0, 0], max: [64, 2]}
  - {kind: sand, min: [32, 0], max: [48, 16]}
`)
	all := m.Layout().All()
	want := []physics.Kind{physics.KindWall, physics.KindFriction, physics.KindHazard}
	if len(all) != len(want) {
		t.Fatalf("got %d colliders, want %d", len(all), len(want))
	}
	for i, k := range want {
		if all[i].Kind != k {
			t.Errorf("collider %d kind = %s, want %s", i, all[i].Kind, k)
		}
	}
}

func TestMalformedFiles(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"short header", "a.map", "6\n5\n"},
		{"negative count", "a.map", "2\n1\n-1\n0\n0\n0\nbh\n"},
		{"short row", "a.map", "4\n1\n0\n0\n0\n0\nbh\n"},
		{"no ball", "a.map", "2\n1\n0\n0\n0\n0\n.h\n"},
		{"no hole", "a.map", "2\n1\n0\n0\n0\n0\nb.\n"},
		{"two balls", "a.map", "3\n1\n0\n0\n0\n0\nbbh\n"},
		{"missing collider", "a.map", "2\n1\n1\n0\n0\n0\nbh\n"},
		{"bad collider", "a.map", "2\n1\n1\n0\n0\n0\nbh\n0,0;16,16\n"},
		{"degenerate collider", "a.map", "2\n1\n1\n0\n0\n0\nbh\n0,0|0,16\n"},
		{"yaml syntax", "a.yaml", "id: [\n"},
		{"yaml size mismatch", "a.yaml", "id: a\nsize: {w: 3, h: 1}\ngrid: [\"bh\"]\n"},
		{"yaml unknown kind", "a.yaml", "id: a\ngrid: [\"bh\"]\ncolliders:\n  - {kind: lava, min: [0, 0], max: [1, 1]}\n"},
		{"yaml empty", "a.yaml", "id: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewFSLoader(fstest.MapFS{tt.file: {Data: []byte(tt.data)}}, "test")
			_, err := l.LoadFile(tt.file)
			if !errors.Is(err, ErrMalformedMap) {
				t.Errorf("err = %v, want ErrMalformedMap", err)
			}
		})
	}
}

func TestMapFileLineTooLong(t *testing.T) {
	data := "2\n1\n1\n0\n0\n0\nbh\n0,0|" + strings.Repeat("1", 70_000) + ",16\n"
	l := NewFSLoader(fstest.MapFS{"long.map": {Data: []byte(data)}}, "test")
	_, err := l.LoadFile("long.map")
	if !errors.Is(err, ErrMalformedMap) || !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("err = %v, want ErrMalformedMap wrapping bufio.ErrTooLong", err)
	}
}

func TestLoadByIDNotFound(t *testing.T) {
	l := NewFSLoader(fstest.MapFS{"tiny.map": {Data: []byte(tinyMap)}}, "test")
	if _, err := l.LoadByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	m, err := l.LoadByID("tiny")
	if err != nil || m.ID != "tiny" {
		t.Errorf("LoadByID(tiny) = %v, %v", m, err)
	}
}

func TestBuiltinStagesBuild(t *testing.T) {
	maps, err := NewBuiltinLoader().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(maps) < 4 {
		t.Fatalf("got %d built-in stages, want at least 4", len(maps))
	}

	for _, m := range maps {
		t.Run(m.ID, func(t *testing.T) {
			s, err := m.Build(DefaultBuildOptions())
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if s.Ball().C != m.Start {
				t.Errorf("ball at %v, want %v", s.Ball().C, m.Start)
			}
			if m.Layout().Count(physics.KindWall) == 0 {
				t.Error("stage has no walls")
			}
			// The ball must not start inside a collider.
			for _, c := range m.Layout().All() {
				if c.Box.ContainsPoint(m.Start) {
					t.Errorf("start %v inside %s %v", m.Start, c.Kind, c.Box)
				}
			}
		})
	}
}

func TestBuildIndependentStages(t *testing.T) {
	m := loadYAML(t, tinyYAML)
	a, err := m.Build(DefaultBuildOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Build(DefaultBuildOptions())
	if err != nil {
		t.Fatal(err)
	}

	a.ApplyImpulse(geom.V(100, 0))
	a.Tick(physics.DefaultTimeStep)
	if b.Moving() || b.Ball().C != m.Start {
		t.Error("stages built from one map share ball state")
	}
	if a.Layout() != b.Layout() {
		t.Error("stages built from one map should share the layout")
	}
}

func TestBuildRejectsBadOptions(t *testing.T) {
	m := loadYAML(t, tinyYAML)
	opts := DefaultBuildOptions()
	opts.BallRadius = 0
	if _, err := m.Build(opts); !errors.Is(err, physics.ErrInvalidStage) {
		t.Errorf("err = %v, want ErrInvalidStage", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := loadYAML(t, tinyYAML)
	b := loadYAML(t, tinyYAML)
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical maps hash differently")
	}

	moved := loadYAML(t, `id: tiny
grid:
  - "wwwwww"
  - "w.bBhw"
  - "wwwwww"
`)
	if a.Fingerprint() == moved.Fingerprint() {
		t.Error("moving the start did not change the fingerprint")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	m := loadYAML(t, tinyYAML)
	parsed, err := formats.ParseMap(m.Encode(), m.TileSize)
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	parsed.ID = m.ID
	again, err := NewMap(parsed)
	if err != nil {
		t.Fatal(err)
	}
	if again.Fingerprint() != m.Fingerprint() {
		t.Error("encoded map does not reproduce the layout")
	}
}

func TestTile(t *testing.T) {
	m := loadYAML(t, tinyYAML)
	tests := []struct {
		col, row int
		want     byte
	}{
		{0, 0, formats.TileWall},
		{1, 1, formats.TileFloor}, // ball cell
		{3, 1, formats.TileBoost},
		{4, 1, formats.TileFloor}, // hole cell
		{-1, 0, formats.TileFloor},
		{0, 9, formats.TileFloor},
	}
	for _, tt := range tests {
		if got := m.Tile(tt.col, tt.row); got != tt.want {
			t.Errorf("Tile(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}

func loadYAML(t *testing.T, data string) *Map {
	t.Helper()
	l := NewFSLoader(fstest.MapFS{"s.yaml": {Data: []byte(data)}}, "test")
	m, err := l.LoadFile("s.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return m
}

func TestLoadAllFromOverrides(t *testing.T) {
	builtin := NewFSLoader(fstest.MapFS{
		"tiny.yaml": {Data: []byte(tinyYAML)},
		"other.map": {Data: []byte(tinyMap)},
	}, "builtin")
	user := NewFSLoader(fstest.MapFS{
		"tiny.yaml": {Data: []byte("id: tiny\nname: Custom\ngrid: [\"b..h\"]\n")},
	}, "user")

	maps, err := LoadAllFrom(builtin, user)
	if err != nil {
		t.Fatalf("LoadAllFrom: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("got %d maps, want 2", len(maps))
	}
	if maps[0].ID != "other" || maps[1].ID != "tiny" {
		t.Errorf("order = %s, %s", maps[0].ID, maps[1].ID)
	}
	if maps[1].Name != "Custom" {
		t.Errorf("user stage should override the built-in, got %q", maps[1].Name)
	}
}

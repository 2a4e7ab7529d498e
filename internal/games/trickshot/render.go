package trickshot

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/mayhem/internal/core"
	"github.com/vovakirdan/mayhem/internal/geom"
	"github.com/vovakirdan/mayhem/internal/stage"
	"github.com/vovakirdan/mayhem/internal/stage/formats"
)

// Visual characters for rendering
const (
	BallChar  = '●'
	HoleChar  = '○'
	AimChar   = '·'
	FloorChar = ' '
)

type tileStyle struct {
	glyph rune
	fg    core.Color
}

var tileStyles = map[byte]tileStyle{
	formats.TileWall:  {'█', core.ColorGray},
	formats.TileBoost: {'»', core.ColorBrightYellow},
	formats.TileSand:  {'░', core.ColorOrange},
	formats.TileWater: {'≈', core.ColorBlue},
}

// hudRows is the space kept below the course for the status line.
const hudRows = 2

// viewport maps stage pixels to screen cells. One tile is two columns wide
// and one row tall so tiles look square in a terminal.
type viewport struct {
	ox, oy     int
	cols, rows int
	tile       float64
	fits       bool
}

func newViewport(m *stage.Map, screenW, screenH int) viewport {
	v := viewport{cols: m.Width * 2, rows: m.Height, tile: m.TileSize}
	v.fits = v.cols <= screenW && v.rows+hudRows <= screenH
	v.ox = max((screenW-v.cols)/2, 0)
	v.oy = max((screenH-v.rows-hudRows)/2, 0)
	return v
}

func (v viewport) toCell(p geom.Vec2) (int, int) {
	return v.ox + int(math.Floor(p.X/v.tile*2)), v.oy + int(math.Floor(p.Y/v.tile))
}

func (v viewport) toStage(x, y int) geom.Vec2 {
	return geom.V((float64(x-v.ox)+0.5)*v.tile/2, (float64(y-v.oy)+0.5)*v.tile)
}

// Render draws the course, the aim guide, the ball and the status line.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() != g.runtime.ScreenW || dst.Height() != g.runtime.ScreenH {
		g.Resize(dst.Width(), dst.Height())
	}
	v := g.view
	if !v.fits {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Screen too small: need %dx%d", v.cols, v.rows+hudRows))
		return
	}

	for row := range g.m.Height {
		for col := range g.m.Width {
			st, ok := tileStyles[g.m.Tile(col, row)]
			if !ok {
				st = tileStyle{FloorChar, core.ColorDefault}
			}
			x, y := v.ox+col*2, v.oy+row
			dst.SetColored(x, y, st.glyph, st.fg)
			dst.SetColored(x+1, y, st.glyph, st.fg)
		}
	}

	if g.ready() {
		g.renderAim(dst)
	}

	hx, hy := v.toCell(g.m.Hole)
	dst.SetColored(hx, hy, HoleChar, core.ColorBrightWhite)
	bx, by := v.toCell(g.stage.Ball().C)
	ballColor := core.ColorBrightWhite
	if g.stage.IsComplete() {
		ballColor = core.ColorBrightGreen
	}
	dst.SetColored(bx, by, BallChar, ballColor)

	g.renderHUD(dst, v.oy+v.rows+1)
}

// renderAim dots the straight path of the aimed shot up to the first wall.
func (g *Game) renderAim(dst *core.Screen) {
	dir, err := g.AimVector().Normalize()
	if err != nil {
		return
	}
	length := g.rollDistance()
	if hit, ok := g.AimPreview(); ok {
		length = hit.Distance
	}

	origin := g.stage.Ball().C
	step := g.view.tile / 2
	for d := step; d < length; d += step {
		x, y := g.view.toCell(origin.AddScaled(dir, d))
		if dst.Get(x, y) == FloorChar {
			dst.SetColored(x, y, AimChar, core.ColorCyan)
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen, y int) {
	st := g.State()
	var line string
	switch {
	case st.Complete:
		line = fmt.Sprintf("%s  HOLED in %d!  [enter] play again  [q] quit", g.m.Name, st.Strokes)
	case st.Moving:
		line = fmt.Sprintf("%s  strokes %d  rolling...", g.m.Name, st.Strokes)
	default:
		filled := int(math.Round(g.power / g.cfg.Shot.MaxPower * 10))
		bar := strings.Repeat("■", filled) + strings.Repeat("□", 10-filled)
		line = fmt.Sprintf("%s  strokes %d  power %s  aim %3.0f°", g.m.Name, st.Strokes, bar, g.aim*180/math.Pi)
	}
	dst.DrawTextCentered(y, line)
}

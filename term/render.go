// Package term runs a marionette App inside a terminal. Nodes are
// rasterised onto character cells with tcell, input comes from tcell key and
// resize events, and sounds play through beep.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/marionette"
)

// Default cell size in scene pixels. A terminal cell is roughly twice as
// tall as it is wide.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// Block is a solid Texture for the terminal. W and H are in scene pixels.
type Block struct {
	W, H  int
	Rune  rune
	Color marionette.Color
}

// Size implements marionette.Texture.
func (b *Block) Size() (int, int) { return b.W, b.H }

// Renderer draws onto a tcell.Screen. Textures that are not a *Block are
// drawn as solid black blocks of their size.
type Renderer struct {
	Screen       tcell.Screen
	CellW, CellH float64
	Background   marionette.Color
}

// NewRenderer returns a renderer with the default cell size on a white
// background.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		Screen:     screen,
		CellW:      DefaultCellW,
		CellH:      DefaultCellH,
		Background: marionette.ColorWhite,
	}
}

// Clear fills the screen with the background color.
func (r *Renderer) Clear() {
	r.Screen.Fill(' ', tcell.StyleDefault.Background(toTcell(r.Background)))
}

// DrawTexturedQuad fills every cell whose centre falls inside the
// transformed texture. Opacity blends the texture color into the
// background.
func (r *Renderer) DrawTexturedQuad(t marionette.Affine, tex marionette.Texture, alpha float64) {
	if alpha <= 0 || tex == nil {
		return
	}
	w, h := tex.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if det := t[0]*t[3] - t[2]*t[1]; math.Abs(det) < 1e-12 {
		return
	}
	ch, c := '█', marionette.ColorBlack
	if b, ok := tex.(*Block); ok {
		if b.Rune != 0 {
			ch = b.Rune
		}
		if b.Color != (marionette.Color{}) {
			c = b.Color
		}
	}
	style := tcell.StyleDefault.
		Foreground(toTcell(blend(r.Background, c, alpha))).
		Background(toTcell(r.Background))

	fw, fh := float64(w), float64(h)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {fw, 0}, {0, fh}, {fw, fh}} {
		x, y := t.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	cols, rows := r.Screen.Size()
	c0 := max(int(math.Floor(minX/r.CellW)), 0)
	c1 := min(int(math.Ceil(maxX/r.CellW)), cols)
	r0 := max(int(math.Floor(minY/r.CellH)), 0)
	r1 := min(int(math.Ceil(maxY/r.CellH)), rows)

	inv := t.Invert()
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			u, v := inv.Apply((float64(col)+0.5)*r.CellW, (float64(row)+0.5)*r.CellH)
			if u < 0 || v < 0 || u >= fw || v >= fh {
				continue
			}
			r.Screen.SetContent(col, row, ch, nil, style)
		}
	}
}

// DrawText writes s on the row containing the baseline at t's origin. The
// font and size are ignored; a terminal has one of each.
func (r *Renderer) DrawText(s string, _ marionette.Font, t marionette.Affine, c marionette.Color, _ float64) {
	x, y := t.Apply(0, 0)
	col := int(math.Floor(x / r.CellW))
	row := int(math.Floor((y - 1) / r.CellH))
	cols, rows := r.Screen.Size()
	if row < 0 || row >= rows {
		return
	}
	style := tcell.StyleDefault.Foreground(toTcell(c)).Background(toTcell(r.Background))
	for _, ch := range s {
		if col >= cols {
			return
		}
		if col >= 0 {
			r.Screen.SetContent(col, row, ch, nil, style)
		}
		col++
	}
}

func blend(bg, fg marionette.Color, alpha float64) marionette.Color {
	a := math.Min(alpha*fg.A, 1)
	return marionette.Color{
		R: bg.R + (fg.R-bg.R)*a,
		G: bg.G + (fg.G-bg.G)*a,
		B: bg.B + (fg.B-bg.B)*a,
		A: 1,
	}
}

func toTcell(c marionette.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(v, 1)) * 255))
}

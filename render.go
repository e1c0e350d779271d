package marionette

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Renderer is the drawing backend the scene and the frame loop draw through.
type Renderer interface {
	// DrawTexturedQuad draws the whole texture with the given transform
	// (texture pixel space to screen space) and opacity.
	DrawTexturedQuad(t Affine, tex Texture, alpha float64)
	// DrawText draws s with its baseline origin at t's translation.
	DrawText(s string, font Font, t Affine, c Color, size float64)
}

// EbitenTexture is a Texture backed by an *ebiten.Image.
type EbitenTexture struct {
	Image *ebiten.Image
}

// NewEbitenTexture wraps img.
func NewEbitenTexture(img *ebiten.Image) *EbitenTexture {
	return &EbitenTexture{Image: img}
}

// Size returns the image size in pixels.
func (t *EbitenTexture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// EbitenRenderer draws onto an *ebiten.Image. Set Target before each frame.
type EbitenRenderer struct {
	Target *ebiten.Image

	imgOp  ebiten.DrawImageOptions
	textOp text.DrawOptions
}

// DrawTexturedQuad draws tex if it is an *EbitenTexture. Other texture
// types are ignored.
func (r *EbitenRenderer) DrawTexturedQuad(t Affine, tex Texture, alpha float64) {
	et, ok := tex.(*EbitenTexture)
	if !ok || r.Target == nil || alpha <= 0 {
		return
	}
	op := &r.imgOp
	op.GeoM = affineGeoM(t)
	op.ColorScale.Reset()
	op.ColorScale.ScaleAlpha(float32(alpha))
	r.Target.DrawImage(et.Image, op)
}

// DrawText draws s using font if it is a *TTFFont.
func (r *EbitenRenderer) DrawText(s string, font Font, t Affine, c Color, size float64) {
	f, ok := font.(*TTFFont)
	if !ok || r.Target == nil {
		return
	}
	face := f.Face(size)
	op := &r.textOp
	op.GeoM.Reset()
	// text/v2 draws from the top of the line; shift up so t marks the baseline.
	op.GeoM.Translate(0, -face.Metrics().HAscent)
	op.GeoM.Concat(affineGeoM(t))
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(c.toRGBA())
	text.Draw(r.Target, s, face, op)
}

// affineGeoM converts an Affine into an ebiten.GeoM.
func affineGeoM(t Affine) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}

// toRGBA converts a Color to a non-premultiplied color.RGBA-compatible value.
func (c Color) toRGBA() color.Color {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

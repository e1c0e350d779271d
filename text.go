package marionette

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// Font is a shared, read-only typeface that can be drawn at any size.
type Font interface {
	MeasureString(s string, size float64) (width, height float64)
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering. Faces are
// cached per size.
type TTFFont struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadTTFFont parses TrueType or OpenType data.
func LoadTTFFont(ttfData []byte) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("marionette: parse TTF data: %w", err)
	}
	return &TTFFont{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// DefaultFont returns the Go Mono typeface, used when no font file is
// configured.
func DefaultFont() (*TTFFont, error) {
	return LoadTTFFont(gomono.TTF)
}

// Face returns the face for the given pixel size.
func (f *TTFFont) Face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}

// MeasureString returns the width and height of s rendered at size.
func (f *TTFFont) MeasureString(s string, size float64) (width, height float64) {
	face := f.Face(size)
	m := face.Metrics()
	return text.Measure(s, face, m.HAscent+m.HDescent+m.HLineGap)
}

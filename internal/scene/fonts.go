package scene

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Faces are the font faces used for text in the plot. Sizes are in pixels.
type Faces struct {
	Tick   font.Face
	Label  font.Face
	Legend font.Face

	TickSize   float64
	LabelSize  float64
	LegendSize float64
}

// LoadFaces builds faces scaled to the frame height.
func LoadFaces(height int) (*Faces, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	h := float64(height)
	f := &Faces{
		TickSize:   max(8, h/36),
		LabelSize:  max(10, h/22),
		LegendSize: max(10, h/24),
	}
	for _, fc := range []struct {
		dst  *font.Face
		size float64
	}{
		{&f.Tick, f.TickSize},
		{&f.Label, f.LabelSize},
		{&f.Legend, f.LegendSize},
	} {
		face, err := opentype.NewFace(tt, &opentype.FaceOptions{
			Size:    fc.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("load font face: %w", err)
		}
		*fc.dst = face
	}
	return f, nil
}

func textWidth(face font.Face, s string) float64 {
	return fix2f(font.MeasureString(face, s))
}

// capHeight is used to centre text vertically on a point.
func capHeight(face font.Face) float64 {
	m := face.Metrics()
	if m.CapHeight > 0 {
		return fix2f(m.CapHeight)
	}
	return fix2f(m.Ascent) * 0.7
}

func fix2f(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

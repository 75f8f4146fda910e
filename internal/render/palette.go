package render

import (
	"image"
	"image/color"

	"github.com/san-kum/coupledosc/internal/scene"
)

// blendLevels is the number of anti-aliasing shades kept per color.
const blendLevels = 40

// buildPalette returns the background followed by blendLevels shades of
// every foreground color over it.
func buildPalette(bg color.RGBA, fgs ...color.RGBA) color.Palette {
	seen := map[color.RGBA]bool{bg: true}
	pal := color.Palette{bg}
	for _, fg := range fgs {
		for k := 1; k <= blendLevels; k++ {
			c := scene.Blend(bg, fg, float64(k)/blendLevels)
			if seen[c] || len(pal) == 256 {
				continue
			}
			seen[c] = true
			pal = append(pal, c)
		}
	}
	return pal
}

// quantizer maps RGBA pixels to palette indices, caching the nearest match.
type quantizer struct {
	pal   color.Palette
	cache map[color.RGBA]uint8
}

func newQuantizer(pal color.Palette) *quantizer {
	return &quantizer{pal: pal, cache: make(map[color.RGBA]uint8, 1024)}
}

func (q *quantizer) index(c color.RGBA) uint8 {
	if i, ok := q.cache[c]; ok {
		return i
	}
	i := uint8(q.pal.Index(c))
	q.cache[c] = i
	return i
}

// paletted converts the r part of src.
func (q *quantizer) paletted(src *image.RGBA, r image.Rectangle) *image.Paletted {
	dst := image.NewPaletted(r, q.pal)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			p := src.Pix[si : si+4 : si+4]
			dst.Pix[di] = q.index(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
			si += 4
			di++
		}
	}
	return dst
}

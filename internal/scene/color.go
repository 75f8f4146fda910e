package scene

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses "#RRGGBB" or "#RGB" into an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return toRGBA(c), nil
}

// Blend mixes fg over bg with opacity alpha in [0, 1]. The result is opaque.
func Blend(bg, fg color.RGBA, alpha float64) color.RGBA {
	a, _ := colorful.MakeColor(bg)
	b, _ := colorful.MakeColor(fg)
	return toRGBA(a.BlendRgb(b, clamp01(alpha)))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

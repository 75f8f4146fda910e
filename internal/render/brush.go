package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/san-kum/coupledosc/internal/scene"
	"golang.org/x/image/vector"
)

// brush collects polygons of one color and fills them in a single pass.
// Every polygon is wound the same way so overlaps add up instead of
// cancelling.
type brush struct {
	polys [][]scene.Point
	// clip, when set, drops polygons that cannot touch it.
	clip image.Rectangle

	minX, minY float64
	maxX, maxY float64
}

func newBrush() *brush {
	return &brush{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
}

func newClippedBrush(clip image.Rectangle) *brush {
	b := newBrush()
	b.clip = clip
	return b
}

func (b *brush) add(poly []scene.Point) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
	}
	if !b.clip.Empty() {
		r := image.Rect(int(math.Floor(minX))-1, int(math.Floor(minY))-1, int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
		if !r.Overlaps(b.clip) {
			return
		}
	}
	b.minX, b.minY = math.Min(b.minX, minX), math.Min(b.minY, minY)
	b.maxX, b.maxY = math.Max(b.maxX, maxX), math.Max(b.maxY, maxY)
	b.polys = append(b.polys, poly)
}

func (b *brush) disc(c scene.Point, r float64) {
	n := max(12, int(math.Ceil(2*math.Pi*r/1.5)))
	poly := make([]scene.Point, n)
	for k := range poly {
		a := -2 * math.Pi * float64(k) / float64(n)
		poly[k] = scene.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	b.add(poly)
}

// segment adds a butt-capped stroke of width w from a to c.
func (b *brush) segment(a, c scene.Point, w float64) {
	dx, dy := c.X-a.X, c.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	b.add([]scene.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: c.X + nx, Y: c.Y + ny},
		{X: c.X - nx, Y: c.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	})
}

// stroke adds pts[from:] as a polyline with round joins. The vertex at
// from is assumed to be drawn already unless from is 0.
func (b *brush) stroke(pts []scene.Point, from int, w float64) {
	if len(pts) == 0 || from >= len(pts) {
		return
	}
	if from == 0 {
		b.disc(pts[0], w/2)
	} else {
		from--
	}
	for j := from; j+1 < len(pts); j++ {
		b.segment(pts[j], pts[j+1], w)
		b.disc(pts[j+1], w/2)
	}
}

// bounds is the pixel rectangle touched by the collected polygons.
func (b *brush) bounds() image.Rectangle {
	if len(b.polys) == 0 {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(b.minX))-1, int(math.Floor(b.minY))-1,
		int(math.Ceil(b.maxX))+1, int(math.Ceil(b.maxY))+1,
	)
}

// paint fills the polygons over dst and returns the rectangle it changed.
func (b *brush) paint(dst *image.RGBA, c color.RGBA) image.Rectangle {
	r := b.bounds().Intersect(dst.Bounds())
	if r.Empty() {
		return image.Rectangle{}
	}
	b.rasterize(r).Draw(dst, r, image.NewUniform(c), image.Point{})
	return r
}

// paintWithin is paint restricted to clip. Polygons crossing the edge of
// clip are rasterized whole, so pixels inside it get full coverage.
func (b *brush) paintWithin(dst *image.RGBA, c color.RGBA, clip image.Rectangle) image.Rectangle {
	full := b.bounds().Intersect(dst.Bounds())
	r := full.Intersect(clip)
	if r.Empty() {
		return image.Rectangle{}
	}
	mask := image.NewAlpha(full)
	b.rasterize(full).Draw(mask, full, image.Opaque, image.Point{})
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, r.Min, draw.Over)
	return r
}

func (b *brush) rasterize(r image.Rectangle) *vector.Rasterizer {
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	for _, poly := range b.polys {
		z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	return z
}

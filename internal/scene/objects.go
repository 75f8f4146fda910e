package scene

import (
	"image/color"
	"math"

	"github.com/san-kum/coupledosc/internal/sim"
)

// TipIndex maps animation progress p in [0, 1] to the index of the sample
// at the leading edge of the drawing: floor(p*(n-1)), clamped to [0, n-1].
// Curves and dots both go through it, so a dot never leads or lags the
// visible end of its curve. Callers should pass n >= 2; smaller n and
// out-of-range or NaN p are clamped rather than rejected.
func TipIndex(p float64, n int) int {
	if n < 1 || !(p > 0) {
		return 0
	}
	i := int(math.Floor(p * float64(n-1)))
	if i > n-1 || i < 0 {
		return n - 1
	}
	return i
}

// Curve is one mass's trace projected onto the axes.
type Curve struct {
	Trace sim.Trace
	Color color.RGBA
	Width float64

	points []Point
}

func NewCurve(tr sim.Trace, axes *Axes, c color.RGBA, width float64) *Curve {
	pts := make([]Point, tr.Len())
	for i := range pts {
		pts[i] = axes.C2P(tr.T[i], tr.Y[i])
	}
	return &Curve{Trace: tr, Color: c, Width: width, points: pts}
}

// Points returns the projected samples. The slice must not be modified.
func (c *Curve) Points() []Point { return c.points }

// Visible returns the polyline through samples 0..TipIndex(p).
func (c *Curve) Visible(p float64) Path {
	i := TipIndex(p, len(c.points))
	return Path{
		Points: c.points[:min(i+1, len(c.points))],
		Width:  c.Width,
		Color:  c.Color,
	}
}

// Value evaluates the linear interpolant of the trace at t.
func (c *Curve) Value(t float64) float64 {
	return c.Trace.At(t)
}

// Dot marks the leading edge of a curve.
type Dot struct {
	Trace  sim.Trace
	Color  color.RGBA
	Radius float64

	axes *Axes
}

func NewDot(tr sim.Trace, axes *Axes, c color.RGBA, radius float64) *Dot {
	return &Dot{Trace: tr, Color: c, Radius: radius, axes: axes}
}

// Position returns the data coordinate (t[i], x[i]) with i = TipIndex(p).
func (d *Dot) Position(p float64) (t, x float64) {
	n := d.Trace.Len()
	if n == 0 {
		return 0, 0
	}
	i := TipIndex(p, n)
	return d.Trace.T[i], d.Trace.Y[i]
}

func (d *Dot) Disc(p float64) Disc {
	t, x := d.Position(p)
	return Disc{Center: d.axes.C2P(t, x), Radius: d.Radius, Color: d.Color}
}

type LegendEntry struct {
	Label string
	Color color.RGBA
}

// Legend is a row of swatch and label pairs anchored to the upper-right
// corner of the frame.
type Legend struct {
	Entries []LegendEntry
	Radius  float64

	layer Layer
}

func NewLegend(entries []LegendEntry, frameWidth int, radius float64, faces *Faces) *Legend {
	lg := &Legend{Entries: entries, Radius: radius}

	size := faces.LegendSize
	margin := 1.9 * size
	gap := 0.45 * size
	face := faces.Legend

	total := 0.0
	for i, e := range entries {
		if i > 0 {
			total += gap
		}
		total += 2*radius + gap + textWidth(face, e.Label)
	}

	x := float64(frameWidth) - margin - total
	cy := margin + size/2
	baseline := cy + capHeight(face)/2
	for _, e := range entries {
		lg.layer.Discs = append(lg.layer.Discs, Disc{
			Center: Point{x + radius, cy},
			Radius: radius,
			Color:  e.Color,
		})
		x += 2*radius + gap
		lg.layer.Texts = append(lg.layer.Texts, Text{
			At: Point{x, baseline},
			S:  e.Label, Size: size, Face: face, Color: e.Color,
		})
		x += textWidth(face, e.Label) + gap
	}
	return lg
}

func (lg *Legend) Layer() Layer { return lg.layer }

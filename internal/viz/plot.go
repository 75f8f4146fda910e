package viz

import (
	"math"

	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/scene"
	"github.com/san-kum/coupledosc/internal/sim"
)

// Layer 0 is the axes; trace k draws on layer k+1.
const axisLayer = 0

// Plot maps (t, x) data onto a braille canvas.
type Plot struct {
	Canvas *Canvas
	X, Y   config.AxisRange
}

func NewPlot(cols, rows int, x, y config.AxisRange) *Plot {
	return &Plot{Canvas: NewCanvas(cols, rows), X: x, Y: y}
}

// project converts data coordinates to sub-pixels.
func (p *Plot) project(t, x float64) (int, int) {
	w, h := float64(p.Canvas.Width*2-1), float64(p.Canvas.Height*4-1)
	px := (t - p.X.Min) / (p.X.Max - p.X.Min) * w
	py := (p.Y.Max - x) / (p.Y.Max - p.Y.Min) * h
	return int(math.Round(px)), int(math.Round(py))
}

// DrawAxes draws the t axis at x=0 and the x axis at t=0, with a tick
// dot at every grid step.
func (p *Plot) DrawAxes() {
	t0 := math.Max(p.X.Min, math.Min(p.X.Max, 0))
	x0 := math.Max(p.Y.Min, math.Min(p.Y.Max, 0))

	ax, ay := p.project(p.X.Min, x0)
	bx, by := p.project(p.X.Max, x0)
	p.Canvas.DrawLine(ax, ay, bx, by, axisLayer)
	ax, ay = p.project(t0, p.Y.Min)
	bx, by = p.project(t0, p.Y.Max)
	p.Canvas.DrawLine(ax, ay, bx, by, axisLayer)

	for v := p.X.Min; v <= p.X.Max+1e-9; v += p.X.Step {
		x, y := p.project(v, x0)
		p.Canvas.SetLayer(x, y-1, axisLayer)
		p.Canvas.SetLayer(x, y+1, axisLayer)
	}
	for v := p.Y.Min; v <= p.Y.Max+1e-9; v += p.Y.Step {
		x, y := p.project(t0, v)
		p.Canvas.SetLayer(x+1, y, axisLayer)
	}
}

// DrawTrace draws samples 0..tip of tr connected by lines.
func (p *Plot) DrawTrace(tr sim.Trace, tip, layer int) {
	if tr.Len() == 0 {
		return
	}
	tip = min(tip, tr.Len()-1)
	px, py := p.project(tr.T[0], tr.Y[0])
	p.Canvas.SetLayer(px, py, layer)
	for i := 1; i <= tip; i++ {
		x, y := p.project(tr.T[i], tr.Y[i])
		if x != px || y != py {
			p.Canvas.DrawLine(px, py, x, y, layer)
		}
		px, py = x, y
	}
}

// DrawDot marks the sample at tip with a small cross.
func (p *Plot) DrawDot(tr sim.Trace, tip, layer int) {
	if tr.Len() == 0 {
		return
	}
	tip = min(tip, tr.Len()-1)
	x, y := p.project(tr.T[tip], tr.Y[tip])
	for _, d := range [][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		p.Canvas.SetLayer(x+d[0], y+d[1], layer)
	}
}

// DrawFrame redraws the plot at progress p: axes, every trace up to the
// shared tip index, then the dots.
func (p *Plot) DrawFrame(traces []sim.Trace, progress float64) int {
	p.Canvas.Clear()
	p.DrawAxes()
	if len(traces) == 0 {
		return 0
	}
	tip := scene.TipIndex(progress, traces[0].Len())
	for k, tr := range traces {
		p.DrawTrace(tr, tip, k+1)
	}
	for k, tr := range traces {
		p.DrawDot(tr, tip, k+1)
	}
	return tip
}

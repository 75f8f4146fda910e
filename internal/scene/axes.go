package scene

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/coupledosc/internal/config"
)

const (
	gridAlpha = 0.18
	axisWidth = 2.0
)

// Axes maps data coordinates (t, x) onto the plot box and builds the
// static decorations: gridlines, axis lines, ticks and their labels.
type Axes struct {
	X, Y config.AxisRange

	// Plot box in pixels.
	Left, Top, Width, Height float64

	Color          color.RGBA
	Grid           color.RGBA
	XLabel, YLabel string

	faces *Faces
}

type Tick struct {
	Value float64
	Label string
	Pos   Point
}

func NewAxes(rc config.RenderConfig, faces *Faces) (*Axes, error) {
	axis, err := ParseColor(rc.AxisColor)
	if err != nil {
		return nil, fmt.Errorf("axis_color: %w", err)
	}
	bg, err := ParseColor(rc.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	w, h := float64(rc.Width), float64(rc.Height)
	left, right := 0.075*w, 0.045*w
	top, bottom := 0.10*h, 0.06*h

	return &Axes{
		X:      rc.XRange,
		Y:      rc.YRange,
		Left:   left,
		Top:    top,
		Width:  w - left - right,
		Height: h - top - bottom,
		Color:  axis,
		Grid:   Blend(bg, axis, gridAlpha),
		XLabel: rc.XLabel,
		YLabel: rc.YLabel,
		faces:  faces,
	}, nil
}

// C2P converts a data coordinate to a pixel position. Values outside the
// ranges map outside the plot box.
func (a *Axes) C2P(t, x float64) Point {
	return Point{
		X: a.Left + (t-a.X.Min)/(a.X.Max-a.X.Min)*a.Width,
		Y: a.Top + (a.Y.Max-x)/(a.Y.Max-a.Y.Min)*a.Height,
	}
}

// Origin is where the axis lines cross: t=0 and x=0, clamped into range.
func (a *Axes) Origin() (t, x float64) {
	return clampTo(0, a.X), clampTo(0, a.Y)
}

func (a *Axes) XTicks() []Tick {
	_, x0 := a.Origin()
	return ticks(a.X, func(v float64) Point { return a.C2P(v, x0) })
}

func (a *Axes) YTicks() []Tick {
	t0, _ := a.Origin()
	return ticks(a.Y, func(v float64) Point { return a.C2P(t0, v) })
}

// Layer returns every static part of the axes.
func (a *Axes) Layer() Layer {
	var l Layer
	t0, x0 := a.Origin()
	tickLen := 0.012 * a.Height

	xt, yt := a.XTicks(), a.YTicks()
	for _, tk := range xt {
		l.Lines = append(l.Lines, Line{
			A: Point{tk.Pos.X, a.Top}, B: Point{tk.Pos.X, a.Top + a.Height},
			Width: 1, Color: a.Grid,
		})
	}
	for _, tk := range yt {
		l.Lines = append(l.Lines, Line{
			A: Point{a.Left, tk.Pos.Y}, B: Point{a.Left + a.Width, tk.Pos.Y},
			Width: 1, Color: a.Grid,
		})
	}

	l.Lines = append(l.Lines,
		Line{A: a.C2P(a.X.Min, x0), B: a.C2P(a.X.Max, x0), Width: axisWidth, Color: a.Color},
		Line{A: a.C2P(t0, a.Y.Min), B: a.C2P(t0, a.Y.Max), Width: axisWidth, Color: a.Color},
	)

	f := a.faces
	for _, tk := range xt {
		l.Lines = append(l.Lines, Line{
			A: Point{tk.Pos.X, tk.Pos.Y - tickLen}, B: Point{tk.Pos.X, tk.Pos.Y + tickLen},
			Width: axisWidth, Color: a.Color,
		})
		if tk.Value == t0 {
			continue
		}
		w := textWidth(f.Tick, tk.Label)
		l.Texts = append(l.Texts, Text{
			At:   Point{tk.Pos.X - w/2, tk.Pos.Y + tickLen + 0.4*f.TickSize + capHeight(f.Tick)},
			S:    tk.Label,
			Size: f.TickSize, Face: f.Tick, Color: a.Color,
		})
	}
	for _, tk := range yt {
		l.Lines = append(l.Lines, Line{
			A: Point{tk.Pos.X - tickLen, tk.Pos.Y}, B: Point{tk.Pos.X + tickLen, tk.Pos.Y},
			Width: axisWidth, Color: a.Color,
		})
		if tk.Value == x0 {
			continue
		}
		w := textWidth(f.Tick, tk.Label)
		l.Texts = append(l.Texts, Text{
			At:   Point{tk.Pos.X - tickLen - 0.4*f.TickSize - w, tk.Pos.Y + capHeight(f.Tick)/2},
			S:    tk.Label,
			Size: f.TickSize, Face: f.Tick, Color: a.Color,
		})
	}

	pad := 0.4 * f.LabelSize
	xEnd := a.C2P(a.X.Max, x0)
	yEnd := a.C2P(t0, a.Y.Max)
	l.Texts = append(l.Texts,
		Text{
			At: Point{xEnd.X + pad, xEnd.Y - pad},
			S:  a.XLabel, Size: f.LabelSize, Face: f.Label, Color: a.Color,
		},
		Text{
			At: Point{yEnd.X + pad, yEnd.Y - pad},
			S:  a.YLabel, Size: f.LabelSize, Face: f.Label, Color: a.Color,
		},
	)
	return l
}

func ticks(r config.AxisRange, pos func(float64) Point) []Tick {
	n := int(math.Floor((r.Max-r.Min)/r.Step + 1e-9))
	prec := decimals(r.Step)
	out := make([]Tick, 0, n+1)
	for k := 0; k <= n; k++ {
		v := r.Min + float64(k)*r.Step
		if math.Abs(v) < r.Step*1e-9 {
			v = 0
		}
		out = append(out, Tick{
			Value: v,
			Label: strconv.FormatFloat(v, 'f', prec, 64),
			Pos:   pos(v),
		})
	}
	return out
}

// decimals is the number of fraction digits needed to print step.
func decimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return min(len(s)-i-1, 6)
}

func clampTo(v float64, r config.AxisRange) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

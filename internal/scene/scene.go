package scene

import (
	"fmt"
	"image/color"

	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/sim"
)

type Scene struct {
	Width, Height int
	Background    color.RGBA

	Axes     *Axes
	Curves   []*Curve
	Dots     []*Dot
	Legend   *Legend
	Timeline Timeline
	Faces    *Faces

	static Layer
}

// Frame is everything that changes between frames at one progress value.
type Frame struct {
	Index    int
	Progress float64
	Tip      int
	Curves   []Path
	Dots     []Disc
}

// New lays out the plot for two mass traces sharing one time grid.
// Each trace needs at least two samples.
func New(traces [2]sim.Trace, rc config.RenderConfig) (*Scene, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	n := traces[0].Len()
	for _, tr := range traces {
		if tr.Len() < 2 {
			return nil, sim.ErrShortSeries
		}
		if tr.Len() != n || len(tr.Y) != n {
			return nil, fmt.Errorf("scene: traces have mismatched lengths")
		}
	}

	bg, err := ParseColor(rc.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	faces, err := LoadFaces(rc.Height)
	if err != nil {
		return nil, err
	}
	axes, err := NewAxes(rc, faces)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Width:      rc.Width,
		Height:     rc.Height,
		Background: bg,
		Axes:       axes,
		Timeline:   NewTimeline(rc.FPS, rc.RunTime, rc.Hold),
		Faces:      faces,
	}

	entries := make([]LegendEntry, 0, len(traces))
	for i, tr := range traces {
		c, err := ParseColor(rc.Colors[i])
		if err != nil {
			return nil, fmt.Errorf("colors[%d]: %w", i, err)
		}
		s.Curves = append(s.Curves, NewCurve(tr, axes, c, rc.StrokeWidth))
		s.Dots = append(s.Dots, NewDot(tr, axes, c, rc.DotRadius))
		entries = append(entries, LegendEntry{Label: rc.Labels[i], Color: c})
	}
	s.Legend = NewLegend(entries, rc.Width, rc.DotRadius, faces)

	s.static = axes.Layer()
	s.static.append(s.Legend.Layer())
	return s, nil
}

// Static returns the parts present unchanged in every frame.
func (s *Scene) Static() Layer { return s.static }

// Samples is the length of the shared time grid.
func (s *Scene) Samples() int { return s.Curves[0].Trace.Len() }

// Snapshot computes every animated element from the single progress p.
func (s *Scene) Snapshot(p float64) Frame {
	f := Frame{
		Progress: p,
		Tip:      TipIndex(p, s.Samples()),
		Curves:   make([]Path, len(s.Curves)),
		Dots:     make([]Disc, len(s.Dots)),
	}
	for i, c := range s.Curves {
		f.Curves[i] = c.Visible(p)
	}
	for i, d := range s.Dots {
		f.Dots[i] = d.Disc(p)
	}
	return f
}

// Frame is the snapshot of timeline frame i.
func (s *Scene) Frame(i int) Frame {
	f := s.Snapshot(s.Timeline.Progress(i))
	f.Index = i
	return f
}

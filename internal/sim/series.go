package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/coupledosc/internal/dynamo"
)

// ErrShortSeries is returned for series that cannot be interpolated.
var ErrShortSeries = errors.New("sim: time series needs at least 2 samples")

// TimeSeries is a sampled trajectory on a fixed grid. It is never
// modified after Run returns it.
type TimeSeries struct {
	T      []float64
	States []dynamo.State
}

func (ts *TimeSeries) Len() int { return len(ts.T) }

// Span returns the first and last sample times.
func (ts *TimeSeries) Span() (float64, float64) {
	if len(ts.T) == 0 {
		return 0, 0
	}
	return ts.T[0], ts.T[len(ts.T)-1]
}

// Column copies state component j across all samples.
func (ts *TimeSeries) Column(j int) []float64 {
	col := make([]float64, len(ts.States))
	for i, s := range ts.States {
		col[i] = s[j]
	}
	return col
}

// Trace extracts component j as a named scalar curve.
func (ts *TimeSeries) Trace(name string, j int) Trace {
	return Trace{Name: name, T: ts.T, Y: ts.Column(j)}
}

// Validate checks the grid invariants: matching lengths, at least two
// samples, strictly increasing times.
func (ts *TimeSeries) Validate() error {
	if len(ts.T) != len(ts.States) {
		return fmt.Errorf("sim: %d times but %d states", len(ts.T), len(ts.States))
	}
	return validateGrid(ts.T)
}

// Trace is one scalar component of a TimeSeries, such as a mass position.
type Trace struct {
	Name string
	T    []float64
	Y    []float64
}

func (tr Trace) Len() int { return len(tr.T) }

// At evaluates the piecewise-linear interpolant of the trace at t.
func (tr Trace) At(t float64) float64 { return Interp(tr.T, tr.Y, t) }

// Range returns the minimum and maximum sample values.
func (tr Trace) Range() (lo, hi float64) {
	if len(tr.Y) == 0 {
		return 0, 0
	}
	lo, hi = tr.Y[0], tr.Y[0]
	for _, v := range tr.Y[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Interp linearly interpolates ys over the increasing abscissae ts.
// Outside [ts[0], ts[n-1]] the end values are held. At a sample time the
// sample value is returned unchanged.
func Interp(ts, ys []float64, t float64) float64 {
	n := len(ts)
	if n == 0 {
		return 0
	}
	i := sort.SearchFloat64s(ts, t)
	if i < n && ts[i] == t {
		return ys[i]
	}
	if i == 0 {
		return ys[0]
	}
	if i == n {
		return ys[n-1]
	}
	t0, t1 := ts[i-1], ts[i]
	w := (t - t0) / (t1 - t0)
	return ys[i-1] + w*(ys[i]-ys[i-1])
}

// Linspace returns n evenly spaced points from a to b inclusive. The last
// point is exactly b.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	pts := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range pts {
		pts[i] = a + float64(i)*step
	}
	pts[n-1] = b
	return pts
}

func validateGrid(grid []float64) error {
	if len(grid) < 2 {
		return ErrShortSeries
	}
	for i := 1; i < len(grid); i++ {
		if !(grid[i] > grid[i-1]) {
			return fmt.Errorf("sim: grid not strictly increasing at index %d (%g <= %g)", i, grid[i], grid[i-1])
		}
	}
	return nil
}

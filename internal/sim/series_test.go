package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/coupledosc/internal/dynamo"
)

func TestLinspace(t *testing.T) {
	pts := Linspace(0, 60, 1000)
	if len(pts) != 1000 {
		t.Fatalf("expected 1000 points, got %d", len(pts))
	}
	if pts[0] != 0 || pts[999] != 60 {
		t.Errorf("endpoints = %v, %v", pts[0], pts[999])
	}
	for i := 1; i < len(pts); i++ {
		if pts[i] <= pts[i-1] {
			t.Fatalf("not increasing at %d", i)
		}
	}
	if math.Abs(pts[1]-60.0/999) > 1e-15 {
		t.Errorf("spacing = %v", pts[1])
	}

	if Linspace(0, 1, 0) != nil {
		t.Error("expected nil for n=0")
	}
	if got := Linspace(3, 5, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("n=1 gave %v", got)
	}
}

func TestInterp(t *testing.T) {
	ts := []float64{0, 1, 2, 4}
	ys := []float64{0, 10, -10, 30}

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"left clamp", -5, 0},
		{"first sample", 0, 0},
		{"midpoint", 0.5, 5},
		{"sample", 2, -10},
		{"wide interval", 3, 10},
		{"last sample", 4, 30},
		{"right clamp", 99, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interp(ts, ys, tt.t); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Interp(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}

	if Interp(nil, nil, 1) != 0 {
		t.Error("empty interp should be 0")
	}
}

func TestTrace_RoundTrip(t *testing.T) {
	ts := Linspace(0, 60, 1000)
	series := &TimeSeries{T: ts, States: make([]dynamo.State, len(ts))}
	for i, tm := range ts {
		series.States[i] = dynamo.State{math.Sin(tm), 0, math.Cos(3 * tm), 0}
	}

	tr := series.Trace("x2", 2)
	for i, tm := range ts {
		if got := tr.At(tm); got != tr.Y[i] {
			t.Fatalf("At(t[%d]) = %v, want %v", i, got, tr.Y[i])
		}
	}

	lo, hi := tr.Range()
	if lo < -1 || hi > 1 || lo > -0.99 || hi < 0.99 {
		t.Errorf("range = [%v, %v]", lo, hi)
	}
}

func TestTimeSeries_Validate(t *testing.T) {
	tests := []struct {
		name    string
		series  TimeSeries
		wantErr error
	}{
		{"ok", TimeSeries{T: []float64{0, 1}, States: []dynamo.State{{0}, {1}}}, nil},
		{"empty", TimeSeries{}, ErrShortSeries},
		{"single", TimeSeries{T: []float64{0}, States: []dynamo.State{{0}}}, ErrShortSeries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	bad := TimeSeries{T: []float64{0, 1, 1}, States: []dynamo.State{{0}, {1}, {2}}}
	if bad.Validate() == nil {
		t.Error("expected error for repeated time")
	}
	mismatch := TimeSeries{T: []float64{0, 1}, States: []dynamo.State{{0}}}
	if mismatch.Validate() == nil {
		t.Error("expected error for length mismatch")
	}
}

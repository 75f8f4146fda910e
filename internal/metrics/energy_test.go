package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/coupledosc/internal/dynamo"
	"github.com/san-kum/coupledosc/internal/physics"
)

func TestEnergyMean(t *testing.T) {
	osc := physics.NewCoupledOscillator(1, 10, 8)
	m := NewEnergy(osc)

	a := dynamo.State{1, 0, 0, 0}
	b := dynamo.State{0, 1, 0, 1}
	m.Observe(a, 0)
	m.Observe(b, 1)

	expected := (osc.Energy(a) + osc.Energy(b)) / 2
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy(physics.NewCoupledOscillator(1, 10, 8))

	m.Observe(dynamo.State{1.0, 1.0, 0, 0}, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	osc := physics.NewCoupledOscillator(1, 10, 8)
	d := NewEnergyDrift(osc)

	x := dynamo.State{1.75, 0, 0, 0}
	d.Observe(x, 0)
	d.Observe(x, 1)
	if d.Value() != 0 {
		t.Errorf("constant energy reported drift %v", d.Value())
	}

	// Same potential energy, doubled: x scaled by sqrt(2).
	d.Observe(dynamo.State{1.75 * math.Sqrt2, 0, 0, 0}, 2)
	if math.Abs(d.Value()-1) > 1e-12 {
		t.Errorf("expected drift 1, got %v", d.Value())
	}

	d.Reset()
	if d.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestStability(t *testing.T) {
	s := NewStability("in_frame", 3, 0, 2)

	s.Observe(dynamo.State{1, 100, -2, 100}, 0)
	s.Observe(dynamo.State{3.5, 0, 0, 0}, 1)
	s.Observe(dynamo.State{0, 0, -3.1, 0}, 2)
	s.Observe(dynamo.State{2.9, 0, 2.9, 0}, 3)

	if got := s.Value(); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}

	s.Reset()
	if s.Value() != 1 {
		t.Error("expected 1 after reset")
	}
}

func TestPeak(t *testing.T) {
	p := NewPeak("peak_x2", 2)
	p.Observe(dynamo.State{9, 9, -1.5, 9}, 0)
	p.Observe(dynamo.State{9, 9, 1.2, 9}, 1)
	if p.Value() != 1.5 {
		t.Errorf("expected 1.5, got %v", p.Value())
	}
	p.Reset()
	if p.Value() != 0 {
		t.Error("expected 0 after reset")
	}
}

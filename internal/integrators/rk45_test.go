package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/coupledosc/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
	if math.Abs(x[0]-math.Cos(10)) > 1e-8 {
		t.Errorf("x(10) = %v, want %v", x[0], math.Cos(10))
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	initialEnergy := dyn.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	finalEnergy := dyn.Energy(x)
	drift := math.Abs(finalEnergy-initialEnergy) / initialEnergy

	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_TryReportsDerivativeAtNewState(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	a := integrator.Try(dyn, x0, dyn.Derive(x0, 0), 0, 0.1, dynamo.DefaultTolerance())

	if !a.X.IsValid() {
		t.Fatal("Try produced invalid state")
	}
	want := dyn.Derive(a.X, 0.1)
	for i := range want {
		if a.Dx[i] != want[i] {
			t.Errorf("Dx[%d] = %v, want %v", i, a.Dx[i], want[i])
		}
	}
	if a.Evals != 6 {
		t.Errorf("expected 6 evaluations, got %d", a.Evals)
	}
}

func TestRK45_ErrorShrinksWithStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}
	dx0 := dyn.Derive(x0, 0)
	tol := dynamo.Tolerance{Abs: 1e-10, Rel: 1e-8}

	big := integrator.Try(dyn, x0, dx0, 0, 0.5, tol).Error
	small := integrator.Try(dyn, x0, dx0, 0, 0.05, tol).Error

	if big <= 1 {
		t.Errorf("expected h=0.5 to be rejected at tight tolerance, err=%v", big)
	}
	if small >= big {
		t.Errorf("error did not shrink: h=0.5 -> %v, h=0.05 -> %v", big, small)
	}
}

func TestRK45_NextStep(t *testing.T) {
	integrator := NewRK45()

	tests := []struct {
		name     string
		errNorm  float64
		min, max float64
	}{
		{"exact", 0, 1.0, 1.0},
		{"rejected", 32, 0.2, 0.5},
		{"hugely rejected", 1e12, 0.2, 0.2},
		{"accepted", 0.01, 1.0, 10.0},
		{"nan", math.NaN(), 0.2, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := integrator.NextStep(0.1, tt.errNorm) / 0.1
			if tt.name == "exact" {
				if got != 10 {
					t.Errorf("zero error should grow by max scale, got %v", got)
				}
				return
			}
			if got < tt.min-1e-12 || got > tt.max+1e-12 {
				t.Errorf("scale %v outside [%v, %v]", got, tt.min, tt.max)
			}
		})
	}
}

func TestRK45_InitialStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	h := integrator.InitialStep(dyn, x0, dyn.Derive(x0, 0), 0, 60, dynamo.DefaultTolerance())
	if h <= 0 || h > 60 {
		t.Fatalf("initial step out of range: %v", h)
	}

	capped := integrator.InitialStep(dyn, x0, dyn.Derive(x0, 0), 0, 1e-9, dynamo.DefaultTolerance())
	if capped > 1e-9 {
		t.Errorf("initial step not capped by span: %v", capped)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x4 := x0.Clone()
	x45 := x0.Clone()
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(dyn, x4, float64(i)*dt, dt)
		x45 = rk45.Step(dyn, x45, float64(i)*dt, dt)
	}

	e4 := math.Abs(x4[0] - math.Cos(10))
	e45 := math.Abs(x45[0] - math.Cos(10))
	t.Logf("RK4 error %.3e, RK45 error %.3e", e4, e45)

	if e45 > e4 {
		t.Errorf("5th order step less accurate than RK4: %e > %e", e45, e4)
	}
}

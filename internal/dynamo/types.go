package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Attempt is the outcome of a single trial step of an embedded pair.
type Attempt struct {
	X     State   // candidate state at t+dt
	Dx    State   // derivative at the candidate state
	Error float64 // scaled error norm, accepted when <= 1
	Evals int
}

type AdaptiveIntegrator interface {
	Integrator
	Try(dyn System, x, dx State, t, dt float64, tol Tolerance) Attempt
	NextStep(dt, errNorm float64) float64
	InitialStep(dyn System, x, dx State, t, span float64, tol Tolerance) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Tolerance is a mixed error bound: each component i is held to
// Abs + Rel*|x_i|.
type Tolerance struct {
	Abs float64
	Rel float64
}

func DefaultTolerance() Tolerance {
	return Tolerance{Abs: 1e-10, Rel: 1e-8}
}

func (t Tolerance) Validate() error {
	if t.Abs < 0 || t.Rel < 0 || math.IsNaN(t.Abs) || math.IsNaN(t.Rel) {
		return fmt.Errorf("tolerance must be non-negative (abs=%g rel=%g): %w", t.Abs, t.Rel, ErrParameterBounds)
	}
	if t.Abs == 0 && t.Rel == 0 {
		return fmt.Errorf("tolerance abs and rel cannot both be zero: %w", ErrParameterBounds)
	}
	return nil
}

// Scale returns the error scale for a component whose magnitude moved from a to b.
func (t Tolerance) Scale(a, b float64) float64 {
	return t.Abs + t.Rel*math.Max(math.Abs(a), math.Abs(b))
}

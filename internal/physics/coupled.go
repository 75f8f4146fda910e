package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/coupledosc/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultAnchorK   = 10.0
	DefaultCouplingK = 8.0
)

// CoupledOscillator implements two equal masses, each tied to a wall by a
// spring of stiffness K1 and to each other by a spring of stiffness K2.
// State: [x1, v1, x2, v2]
// No damping, no forcing.
type CoupledOscillator struct {
	M  float64 // Mass of each body
	K1 float64 // Anchor spring constant
	K2 float64 // Coupling spring constant
}

func NewCoupledOscillator(m, k1, k2 float64) *CoupledOscillator {
	return &CoupledOscillator{M: m, K1: k1, K2: k2}
}

func (c *CoupledOscillator) StateDim() int { return 4 }

func (c *CoupledOscillator) Derive(state dynamo.State, _ float64) dynamo.State {
	x1, v1, x2, v2 := state[0], state[1], state[2], state[3]

	a1 := -(c.K1/c.M)*x1 + (c.K2/c.M)*(x2-x1)
	a2 := -(c.K1/c.M)*x2 + (c.K2/c.M)*(x1-x2)

	return dynamo.State{v1, a1, v2, a2}
}

// Energy implements dynamo.Hamiltonian.
func (c *CoupledOscillator) Energy(state dynamo.State) float64 {
	x1, v1, x2, v2 := state[0], state[1], state[2], state[3]
	stretch := x1 - x2

	ke := 0.5 * c.M * (v1*v1 + v2*v2)
	pe := 0.5*c.K1*(x1*x1+x2*x2) + 0.5*c.K2*stretch*stretch
	return ke + pe
}

// Validate rejects parameters for which the model is not a bounded oscillator.
func (c *CoupledOscillator) Validate() error {
	for name, v := range c.GetParams() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s=%v is not finite: %w", name, v, dynamo.ErrParameterBounds)
		}
	}
	if c.M <= 0 {
		return fmt.Errorf("mass must be positive, got %g: %w", c.M, dynamo.ErrParameterBounds)
	}
	if c.K1 < 0 {
		return fmt.Errorf("k1 must be non-negative, got %g: %w", c.K1, dynamo.ErrParameterBounds)
	}
	if c.K2 < 0 {
		return fmt.Errorf("k2 must be non-negative, got %g: %w", c.K2, dynamo.ErrParameterBounds)
	}
	return nil
}

// NormalModes returns the angular frequencies of the in-phase (x1 = x2)
// and anti-phase (x1 = -x2) modes.
func (c *CoupledOscillator) NormalModes() (inPhase, antiPhase float64) {
	inPhase = math.Sqrt(c.K1 / c.M)
	antiPhase = math.Sqrt((c.K1 + 2*c.K2) / c.M)
	return inPhase, antiPhase
}

// Exact evaluates the closed-form solution from x0 at time t.
func (c *CoupledOscillator) Exact(x0 dynamo.State, t float64) dynamo.State {
	w1, w2 := c.NormalModes()

	// Decompose into mode coordinates q = (x1+x2)/2, r = (x1-x2)/2.
	q0, qd0 := (x0[0]+x0[2])/2, (x0[1]+x0[3])/2
	r0, rd0 := (x0[0]-x0[2])/2, (x0[1]-x0[3])/2

	q, qd := harmonic(q0, qd0, w1, t)
	r, rd := harmonic(r0, rd0, w2, t)

	return dynamo.State{q + r, qd + rd, q - r, qd - rd}
}

func harmonic(x0, v0, w, t float64) (x, v float64) {
	if w == 0 {
		return x0 + v0*t, v0
	}
	s, c := math.Sincos(w * t)
	return x0*c + v0/w*s, -x0*w*s + v0*c
}

// GetParams implements dynamo.Configurable
func (c *CoupledOscillator) GetParams() map[string]float64 {
	return map[string]float64{
		"m":  c.M,
		"k1": c.K1,
		"k2": c.K2,
	}
}

// SetParam implements dynamo.Configurable
func (c *CoupledOscillator) SetParam(name string, value float64) error {
	switch name {
	case "m":
		c.M = value
	case "k1":
		c.K1 = value
	case "k2":
		c.K2 = value
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}

package analysis

import (
	"math"

	"github.com/san-kum/coupledosc/internal/physics"
)

// Modes summarises the normal-mode structure of the oscillator.
// Angular frequencies are in rad per unit time, frequencies in cycles.
type Modes struct {
	OmegaIn, OmegaAnti float64
	FreqIn, FreqAnti   float64

	// BeatPeriod is the time for the energy to move from one mass to the
	// other and back. Infinite without coupling.
	BeatPeriod float64
}

func NormalModes(osc *physics.CoupledOscillator) Modes {
	in, anti := osc.NormalModes()
	m := Modes{
		OmegaIn:    in,
		OmegaAnti:  anti,
		FreqIn:     in / (2 * math.Pi),
		FreqAnti:   anti / (2 * math.Pi),
		BeatPeriod: math.Inf(1),
	}
	if d := anti - in; d > 0 {
		m.BeatPeriod = 2 * math.Pi / d
	}
	return m
}

// ModeAmplitudes projects the initial positions onto the in-phase
// coordinate (x1+x2)/2 and the anti-phase coordinate (x1-x2)/2.
func ModeAmplitudes(x1, x2 float64) (in, anti float64) {
	return (x1 + x2) / 2, (x1 - x2) / 2
}

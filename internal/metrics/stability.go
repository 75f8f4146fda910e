package metrics

import (
	"math"

	"github.com/san-kum/coupledosc/internal/dynamo"
)

// Stability is the fraction of samples whose watched components all stay
// within ±threshold. With the plot range as threshold it tells whether the
// curves fit the axes.
type Stability struct {
	name       string
	threshold  float64
	indices    []int
	violations int
	samples    int
}

func NewStability(name string, threshold float64, indices ...int) *Stability {
	return &Stability{
		name:      name,
		threshold: threshold,
		indices:   indices,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.samples++
	for _, i := range s.indices {
		if i < len(x) && math.Abs(x[i]) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

package sim

import "github.com/san-kum/coupledosc/internal/dynamo"

type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Validator is implemented by systems that can reject their own parameters.
type Validator interface {
	Validate() error
}

type Options struct {
	Tolerance dynamo.Tolerance
	FirstStep float64 // 0 selects a step automatically
	MaxStep   float64 // 0 means bounded only by the span (fixed-step: DefaultFixedStep)
	MinStep   float64
	MaxSteps  int // accepted plus rejected attempts
}

const DefaultFixedStep = 1e-3

func DefaultOptions() Options {
	return Options{
		Tolerance: dynamo.DefaultTolerance(),
		MinStep:   1e-12,
		MaxSteps:  1_000_000,
	}
}

type Result struct {
	Series      *TimeSeries
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Rejected    int
	Evaluations int
}

package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/san-kum/coupledosc/internal/dynamo"
)

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []Metric
	log        zerolog.Logger
}

func New(dyn dynamo.System, integrator dynamo.Integrator, log zerolog.Logger) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		log:        log,
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run integrates from x0 at grid[0] to grid[len(grid)-1] and returns the
// solution sampled at every grid point. Adaptive integrators step on their
// own schedule and are resampled by cubic Hermite interpolation; fixed-step
// integrators take whole substeps between grid points.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, grid []float64, opts Options) (*Result, error) {
	if err := s.validate(x0, grid, opts); err != nil {
		return nil, err
	}

	result := &Result{
		Series: &TimeSeries{
			T:      append([]float64(nil), grid...),
			States: make([]dynamo.State, len(grid)),
		},
		Metrics: make(map[string]float64),
	}
	result.Series.States[0] = x0.Clone()

	var err error
	if adaptive, ok := s.integrator.(dynamo.AdaptiveIntegrator); ok {
		err = s.runAdaptive(ctx, adaptive, x0, grid, opts, result)
	} else {
		err = s.runFixed(ctx, x0, grid, opts, result)
	}
	if err != nil {
		return nil, err
	}

	s.observe(result)

	s.log.Debug().
		Int("samples", len(grid)).
		Int("steps", result.StepsTaken).
		Int("rejected", result.Rejected).
		Int("evals", result.Evaluations).
		Float64("energy_drift", result.EnergyDrift).
		Msg("integration finished")

	return result, nil
}

func (s *Simulator) validate(x0 dynamo.State, grid []float64, opts Options) error {
	if v, ok := s.dyn.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("initial state has %d components, system wants %d: %w", len(x0), s.dyn.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if !x0.IsValid() {
		return dynamo.ErrInvalidState
	}
	if err := validateGrid(grid); err != nil {
		return err
	}
	if math.IsInf(grid[0], 0) || math.IsInf(grid[len(grid)-1], 0) {
		return fmt.Errorf("sim: time span must be finite")
	}
	if opts.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", opts.MaxSteps)
	}
	if _, ok := s.integrator.(dynamo.AdaptiveIntegrator); ok {
		if err := opts.Tolerance.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) runAdaptive(ctx context.Context, adaptive dynamo.AdaptiveIntegrator, x0 dynamo.State, grid []float64, opts Options, result *Result) error {
	t0, t1 := grid[0], grid[len(grid)-1]
	span := t1 - t0

	maxStep := opts.MaxStep
	if maxStep <= 0 || maxStep > span {
		maxStep = span
	}

	x := x0.Clone()
	dx := s.dyn.Derive(x, t0)
	result.Evaluations++

	h := opts.FirstStep
	if h <= 0 {
		h = adaptive.InitialStep(s.dyn, x, dx, t0, span, opts.Tolerance)
		result.Evaluations++
	}
	h = math.Min(h, maxStep)

	t := t0
	next := 1
	diverged := false

	for attempts := 0; next < len(grid); attempts++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempts >= opts.MaxSteps {
			return &dynamo.SimulationError{Step: result.StepsTaken, Time: t, State: x, Wrapped: dynamo.ErrStepLimit}
		}

		last := false
		if t+h >= t1 {
			h = t1 - t
			last = true
		}
		if h < opts.MinStep && !last {
			cause := dynamo.ErrStepTooSmall
			if diverged {
				cause = dynamo.ErrUnstable
			}
			return &dynamo.SimulationError{Step: result.StepsTaken, Time: t, State: x, Wrapped: cause}
		}

		a := adaptive.Try(s.dyn, x, dx, t, h, opts.Tolerance)
		result.Evaluations += a.Evals

		diverged = !a.X.IsValid()
		if diverged || !(a.Error <= 1) {
			result.Rejected++
			h = adaptive.NextStep(h, a.Error)
			continue
		}

		tNew := t + h
		if last {
			tNew = t1
		}
		for next < len(grid) && grid[next] <= tNew {
			result.Series.States[next] = hermite(t, x, dx, tNew, a.X, a.Dx, grid[next])
			next++
		}

		t, x, dx = tNew, a.X, a.Dx
		result.StepsTaken++
		h = math.Min(adaptive.NextStep(h, a.Error), maxStep)
	}

	return nil
}

func (s *Simulator) runFixed(ctx context.Context, x0 dynamo.State, grid []float64, opts Options, result *Result) error {
	maxStep := opts.MaxStep
	if maxStep <= 0 {
		maxStep = DefaultFixedStep
	}

	x := x0.Clone()
	for i := 1; i < len(grid); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		interval := grid[i] - grid[i-1]
		substeps := int(math.Ceil(interval / maxStep))
		if result.StepsTaken+substeps > opts.MaxSteps {
			return &dynamo.SimulationError{Step: result.StepsTaken, Time: grid[i-1], State: x, Wrapped: dynamo.ErrStepLimit}
		}
		dt := interval / float64(substeps)

		t := grid[i-1]
		for j := 0; j < substeps; j++ {
			x = s.integrator.Step(s.dyn, x, t, dt)
			t += dt
		}
		result.StepsTaken += substeps
		result.Evaluations += 4 * substeps

		if !x.IsValid() {
			return &dynamo.SimulationError{Step: result.StepsTaken, Time: grid[i], State: x, Wrapped: dynamo.ErrUnstable}
		}
		result.Series.States[i] = x.Clone()
	}
	return nil
}

func (s *Simulator) observe(result *Result) {
	for _, m := range s.metrics {
		m.Reset()
	}

	series := result.Series
	h, hasEnergy := s.dyn.(dynamo.Hamiltonian)
	var e0 float64
	if hasEnergy {
		e0 = h.Energy(series.States[0])
	}

	for i, x := range series.States {
		t := series.T[i]
		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		if hasEnergy && e0 != 0 {
			drift := math.Abs(h.Energy(x)-e0) / math.Abs(e0)
			result.EnergyDrift = math.Max(result.EnergyDrift, drift)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// hermite evaluates the cubic matching values and slopes at both ends of
// the step [ta, tb] at time tq.
func hermite(ta float64, xa, dxa dynamo.State, tb float64, xb, dxb dynamo.State, tq float64) dynamo.State {
	h := tb - ta
	s := (tq - ta) / h
	s2, s3 := s*s, s*s*s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	out := make(dynamo.State, len(xa))
	for i := range xa {
		out[i] = h00*xa[i] + h10*h*dxa[i] + h01*xb[i] + h11*h*dxb[i]
	}
	return out
}

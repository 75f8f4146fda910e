package experiment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/dynamo"
	"github.com/san-kum/coupledosc/internal/integrators"
	"github.com/san-kum/coupledosc/internal/physics"
	"github.com/san-kum/coupledosc/internal/sim"
)

// State indices of the two mass positions.
const (
	X1 = 0
	X2 = 2
)

type Experiment struct {
	cfg       *config.Config
	log       zerolog.Logger
	model     *physics.CoupledOscillator
	simulator *sim.Simulator
}

func New(cfg *config.Config, log zerolog.Logger) *Experiment {
	return &Experiment{cfg: cfg, log: log}
}

// Setup builds the model, integrator and metrics named by the config.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	p := e.cfg.Physics
	e.model = physics.NewCoupledOscillator(p.Mass, p.K1, p.K2)

	integrator, err := integrators.ByName(e.cfg.Integrator)
	if err != nil {
		return err
	}

	e.simulator = sim.New(e.model, integrator, e.log)
	for _, m := range NewRegistry().DefaultMetrics(e.model, e.cfg) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := dynamo.State(e.cfg.InitialState())
	grid := sim.Linspace(e.cfg.TStart, e.cfg.TEnd, e.cfg.Samples)

	e.log.Info().
		Str("integrator", e.cfg.Integrator).
		Float64("m", e.model.M).
		Float64("k1", e.model.K1).
		Float64("k2", e.model.K2).
		Floats64("y0", x0).
		Int("samples", len(grid)).
		Msg("simulating")

	result, err := e.simulator.Run(ctx, x0, grid, Options(e.cfg))
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	return result, nil
}

// Model returns the oscillator built by Setup.
func (e *Experiment) Model() *physics.CoupledOscillator {
	return e.model
}

func Options(cfg *config.Config) sim.Options {
	opts := sim.DefaultOptions()
	opts.Tolerance = dynamo.Tolerance{Abs: cfg.Tolerance.Abs, Rel: cfg.Tolerance.Rel}
	opts.MaxStep = cfg.MaxStep
	return opts
}

// Positions extracts both mass positions as labelled traces.
func Positions(cfg *config.Config, series *sim.TimeSeries) [2]sim.Trace {
	labels := cfg.Render.Labels
	return [2]sim.Trace{
		series.Trace(labels[0], X1),
		series.Trace(labels[1], X2),
	}
}

package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/metrics"
	"github.com/san-kum/coupledosc/internal/physics"
	"github.com/san-kum/coupledosc/internal/sim"
)

type metricFactory func(osc *physics.CoupledOscillator, cfg *config.Config) sim.Metric

type Registry struct {
	metrics map[string]metricFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]metricFactory),
	}

	r.metrics["energy"] = func(osc *physics.CoupledOscillator, _ *config.Config) sim.Metric {
		return metrics.NewEnergy(osc)
	}
	r.metrics["energy_drift"] = func(osc *physics.CoupledOscillator, _ *config.Config) sim.Metric {
		return metrics.NewEnergyDrift(osc)
	}
	// Share of samples that stay inside the plotted x range.
	r.metrics["in_frame"] = func(_ *physics.CoupledOscillator, cfg *config.Config) sim.Metric {
		y := cfg.Render.YRange
		return metrics.NewStability("in_frame", min(-y.Min, y.Max), X1, X2)
	}
	r.metrics["peak_x1"] = func(_ *physics.CoupledOscillator, _ *config.Config) sim.Metric {
		return metrics.NewPeak("peak_x1", X1)
	}
	r.metrics["peak_x2"] = func(_ *physics.CoupledOscillator, _ *config.Config) sim.Metric {
		return metrics.NewPeak("peak_x2", X2)
	}

	return r
}

func (r *Registry) GetMetric(name string, osc *physics.CoupledOscillator, cfg *config.Config) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(osc, cfg), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns every registered metric in name order.
func (r *Registry) DefaultMetrics(osc *physics.CoupledOscillator, cfg *config.Config) []sim.Metric {
	names := r.ListMetrics()
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name](osc, cfg))
	}
	return out
}

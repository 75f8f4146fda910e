package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/dynamo"
)

func TestRunDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	exp := New(cfg, zerolog.Nop())
	if err := exp.Setup(); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	series := result.Series
	if series.Len() != 1000 {
		t.Fatalf("expected 1000 samples, got %d", series.Len())
	}
	if t0, t1 := series.Span(); t0 != 0 || t1 != 60 {
		t.Errorf("span = [%v, %v], want [0, 60]", t0, t1)
	}

	pos := Positions(cfg, series)
	if pos[0].Name != "Mass 1" || pos[1].Name != "Mass 2" {
		t.Errorf("labels = %q, %q", pos[0].Name, pos[1].Name)
	}
	if pos[0].Y[0] != 1.75 || pos[1].Y[0] != 0 {
		t.Errorf("initial positions = %v, %v", pos[0].Y[0], pos[1].Y[0])
	}

	if result.Metrics["in_frame"] != 1 {
		t.Errorf("default run should stay inside [-3, 3], in_frame = %v", result.Metrics["in_frame"])
	}
	if p := result.Metrics["peak_x1"]; math.Abs(p-1.75) > 1e-3 {
		t.Errorf("peak_x1 = %v, want 1.75", p)
	}
	if result.Metrics["energy_drift"] > 1e-5 {
		t.Errorf("energy drift too large: %v", result.Metrics["energy_drift"])
	}
}

func TestRunRK4MatchesRK45(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TEnd = 5
	cfg.Samples = 101

	run := func(name string) []float64 {
		c := *cfg
		c.Integrator = name
		exp := New(&c, zerolog.Nop())
		if err := exp.Setup(); err != nil {
			t.Fatal(err)
		}
		res, err := exp.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res.Series.Column(X2)
	}

	a, b := run("rk45"), run("rk4")
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-4 {
			t.Fatalf("sample %d: rk45=%v rk4=%v", i, a[i], b[i])
		}
	}
}

func TestSetupErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Integrator = "leapfrog"
	if err := New(cfg, zerolog.Nop()).Setup(); err == nil {
		t.Error("expected error for unknown integrator")
	}

	cfg = config.DefaultConfig()
	cfg.Samples = 1
	if err := New(cfg, zerolog.Nop()).Setup(); err == nil {
		t.Error("expected error for a single sample")
	}

	if _, err := New(config.DefaultConfig(), zerolog.Nop()).Run(context.Background()); err == nil {
		t.Error("expected error running without setup")
	}
}

func TestRunCanceled(t *testing.T) {
	exp := New(config.DefaultConfig(), zerolog.Nop())
	if err := exp.Setup(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exp.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunRejectsBadInitialState(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitState.V1 = math.NaN()
	exp := New(cfg, zerolog.Nop())
	if err := exp.Setup(); err != nil {
		t.Fatal(err)
	}
	if _, err := exp.Run(context.Background()); !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	names := r.ListMetrics()
	want := []string{"energy", "energy_drift", "in_frame", "peak_x1", "peak_x2"}
	if len(names) != len(want) {
		t.Fatalf("metrics = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("metric %d = %s, want %s", i, names[i], want[i])
		}
	}
	if _, err := r.GetMetric("jerk", nil, config.DefaultConfig()); err == nil {
		t.Error("expected error for unknown metric")
	}
}

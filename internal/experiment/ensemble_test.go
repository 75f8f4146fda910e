package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/san-kum/coupledosc/internal/config"
)

func setupAll(t *testing.T, names ...string) []*Experiment {
	t.Helper()
	var exps []*Experiment
	for _, name := range names {
		cfg := config.DefaultConfig()
		cfg.TEnd = 5
		cfg.Samples = 51
		cfg.Integrator = name
		e := New(cfg, zerolog.Nop())
		if err := e.Setup(); err != nil {
			t.Fatal(err)
		}
		exps = append(exps, e)
	}
	return exps
}

func TestRunAllOrder(t *testing.T) {
	exps := setupAll(t, "rk45", "rk4", "rk45")

	results, err := RunAll(context.Background(), exps...)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Identical configs are deterministic regardless of scheduling.
	a, c := results[0].Series, results[2].Series
	for i := range a.States {
		for j := range a.States[i] {
			if a.States[i][j] != c.States[i][j] {
				t.Fatalf("rk45 runs differ at sample %d component %d", i, j)
			}
		}
	}
	if results[1].StepsTaken == results[0].StepsTaken && results[1].Evaluations == results[0].Evaluations {
		t.Errorf("rk4 and rk45 results look identical, order not preserved?")
	}
}

func TestRunAllCanceled(t *testing.T) {
	exps := setupAll(t, "rk45", "rk4")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RunAll(ctx, exps...); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunAllEmpty(t *testing.T) {
	results, err := RunAll(context.Background())
	if err != nil || len(results) != 0 {
		t.Errorf("RunAll() = %v, %v", results, err)
	}
}

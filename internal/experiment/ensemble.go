package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/coupledosc/internal/sim"
	"golang.org/x/sync/errgroup"
)

// RunAll runs already set-up experiments concurrently. Results come back
// in argument order. The first failure cancels the remaining runs.
func RunAll(ctx context.Context, exps ...*Experiment) ([]*sim.Result, error) {
	results := make([]*sim.Result, len(exps))

	g, ctx := errgroup.WithContext(ctx)
	for i, e := range exps {
		g.Go(func() error {
			r, err := e.Run(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", e.cfg.Integrator, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

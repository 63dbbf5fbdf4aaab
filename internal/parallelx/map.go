// Package parallelx runs per-item work on a bounded number of goroutines.
package parallelx

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit is used when a non-positive limit is passed to Map.
func DefaultLimit() int {
	return runtime.GOMAXPROCS(0)
}

// Map applies fn to every item with at most limit calls in flight and
// returns the results in input order. The first error cancels the remaining
// work and is returned; results are discarded in that case.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, i int, item T) (R, error)) ([]R, error) {
	if limit <= 0 {
		limit = DefaultLimit()
	}
	out := make([]R, len(items))
	if len(items) == 0 {
		return out, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, i, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

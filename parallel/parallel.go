// Package parallel partitions independent queries across a worker pool and
// joins their results back in input order. The driver itself holds no
// per-query state: each worker writes only its own result slot, and any
// scratch state or cache belongs to the QueryFunc call.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// QueryFunc runs one query to completion. Implementations must not share
// mutable state across calls running concurrently on different workers;
// a neighbourhood cache in particular must stay per-call or disabled,
// since the driver offers no cross-worker synchronisation for it.
type QueryFunc[R any] func(ctx context.Context, query string) (R, error)

// Driver runs a QueryFunc across a bounded number of goroutines.
type Driver[R any] struct {
	workers int
}

// New builds a Driver with the given worker count. A workers value <= 0
// means "one worker per query, unbounded" is replaced with a sane default
// of 1 (single-threaded), matching SearchParameters.single_thread's default
// posture of not spawning extra goroutines unasked.
func New[R any](workers int) *Driver[R] {
	if workers <= 0 {
		workers = 1
	}
	return &Driver[R]{workers: workers}
}

// Run executes fn once per query, sharding work across the driver's
// worker count, and returns results in the same order as queries. The
// first error from any worker cancels the remaining work and is returned;
// results for queries that never ran are the zero value.
func (d *Driver[R]) Run(ctx context.Context, queries []string, fn QueryFunc[R]) ([]R, error) {
	results := make([]R, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			r, err := fn(gctx, q)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

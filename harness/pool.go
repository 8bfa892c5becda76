// Package harness runs independent simulation and learning trials in
// parallel and aggregates their returns into confidence estimates.
package harness

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Map runs fn over every task with at most workers running at once and
// returns the results in task order. Tasks share nothing, the first error
// cancels the context handed to the remaining ones.
func Map[T, R any](ctx context.Context, workers int, tasks []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(tasks))
	g, gCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			result, err := fn(gCtx, task)
			if err != nil {
				return fmt.Errorf("task %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Seeds derives count seeds from base, one independent stream per task.
func Seeds(base uint64, count int) []uint64 {
	source := rand.New(rand.NewSource(base))
	seeds := make([]uint64, count)
	for i := range seeds {
		seeds[i] = source.Uint64()
	}
	return seeds
}

// SplitRuns spreads total runs over workers, the first total%workers
// workers take one extra.
func SplitRuns(total, workers int) []int {
	if workers <= 0 {
		return nil
	}
	runs := make([]int, workers)
	for i := range runs {
		runs[i] = total / workers
		if i < total%workers {
			runs[i]++
		}
	}
	return runs
}

// Package workerpool provides bounded concurrent fan-out helpers.
package workerpool

import (
	"context"
	"sync"
)

// Process runs process for every item on at most workers goroutines. The first
// error cancels the shared context, stops feeding new items and is returned.
func Process[T any](ctx context.Context, workers int, items []T, process func(context.Context, T) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) && len(items) > 0 {
		workers = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
		wg       sync.WaitGroup
	)
	tasks := make(chan T)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					continue
				}
				if err := process(ctx, item); err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// Map applies fn to every item concurrently and returns the results in input
// order. On error the partial results are discarded.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	type indexed struct {
		i    int
		item T
	}
	jobs := make([]indexed, len(items))
	for i, it := range items {
		jobs[i] = indexed{i: i, item: it}
	}

	out := make([]R, len(items))
	err := Process(ctx, workers, jobs, func(ctx context.Context, j indexed) error {
		r, err := fn(ctx, j.item)
		if err != nil {
			return err
		}
		out[j.i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

package pool

import (
	"context"
	"sync"
)

// WorkerFunc processes a single item. Implementations should honor ctx and
// return its error when cancelled mid-task.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// Run processes items with numWorkers concurrent workers and returns the
// errors the workers reported, in no particular order. Feeding stops once
// ctx is cancelled; items already handed to a worker still finish.
func Run[T any](ctx context.Context, items []T, numWorkers int, work WorkerFunc[T]) []error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	tasks := make(chan T)
	failures := make(chan error, len(items))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					return
				}
				if err := work(ctx, item); err != nil {
					failures <- err
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case tasks <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)

	wg.Wait()
	close(failures)

	var errs []error
	for err := range failures {
		errs = append(errs, err)
	}
	return errs
}

package render

import (
	"context"
	"sync"
)

// runPool calls fn for every job in [0, n) on a fixed set of workers. Each
// call knows its worker index so it can write to worker-owned state without
// locks. Workers stop picking up jobs once ctx is done.
func runPool(ctx context.Context, workers, n int, fn func(worker, job int)) error {
	workers = max(1, min(workers, n))

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for job := range jobs {
				if ctx.Err() != nil {
					return
				}
				fn(worker, job)
			}
		}(w)
	}

	wg.Wait()
	return ctx.Err()
}

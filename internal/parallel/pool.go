// Package parallel provides a generic worker pool for concurrent processing.
package parallel

import "sync"

// indexed pairs a result with the position of the item that produced it.
type indexed[R any] struct {
	i int
	r R
}

// Run executes fn for each item using the given number of workers and
// returns the results in input order. The onResult callback is called
// sequentially from a single goroutine as results complete, making it
// safe to write to stdout without additional synchronization.
func Run[T any, R any](items []T, workers int, fn func(T) R, onResult func(completed, total int, result R)) []R {
	total := len(items)
	if total == 0 {
		return nil
	}

	// Clamp workers to [1, len(items)].
	workers = max(1, min(workers, total))

	results := make([]R, total)

	// Sequential fast-path.
	if workers == 1 {
		for i, item := range items {
			results[i] = fn(item)
			if onResult != nil {
				onResult(i+1, total, results[i])
			}
		}
		return results
	}

	jobs := make(chan int, total)
	done := make(chan indexed[R], total)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				done <- indexed[R]{i: i, r: fn(items[i])}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(done)
	}()

	completed := 0
	for d := range done {
		results[d.i] = d.r
		completed++
		if onResult != nil {
			onResult(completed, total, d.r)
		}
	}
	return results
}

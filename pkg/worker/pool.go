// Package worker runs a function over a slice with bounded concurrency.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// Run applies fn to every item using at most n goroutines. Results and
// errors are aligned with items by index. Items not started before ctx is
// done get ctx.Err().
func Run[T, R any](ctx context.Context, items []T, n int, fn func(context.Context, T) (R, error)) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return results, errs
	}
	if n <= 0 {
		n = 1
	}
	if n > len(items) {
		n = len(items)
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= len(items) {
					return
				}
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				results[i], errs[i] = fn(ctx, items[i])
			}
		}()
	}
	wg.Wait()
	return results, errs
}

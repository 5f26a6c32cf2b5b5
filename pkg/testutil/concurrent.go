package testutil

import (
	"errors"
	"sync"

	dErrors "consentintel/pkg/domain-errors"
	"consentintel/pkg/platform/sentinel"
)

// ConcurrentResult tallies outcomes of RunConcurrent by kind.
type ConcurrentResult struct {
	Successes int
	NotFounds int
	Errors    []error
}

func (r *ConcurrentResult) Total() int {
	return r.Successes + r.NotFounds + len(r.Errors)
}

// RunConcurrent starts n goroutines that block until all are ready, then
// calls fn in each. Not-found errors (sentinel or domain coded) are counted
// separately from unexpected ones, which are kept for assertion messages.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result ConcurrentResult
	)
	start := make(chan struct{})

	for i := range n {
		wg.Go(func() {
			<-start
			err := fn(i)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Successes++
			case errors.Is(err, sentinel.ErrNotFound), dErrors.HasCode(err, dErrors.CodeNotFound):
				result.NotFounds++
			default:
				result.Errors = append(result.Errors, err)
			}
		})
	}

	close(start)
	wg.Wait()
	return &result
}

// Package parallel provides the fork-join executor used by podcodec's parallel codecs.
//
// Codecs never reach for ambient global state: every parallel codec holds an
// Executor, which defaults to Default() and can be replaced through options.
// Results are always written back by task index, so output bytes never depend
// on worker scheduling.
package parallel

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/podcodec/errs"
)

// Executor runs indexed, independent tasks and waits for all of them.
type Executor interface {
	// Workers returns the maximum number of tasks run concurrently.
	Workers() int

	// Run calls fn(i) for every i in [0, n) and blocks until all calls return.
	//
	// Tasks may run in any order. Run returns the first non-nil error; remaining
	// tasks still run to completion because codec work has no abort path.
	Run(n int, fn func(i int) error) error
}

// Pool is a bounded Executor backed by errgroup.
//
// Each Run call bounds its own goroutines, so nested Run calls (a parallel
// chunked codec wrapping a hybrid codec wrapping a dictionary search) never
// wait on a shared limit and cannot deadlock.
type Pool struct {
	workers int
}

var _ Executor = (*Pool)(nil)

// NewPool creates an executor running at most workers tasks at once.
//
// Returns:
//   - *Pool: New executor
//   - error: ErrInvalidWorkerCount if workers < 1
func NewPool(workers int) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidWorkerCount, workers)
	}

	return &Pool{workers: workers}, nil
}

// Workers returns the concurrency bound of the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes fn for every index in [0, n).
func (p *Pool) Run(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}

	if p.workers == 1 || n == 1 {
		var firstErr error
		for i := range n {
			if err := fn(i); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		return firstErr
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := range n {
		g.Go(func() error {
			return fn(i)
		})
	}

	return g.Wait()
}

var defaultPool = sync.OnceValue(func() *Pool {
	return &Pool{workers: max(1, runtime.GOMAXPROCS(0))}
})

// Default returns the shared executor sized to GOMAXPROCS, created on first use.
func Default() Executor {
	return defaultPool()
}

var sequential = &Pool{workers: 1}

// Sequential returns an executor that runs every task on the calling goroutine in index order.
func Sequential() Executor {
	return sequential
}

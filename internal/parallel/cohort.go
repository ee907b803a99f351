// Package parallel provides the worker cohort, barrier and partitioning
// primitives that drive the contour pipeline.
//
// A cohort is a fixed set of N goroutines that all run the same routine.
// Each stage of the routine writes only to the worker's own partition, and
// the cohort meets at a Barrier before any worker reads data another worker
// wrote. No other synchronisation is needed between stages.
package parallel

import (
	"runtime"
	"sync"
)

// Cohort runs one routine on a fixed number of goroutines and joins them.
//
// Thread safety: a Cohort holds no mutable state after creation and may be
// copied; Run may be called from any goroutine.
type Cohort struct {
	// workers is the number of goroutines started by Run.
	workers int
}

// NewCohort creates a cohort with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewCohort(workers int) Cohort {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return Cohort{workers: workers}
}

// Workers returns the number of workers in the cohort.
func (c Cohort) Workers() int {
	return c.workers
}

// Run starts one goroutine per worker, calls fn with the worker id in
// [0, Workers()), and returns once every call has returned.
func (c Cohort) Run(fn func(id int)) {
	var wg sync.WaitGroup
	wg.Add(c.workers)
	for i := range c.workers {
		go func() {
			defer wg.Done()
			fn(i)
		}()
	}
	wg.Wait()
}

// NewBarrier returns a barrier sized for this cohort.
func (c Cohort) NewBarrier() *Barrier {
	return NewBarrier(c.workers)
}

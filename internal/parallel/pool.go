// Package parallel runs independent rasterization jobs on a fixed set of
// goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned by Map after Close.
var ErrPoolClosed = errors.New("parallel: pool closed")

// WorkerPool is a pool of goroutines for parallel rasterization.
//
// Jobs are handed over an unbuffered channel, so a job accepted by a
// worker always runs to completion even if the pool is closed meanwhile.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	jobs chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		jobs:    make(chan func()),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case job := <-p.jobs:
			job()
		}
	}
}

// Map calls fn(i) for every i in [0, n) on the pool's workers and waits
// for the calls it started. Dispatch stops when ctx is done or the pool
// is closed; the context error or ErrPoolClosed is returned in that case.
// Otherwise the error of the lowest failing index is returned.
func (p *WorkerPool) Map(ctx context.Context, n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrPoolClosed
	}

	errs := make([]error, n)
	var wg sync.WaitGroup
	var stopErr error

dispatch:
	for i := range n {
		wg.Add(1)
		job := func() {
			defer wg.Done()
			errs[i] = fn(i)
		}
		select {
		case p.jobs <- job:
		case <-ctx.Done():
			wg.Done()
			stopErr = ctx.Err()
			break dispatch
		case <-p.done:
			wg.Done()
			stopErr = ErrPoolClosed
			break dispatch
		}
	}
	wg.Wait()

	if stopErr != nil {
		return stopErr
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Close stops the workers after the jobs they hold finish.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

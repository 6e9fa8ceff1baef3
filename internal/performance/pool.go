// Package performance provides concurrency utilities for lattice sweeps.
package performance

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool manages a fixed set of workers for concurrent task
// execution. Lattice passes reuse one pool across layers instead of
// spawning goroutines per node.
type WorkerPool struct {
	workers    int
	taskQueue  chan func()
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	running    atomic.Bool
	tasksTotal atomic.Uint64
	tasksDone  atomic.Uint64
}

// NewWorkerPool creates a new worker pool with the specified number of
// workers. If workers is 0 or negative, it defaults to runtime.NumCPU().
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*64),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Start starts the worker pool.
func (p *WorkerPool) Start() {
	if p.running.Swap(true) {
		return // Already running
	}

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			task()
			p.tasksDone.Add(1)
		}
	}
}

// Submit submits a task to the pool, blocking while the queue is full.
// Returns false if the pool is not running.
func (p *WorkerPool) Submit(task func()) bool {
	if !p.running.Load() {
		return false
	}

	select {
	case p.taskQueue <- task:
		p.tasksTotal.Add(1)
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Stop stops the worker pool and waits for all workers to finish.
func (p *WorkerPool) Stop() {
	if !p.running.Swap(false) {
		return // Not running
	}

	p.cancel()
	close(p.taskQueue)
	p.wg.Wait()
}

// Stats returns pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Workers:    p.workers,
		Running:    p.running.Load(),
		TasksTotal: p.tasksTotal.Load(),
		TasksDone:  p.tasksDone.Load(),
	}
}

// PoolStats contains worker pool statistics.
type PoolStats struct {
	Workers    int
	Running    bool
	TasksTotal uint64
	TasksDone  uint64
}

// ParallelFor runs fn for every index in [0, n) and returns when all
// calls have finished. Indices are split into contiguous chunks, one
// per worker, so per-node work stays cache friendly. When the pool is
// nil or not running, the loop runs sequentially on the caller's
// goroutine.
func ParallelFor(pool *WorkerPool, n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if pool == nil || n < 2*pool.workers {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + pool.workers - 1) / pool.workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		wg.Add(1)
		ok := pool.Submit(func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		})
		if !ok {
			// Pool stopped underneath us; fall back inline.
			for i := lo; i < hi; i++ {
				fn(i)
			}
			wg.Done()
		}
	}
	wg.Wait()
}

package performance

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolStartStop(t *testing.T) {
	pool := NewWorkerPool(4)
	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}

	pool.Start()
	pool.Start() // idempotent

	var counter atomic.Int64
	done := make(chan struct{})
	ok := pool.Submit(func() {
		counter.Add(1)
		close(done)
	})
	if !ok {
		t.Fatal("Submit returned false on a running pool")
	}
	<-done

	pool.Stop()
	pool.Stop() // idempotent

	if counter.Load() != 1 {
		t.Errorf("task ran %d times, want 1", counter.Load())
	}
	if pool.Submit(func() {}) {
		t.Error("Submit should return false after Stop")
	}

	stats := pool.Stats()
	if stats.Running {
		t.Error("stats report running after Stop")
	}
	if stats.TasksTotal != 1 || stats.TasksDone != 1 {
		t.Errorf("stats = %+v, want 1 submitted and 1 done", stats)
	}
}

func TestWorkerPoolDefaultSize(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.Workers() <= 0 {
		t.Errorf("Workers() = %d, want positive default", pool.Workers())
	}
}

func TestParallelForCoversAllIndices(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	const n = 10_000
	hits := make([]atomic.Int32, n)
	ParallelFor(pool, n, func(i int) {
		hits[i].Add(1)
	})

	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Fatalf("index %d visited %d times, want exactly once", i, got)
		}
	}
}

func TestParallelForNilPool(t *testing.T) {
	visited := make([]bool, 100)
	ParallelFor(nil, len(visited), func(i int) {
		visited[i] = true
	})
	for i, v := range visited {
		if !v {
			t.Fatalf("index %d not visited", i)
		}
	}
}

func TestParallelForSmallNRunsInline(t *testing.T) {
	pool := NewWorkerPool(8)
	pool.Start()
	defer pool.Stop()

	// n below the dispatch threshold must run on the caller's
	// goroutine without touching the queue.
	before := pool.Stats().TasksTotal
	var sum int
	ParallelFor(pool, 5, func(i int) {
		sum += i
	})
	if sum != 10 {
		t.Errorf("sum = %d, want 10", sum)
	}
	if after := pool.Stats().TasksTotal; after != before {
		t.Errorf("inline path submitted %d tasks", after-before)
	}
}

func TestParallelForStoppedPoolFallsBack(t *testing.T) {
	pool := NewWorkerPool(2)
	// Never started: Submit fails and the chunks run inline.
	hits := make([]atomic.Int32, 64)
	ParallelFor(pool, len(hits), func(i int) {
		hits[i].Add(1)
	})
	for i := range hits {
		if hits[i].Load() != 1 {
			t.Fatalf("index %d visited %d times", i, hits[i].Load())
		}
	}
}

func TestParallelForZeroN(t *testing.T) {
	called := false
	ParallelFor(nil, 0, func(i int) { called = true })
	if called {
		t.Error("fn called for n = 0")
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := NewWorkerPool(0)
	pool.Start()
	defer pool.Stop()

	work := make([]float64, 100_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParallelFor(pool, len(work), func(j int) {
			work[j] = float64(j) * 1.0001
		})
	}
}

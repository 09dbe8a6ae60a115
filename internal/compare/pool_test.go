package compare

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Close()

	var counter atomic.Int64
	for i := 0; i < 100; i++ {
		pool.Submit(func() {
			counter.Add(1)
		})
	}
	pool.Wait()

	if got := counter.Load(); got != 100 {
		t.Errorf("executed %d jobs, want 100", got)
	}
}

func TestWorkerPoolDefaultsWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.workers <= 0 {
		t.Errorf("workers = %d, want > 0", pool.workers)
	}
}

func TestWorkerPoolStartIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Start()
	defer pool.Close()

	var counter atomic.Int64
	pool.Submit(func() { counter.Add(1) })
	pool.Wait()

	if counter.Load() != 1 {
		t.Error("job did not run exactly once")
	}
}

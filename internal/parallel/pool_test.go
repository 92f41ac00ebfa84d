package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

func TestWorkerPool_Map(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const n = 100
	out := make([]int, n)
	var calls atomic.Int64
	err := pool.Map(context.Background(), n, func(i int) error {
		calls.Add(1)
		out[i] = i * i
		return nil
	})
	if err != nil {
		t.Fatalf("Map() = %v", err)
	}
	if calls.Load() != n {
		t.Errorf("calls = %d, want %d", calls.Load(), n)
	}
	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_MapEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if err := pool.Map(context.Background(), 0, func(int) error {
		t.Error("fn called for empty Map")
		return nil
	}); err != nil {
		t.Errorf("Map(0) = %v", err)
	}
}

func TestWorkerPool_MapLowestError(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	errA := errors.New("a")
	errB := errors.New("b")
	err := pool.Map(context.Background(), 20, func(i int) error {
		switch i {
		case 7:
			return errA
		case 3:
			return errB
		}
		return nil
	})
	if !errors.Is(err, errB) {
		t.Errorf("Map() = %v, want %v", err, errB)
	}
}

func TestWorkerPool_MapCanceled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	err := pool.Map(ctx, 1000, func(int) error {
		calls.Add(1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Map() = %v, want context.Canceled", err)
	}
	if calls.Load() == 1000 {
		t.Error("canceled Map ran every job")
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after Close")
	}
	err := pool.Map(context.Background(), 3, func(int) error { return nil })
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Map() after Close = %v, want ErrPoolClosed", err)
	}
}

func TestWorkerPool_ConcurrentMap(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var total atomic.Int64
	done := make(chan error, 8)
	for range 8 {
		go func() {
			done <- pool.Map(context.Background(), 50, func(int) error {
				total.Add(1)
				return nil
			})
		}()
	}
	for range 8 {
		if err := <-done; err != nil {
			t.Fatalf("Map() = %v", err)
		}
	}
	if total.Load() != 400 {
		t.Errorf("total = %d, want 400", total.Load())
	}
}

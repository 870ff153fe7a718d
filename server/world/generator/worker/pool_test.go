package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 4})
	t.Cleanup(p.Close)

	var count atomic.Int64
	tasks := make([]Task, 100)
	for i := range tasks {
		tasks[i] = func(id Id) error {
			if id.Index() < 0 || id.Index() >= 4 {
				t.Errorf("unexpected worker index %d", id.Index())
			}
			count.Add(1)
			return nil
		}
	}
	if err := p.Run(context.Background(), tasks...); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := count.Load(); got != 100 {
		t.Fatalf("expected 100 tasks to run, got %d", got)
	}
}

func TestPoolRecoversPanics(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 2})
	t.Cleanup(p.Close)

	sentinel := errors.New("boom")
	var ran atomic.Bool
	err := p.Run(context.Background(),
		func(Id) error { panic(sentinel) },
		func(Id) error { ran.Store(true); return nil },
	)
	if !errors.Is(err, ErrTaskPanicked) || !errors.Is(err, sentinel) {
		t.Fatalf("expected panic to be reported as error wrapping sentinel, got %v", err)
	}
	if !ran.Load() {
		t.Fatalf("expected sibling task to run")
	}

	if err := p.Run(context.Background(), func(Id) error { return nil }); err != nil {
		t.Fatalf("expected pool to stay usable after a panic, got %v", err)
	}
}

func TestPoolCancelledContext(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 1})
	t.Cleanup(p.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Bool
	err := p.Run(ctx, func(Id) error { ran.Store(true); return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ran.Load() {
		t.Fatalf("expected task not to run on a cancelled context")
	}
}

func TestPoolClosed(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 1})
	p.Close()
	p.Close()
	if err := p.Run(context.Background(), func(Id) error { return nil }); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestScratchPerWorker(t *testing.T) {
	idx := NewIndexer(3)
	s := NewScratch(idx, func() []int { return make([]int, 0, 4) })
	a, b := s.Get(idx.Id(0)), s.Get(idx.Id(1))
	*a = append(*a, 1)
	if len(*b) != 0 {
		t.Fatalf("expected scratch slots to be independent")
	}
	if s.Get(idx.Id(0)) != a {
		t.Fatalf("expected the same slot for the same id")
	}
}

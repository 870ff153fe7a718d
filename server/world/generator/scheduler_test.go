package generator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"
)

// TestSchedulerMassChunkGeneration ensures that the scheduler can generate a large batch of chunks without
// stalling, with chunks generated concurrently sharing a single worker pool.
func TestSchedulerMassChunkGeneration(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	g := newGenerator(t, 4, metrics)
	s := NewScheduler(SchedulerConfig{Generator: g, Workers: 4, QueueSize: 8})
	t.Cleanup(s.Close)

	profile := NewGeneratorProfile("Flat", 42)
	radius := int32(6)
	reqs := make([]ChunkRequest, 0, (radius*2+1)*(radius*2+1))
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			reqs = append(reqs, NewChunkRequest(profile, x, z, nil))
		}
	}

	var mu sync.Mutex
	committed := make(map[int64]bool, len(reqs))
	out := OutputFunc(func(c *Chunk) error {
		mu.Lock()
		defer mu.Unlock()
		committed[ChunkIndex(c.X, c.Z)] = true
		return nil
	})

	results := s.SubmitAll(context.Background(), reqs, out)
	timeout := time.After(60 * time.Second)
	for n := 0; n < len(reqs); n++ {
		select {
		case res := <-results:
			if res.Err != nil {
				t.Fatalf("mass chunk generation failed for %v: %v", res.Request, res.Err)
			}
		case <-timeout:
			t.Fatal("mass chunk generation timed out")
		}
	}
	if _, ok := <-results; ok {
		t.Fatalf("expected results to be closed after all requests completed")
	}
	if len(committed) != len(reqs) {
		t.Fatalf("expected %d committed chunks, got %d", len(reqs), len(committed))
	}
	if snap := metrics.Snapshot(); snap.Generated != uint64(len(reqs)) {
		t.Fatalf("expected %d generated chunks, got %d", len(reqs), snap.Generated)
	}
}

func TestSchedulerMortonOrder(t *testing.T) {
	g := newGenerator(t, 2, nil)
	s := NewScheduler(SchedulerConfig{Generator: g, Workers: 1})
	t.Cleanup(s.Close)

	profile := NewGeneratorProfile("Flat", 1)
	var reqs []ChunkRequest
	for _, pos := range [][2]int32{{1, 1}, {-1, 0}, {0, 1}, {1, 0}, {0, 0}, {0, -1}} {
		reqs = append(reqs, NewChunkRequest(profile, pos[0], pos[1], nil))
	}
	var order []string
	out := OutputFunc(func(c *Chunk) error {
		order = append(order, fmt.Sprintf("%d,%d", c.X, c.Z))
		return nil
	})
	for res := range s.SubmitAll(context.Background(), reqs, out) {
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
	}

	want := make([]ChunkRequest, len(reqs))
	copy(want, reqs)
	slices.SortFunc(want, func(a, b ChunkRequest) int {
		ka, kb := mortonKey(a.Args.X, a.Args.Z), mortonKey(b.Args.X, b.Args.Z)
		if ka < kb {
			return -1
		}
		return 1
	})
	var wantOrder []string
	for _, r := range want {
		wantOrder = append(wantOrder, fmt.Sprintf("%d,%d", r.Args.X, r.Args.Z))
	}
	if !slices.Equal(order, wantOrder) {
		t.Fatalf("expected chunks in order %v, got %v", wantOrder, order)
	}
}

func TestMortonKeyNeighbours(t *testing.T) {
	if mortonKey(0, 0) >= mortonKey(1, 0) || mortonKey(1, 0) >= mortonKey(0, 1) || mortonKey(0, 1) >= mortonKey(1, 1) {
		t.Fatalf("expected Z-order within a 2x2 block")
	}
	if mortonKey(-1, -1) >= mortonKey(0, 0) {
		t.Fatalf("expected negative coordinates to sort before positive ones")
	}
}

func TestSchedulerSubmitFreezesProfile(t *testing.T) {
	g := newGenerator(t, 1, nil)
	s := NewScheduler(SchedulerConfig{Generator: g, Workers: 1})
	t.Cleanup(s.Close)

	profile := NewGeneratorProfile("Flat", 1)
	profile.SetSeed(2)
	if profile.Frozen() {
		t.Fatalf("expected new profile not to be frozen")
	}
	res := <-s.Submit(context.Background(), NewChunkRequest(profile, 0, 0, nil), OutputFunc(func(*Chunk) error { return nil }))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Request.Args.Seed != 2 {
		t.Fatalf("expected request seed 2, got %d", res.Request.Args.Seed)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected SetSeed on a frozen profile to panic")
		}
	}()
	profile.SetSeed(3)
}

func TestSchedulerAbandonsCancelled(t *testing.T) {
	g := newGenerator(t, 1, nil)
	s := NewScheduler(SchedulerConfig{Generator: g, Workers: 1})
	t.Cleanup(s.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := <-s.Submit(ctx, NewChunkRequest(NewGeneratorProfile("Flat", 1), 0, 0, nil), OutputFunc(func(*Chunk) error {
		t.Errorf("expected cancelled chunk not to be committed")
		return nil
	}))
	if !errors.Is(res.Err, ErrAbandoned) {
		t.Fatalf("expected ErrAbandoned, got %v", res.Err)
	}
}

func TestSchedulerClosed(t *testing.T) {
	g := newGenerator(t, 1, nil)
	s := NewScheduler(SchedulerConfig{Generator: g})
	s.Close()
	s.Close()
	res := <-s.Submit(context.Background(), NewChunkRequest(NewGeneratorProfile("Flat", 1), 0, 0, nil), OutputFunc(func(*Chunk) error { return nil }))
	if !errors.Is(res.Err, ErrSchedulerClosed) {
		t.Fatalf("expected ErrSchedulerClosed, got %v", res.Err)
	}
}

func TestGeneratorProfile(t *testing.T) {
	a, b := NewGeneratorProfile("", 5), NewGeneratorProfile(DefaultWorldStructureName, 5)
	if a.WorldStructureName() != DefaultWorldStructureName {
		t.Fatalf("expected default world structure, got %q", a.WorldStructureName())
	}
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Fatalf("expected equal profiles with equal hashes")
	}
	b.SetSeed(6)
	if a.Equal(b) || a.Hash() == b.Hash() {
		t.Fatalf("expected profiles with different seeds to differ")
	}
	for _, pos := range [][2]int32{{0, 0}, {-1, 7}, {1 << 30, -(1 << 30)}, {-1, -1}} {
		x, z := ChunkCoords(ChunkIndex(pos[0], pos[1]))
		if x != pos[0] || z != pos[1] {
			t.Fatalf("expected %v after packing, got %d, %d", pos, x, z)
		}
	}
	if ChunkIndex(1, 0) == ChunkIndex(0, 1) {
		t.Fatalf("expected distinct indices")
	}
}

func TestArgumentsNeeded(t *testing.T) {
	if !(Arguments{}).Needed() {
		t.Fatalf("expected nil predicate to always be needed")
	}
	args := Arguments{Index: 12, StillNeeded: func(i int64) bool { return i != 12 }}
	if args.Needed() {
		t.Fatalf("expected predicate to be polled with the chunk index")
	}
}

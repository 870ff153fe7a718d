package worker

import "fmt"

// Id identifies one worker goroutine. It is passed through scan and place calls so that implementations
// may address worker-local scratch state without locking. An Id confers no ownership over shared state.
// The zero Id identifies the first worker.
type Id struct {
	index int
}

// Index returns the index of the worker, in the range [0, Indexer.Size()).
func (id Id) Index() int {
	return id.index
}

// String ...
func (id Id) String() string {
	return fmt.Sprintf("worker#%d", id.index)
}

// Indexer hands out the Ids of a fixed number of workers.
type Indexer struct {
	size int
}

// NewIndexer returns an Indexer for size workers. size is raised to 1 if lower.
func NewIndexer(size int) *Indexer {
	return &Indexer{size: max(size, 1)}
}

// Size returns the amount of workers indexed.
func (i *Indexer) Size() int {
	return i.size
}

// Id returns the Id of the n-th worker. It panics if n is out of range.
func (i *Indexer) Id(n int) Id {
	if n < 0 || n >= i.size {
		panic(fmt.Sprintf("worker: index %d out of range [0, %d)", n, i.size))
	}
	return Id{index: n}
}

// Scratch holds one value of T per worker. A worker may freely use the value for its own Id without
// synchronisation, as long as it does not retain it across tasks.
type Scratch[T any] struct {
	slots []T
}

// NewScratch returns a Scratch holding a value for every worker of the Indexer. newFn is called once per
// worker to create the initial value.
func NewScratch[T any](i *Indexer, newFn func() T) *Scratch[T] {
	s := &Scratch[T]{slots: make([]T, i.size)}
	for n := range s.slots {
		s.slots[n] = newFn()
	}
	return s
}

// Get returns the value owned by the worker with the Id passed. Ids from a larger Indexer wrap around,
// which is only safe if such workers never run concurrently with the worker they alias.
func (s *Scratch[T]) Get(id Id) *T {
	return &s.slots[id.index%len(s.slots)]
}

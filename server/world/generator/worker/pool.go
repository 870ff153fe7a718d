package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
)

var (
	// ErrPoolClosed is returned by Pool.Run after the Pool was closed.
	ErrPoolClosed = errors.New("worker: pool closed")
	// ErrTaskPanicked is wrapped by the error returned for a task that panicked.
	ErrTaskPanicked = errors.New("worker: task panicked")
)

// Task is a unit of work executed by a Pool worker. The Id passed identifies the worker running it.
type Task func(id Id) error

// PoolConfig holds the parameters of a Pool.
type PoolConfig struct {
	// Log is the Logger used to report panicking tasks. If nil, slog.Default() is used.
	Log *slog.Logger
	// Workers is the amount of goroutines started. If 0 or lower, runtime.GOMAXPROCS(0) is used.
	Workers int
	// QueueSize is the size of the task queue. If 0 or lower, a queue twice the worker count is used.
	QueueSize int
}

func (c PoolConfig) withDefaults() PoolConfig {
	if c.Log == nil {
		c.Log = slog.Default()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.QueueSize <= 0 {
		c.QueueSize = c.Workers * 2
	}
	return c
}

// Pool runs batches of Tasks on a fixed set of goroutines, each bound to one Id of its Indexer. Tasks must
// not call Run on the Pool executing them.
type Pool struct {
	log     *slog.Logger
	indexer *Indexer

	mu     sync.RWMutex
	closed bool
	jobs   chan job
	wg     sync.WaitGroup
}

type job struct {
	task Task
	done func(err error)
}

// NewPool starts a Pool using the configuration passed.
func NewPool(conf PoolConfig) *Pool {
	conf = conf.withDefaults()
	p := &Pool{
		log:     conf.Log,
		indexer: NewIndexer(conf.Workers),
		jobs:    make(chan job, conf.QueueSize),
	}
	p.wg.Add(p.indexer.Size())
	for n := 0; n < p.indexer.Size(); n++ {
		go p.loop(p.indexer.Id(n))
	}
	return p
}

// Indexer returns the Indexer holding the Ids of the Pool's workers.
func (p *Pool) Indexer() *Indexer {
	return p.indexer
}

func (p *Pool) loop(id Id) {
	defer p.wg.Done()
	for j := range p.jobs {
		j.done(p.exec(id, j.task))
	}
}

func (p *Pool) exec(id Id, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("worker task panicked", "worker", id.index, "panic", r, "stack", string(debug.Stack()))
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrTaskPanicked, e)
				return
			}
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return task(id)
}

// Run executes all tasks passed and waits for them to finish. Tasks not yet started when ctx is cancelled
// are skipped. The errors returned by tasks are joined in task order.
func (p *Pool) Run(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		wg.Add(1)
		j := job{task: task, done: func(err error) {
			errs[i] = err
			wg.Done()
		}}
		select {
		case p.jobs <- j:
		case <-ctx.Done():
			errs[i] = ctx.Err()
			wg.Done()
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Close stops the workers of the Pool after all queued tasks finished. Close is safe to call multiple
// times.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

package generator

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// ErrSchedulerClosed is the error of requests submitted to a closed Scheduler.
var ErrSchedulerClosed = errors.New("generator: scheduler closed")

// Result is the outcome of a submitted ChunkRequest.
type Result struct {
	Request ChunkRequest
	// Err is nil if the chunk was committed. It is ErrAbandoned if the chunk was no longer needed.
	Err error
}

// Scheduler generates submitted chunks on a fixed amount of goroutines, fed from a bounded queue. A chunk
// that fails to generate is reported through its Result and never affects other chunks.
type Scheduler struct {
	log *slog.Logger
	gen *Generator

	mu     sync.RWMutex
	closed bool
	queue  chan job
	wg     sync.WaitGroup
}

type job struct {
	ctx    context.Context
	req    ChunkRequest
	out    Output
	result chan<- Result
}

// NewScheduler starts a Scheduler using the configuration passed. Close must be called to stop it.
func NewScheduler(conf SchedulerConfig) *Scheduler {
	conf = conf.withDefaults()
	s := &Scheduler{
		log:   conf.Log,
		gen:   conf.Generator,
		queue: make(chan job, conf.QueueSize),
	}
	s.wg.Add(conf.Workers)
	for range conf.Workers {
		go s.loop()
	}
	return s
}

func (s *Scheduler) loop() {
	defer s.wg.Done()
	for j := range s.queue {
		var err error
		if j.ctx.Err() != nil {
			err = ErrAbandoned
		} else {
			err = s.gen.Generate(j.ctx, j.req, j.out)
		}
		j.result <- Result{Request: j.req, Err: err}
	}
}

// Submit queues req for generation, committing the chunk to out. The profile of req is frozen. Submit
// blocks while the queue is full, until ctx is cancelled. The channel returned receives exactly one Result.
func (s *Scheduler) Submit(ctx context.Context, req ChunkRequest, out Output) <-chan Result {
	result := make(chan Result, 1)
	s.submit(ctx, req, out, result)
	return result
}

func (s *Scheduler) submit(ctx context.Context, req ChunkRequest, out Output, result chan<- Result) {
	req.Profile.freeze()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.log.Warn("chunk submitted to closed scheduler", "chunkX", req.Args.X, "chunkZ", req.Args.Z)
		result <- Result{Request: req, Err: ErrSchedulerClosed}
		return
	}
	select {
	case s.queue <- job{ctx: ctx, req: req, out: out, result: result}:
	case <-ctx.Done():
		result <- Result{Request: req, Err: ErrAbandoned}
	}
}

// SubmitAll queues all requests passed, ordered by the Morton code of their chunk coordinates so that
// neighbouring chunks are generated close together. The channel returned receives one Result per request,
// in the order they complete, and is closed afterwards.
func (s *Scheduler) SubmitAll(ctx context.Context, reqs []ChunkRequest, out Output) <-chan Result {
	ordered := slices.Clone(reqs)
	slices.SortStableFunc(ordered, func(a, b ChunkRequest) int {
		ka, kb := mortonKey(a.Args.X, a.Args.Z), mortonKey(b.Args.X, b.Args.Z)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})

	results := make(chan Result, len(ordered))
	go func() {
		var wg sync.WaitGroup
		wg.Add(len(ordered))
		for _, req := range ordered {
			inner := make(chan Result, 1)
			s.submit(ctx, req, out, inner)
			go func() {
				defer wg.Done()
				results <- <-inner
			}()
		}
		wg.Wait()
		close(results)
	}()
	return results
}

// Close stops accepting requests and waits for the queued requests to finish. Close is safe to call
// multiple times.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()
	s.wg.Wait()
}

// mortonKey interleaves the bits of the chunk coordinates passed.
func mortonKey(x, z int32) uint64 {
	return morton2(toUnsigned(x), toUnsigned(z))
}

func toUnsigned(v int32) uint32 {
	return uint32(v) ^ (1 << 31)
}

func splitBy1(x uint32) uint64 {
	x64 := uint64(x)
	x64 = (x64 | x64<<16) & 0x0000FFFF0000FFFF
	x64 = (x64 | x64<<8) & 0x00FF00FF00FF00FF
	x64 = (x64 | x64<<4) & 0x0F0F0F0F0F0F0F0F
	x64 = (x64 | x64<<2) & 0x3333333333333333
	x64 = (x64 | x64<<1) & 0x5555555555555555
	return x64
}

func morton2(x, z uint32) uint64 {
	return splitBy1(x) | splitBy1(z)<<1
}

package generator

import (
	"maps"
	"sync"
)

// Metrics tracks generation counters for observability. A nil *Metrics discards everything.
type Metrics struct {
	mu sync.Mutex

	generated, abandoned, failed uint64
	waves                        uint64
	placed                       map[string]uint64
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{placed: make(map[string]uint64)}
}

// IncGenerated increments the counter of chunks committed.
func (m *Metrics) IncGenerated() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.generated++
	m.mu.Unlock()
}

// IncAbandoned increments the counter of chunks abandoned because they were no longer needed.
func (m *Metrics) IncAbandoned() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.abandoned++
	m.mu.Unlock()
}

// IncFailed increments the counter of chunks that failed to generate.
func (m *Metrics) IncFailed() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.failed++
	m.mu.Unlock()
}

// AddStage adds the props placed and waves run by one stage of a chunk.
func (m *Metrics) AddStage(stage string, placed, waves int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.placed[stage] += uint64(placed)
	m.waves += uint64(waves)
	m.mu.Unlock()
}

// MetricsSnapshot is a copy of the counters of a Metrics.
type MetricsSnapshot struct {
	Generated, Abandoned, Failed uint64
	Waves                        uint64
	// Placed holds the amount of props placed per stage name.
	Placed map[string]uint64
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{Placed: map[string]uint64{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Generated: m.generated,
		Abandoned: m.abandoned,
		Failed:    m.failed,
		Waves:     m.waves,
		Placed:    maps.Clone(m.placed),
	}
}

package weighted

import (
	"fmt"
	"iter"
	"math"
)

// Source is a source of uniformly distributed random numbers in [0, 1). *rand.Rand implements Source.
type Source interface {
	Float64() float64
}

type entry[T any] struct {
	value  T
	weight float64
	// cumulative holds the sum of the weights of this entry and all entries before it.
	cumulative float64
}

// Map is an ordered collection of elements with a positive weight each. Elements are picked with a
// probability proportional to their weight. A Map is not safe for concurrent modification, but may be
// picked from concurrently once filled.
type Map[T any] struct {
	entries []entry[T]
}

// NewMap returns an empty Map with room for n elements.
func NewMap[T any](n int) *Map[T] {
	return &Map[T]{entries: make([]entry[T], 0, n)}
}

// Add adds an element with the weight passed. Add panics if the weight is not a finite number greater
// than 0.
func (m *Map[T]) Add(v T, weight float64) {
	if !(weight > 0) || math.IsInf(weight, 0) {
		panic(fmt.Sprintf("weighted: invalid weight %v", weight))
	}
	m.entries = append(m.entries, entry[T]{value: v, weight: weight, cumulative: m.TotalWeight() + weight})
}

// Len returns the amount of elements in the Map.
func (m *Map[T]) Len() int {
	return len(m.entries)
}

// TotalWeight returns the sum of all weights in the Map.
func (m *Map[T]) TotalWeight() float64 {
	if len(m.entries) == 0 {
		return 0
	}
	return m.entries[len(m.entries)-1].cumulative
}

// Pick selects an element using exactly one draw from r. Pick panics if the Map is empty: callers must check
// Len first.
func (m *Map[T]) Pick(r Source) T {
	if len(m.entries) == 0 {
		panic("weighted: pick from empty map")
	}
	target := r.Float64() * m.TotalWeight()
	lo, hi := 0, len(m.entries)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if m.entries[mid].cumulative > target {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return m.entries[lo].value
}

// All returns an iterator over the elements and their weights in the order they were added.
func (m *Map[T]) All() iter.Seq2[T, float64] {
	return func(yield func(T, float64) bool) {
		for _, e := range m.entries {
			if !yield(e.value, e.weight) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in the order they were added.
func (m *Map[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range m.entries {
			if !yield(e.value) {
				return
			}
		}
	}
}

// Clone returns a copy of the Map.
func (m *Map[T]) Clone() *Map[T] {
	return &Map[T]{entries: append([]entry[T](nil), m.entries...)}
}

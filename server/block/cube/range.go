package cube

import "golang.org/x/exp/constraints"

// Range is a half-open interval [Min, Max) over an ordered numeric type. It is used for delimiting
// coordinates, such as the vertical range positions are accepted in.
type Range[T constraints.Integer | constraints.Float] struct {
	Min, Max T
}

// Contains checks if v lies within the Range. Max itself is not part of the Range.
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v < r.Max
}

// Valid reports if Min does not exceed Max.
func (r Range[T]) Valid() bool {
	return r.Min <= r.Max
}

// Clamp returns v limited to [Min, Max].
func (r Range[T]) Clamp(v T) T {
	return max(r.Min, min(v, r.Max))
}

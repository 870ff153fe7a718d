package cube

import "fmt"

// Bounds is an axis-aligned box in voxel-grid space. Min and Max are both inclusive. The zero value is an
// empty Bounds, which contains no positions and acts as the identity for Encompass.
type Bounds struct {
	min, max Pos
	set      bool
}

// NewBounds returns Bounds spanning the two corners passed. The corners may be passed in any order.
func NewBounds(a, b Pos) Bounds {
	return Bounds{min: a.Min(b), max: a.Max(b), set: true}
}

// BoundsAt returns Bounds containing only the position passed.
func BoundsAt(p Pos) Bounds {
	return Bounds{min: p, max: p, set: true}
}

// Empty reports if the Bounds contain no positions at all.
func (b Bounds) Empty() bool {
	return !b.set
}

// Min returns the minimum corner of the Bounds. The result is meaningless for empty Bounds.
func (b Bounds) Min() Pos {
	return b.min
}

// Max returns the maximum corner of the Bounds. The result is meaningless for empty Bounds.
func (b Bounds) Max() Pos {
	return b.max
}

// Encompass returns the smallest Bounds containing both b and o.
func (b Bounds) Encompass(o Bounds) Bounds {
	switch {
	case !o.set:
		return b
	case !b.set:
		return o
	}
	return Bounds{min: b.min.Min(o.min), max: b.max.Max(o.max), set: true}
}

// Offset returns the Bounds translated by p. Empty Bounds stay empty.
func (b Bounds) Offset(p Pos) Bounds {
	if !b.set {
		return b
	}
	return Bounds{min: b.min.Add(p), max: b.max.Add(p), set: true}
}

// Grow returns the Bounds extended by r in both directions on every axis.
func (b Bounds) Grow(r Pos) Bounds {
	if !b.set {
		return b
	}
	r = r.Abs()
	return Bounds{min: b.min.Sub(r), max: b.max.Add(r), set: true}
}

// Contains checks if the position passed lies within the Bounds.
func (b Bounds) Contains(p Pos) bool {
	return b.set &&
		p[0] >= b.min[0] && p[0] <= b.max[0] &&
		p[1] >= b.min[1] && p[1] <= b.max[1] &&
		p[2] >= b.min[2] && p[2] <= b.max[2]
}

// ContainsBounds checks if o lies entirely within b. Empty Bounds are contained by any Bounds.
func (b Bounds) ContainsBounds(o Bounds) bool {
	if !o.set {
		return true
	}
	return b.Contains(o.min) && b.Contains(o.max)
}

// Intersects checks if b and o share at least one position.
func (b Bounds) Intersects(o Bounds) bool {
	if !b.set || !o.set {
		return false
	}
	return b.min[0] <= o.max[0] && b.max[0] >= o.min[0] &&
		b.min[1] <= o.max[1] && b.max[1] >= o.min[1] &&
		b.min[2] <= o.max[2] && b.max[2] >= o.min[2]
}

// Intersection returns the Bounds shared by b and o, or empty Bounds if they do not intersect.
func (b Bounds) Intersection(o Bounds) Bounds {
	if !b.Intersects(o) {
		return Bounds{}
	}
	return Bounds{min: b.min.Max(o.min), max: b.max.Min(o.max), set: true}
}

// Size returns the amount of positions spanned on every axis.
func (b Bounds) Size() Pos {
	if !b.set {
		return Pos{}
	}
	return b.max.Sub(b.min).Add(Pos{1, 1, 1})
}

// Volume returns the amount of positions contained in the Bounds.
func (b Bounds) Volume() int {
	s := b.Size()
	return s[0] * s[1] * s[2]
}

// String ...
func (b Bounds) String() string {
	if !b.set {
		return "Bounds(empty)"
	}
	return fmt.Sprintf("Bounds(%v -> %v)", b.min, b.max)
}

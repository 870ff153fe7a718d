package conveyor

import (
	"fmt"

	"github.com/df-mc/worldgen/server/block/cube"
)

// ContextDependency describes how far from its origin a prop may read and write, in voxels, in any
// direction. Both ranges are non-negative on every axis.
type ContextDependency struct {
	readRange, writeRange cube.Pos
}

// Empty is the ContextDependency of a prop that neither reads nor writes anything.
var Empty = ContextDependency{}

// NewContextDependency returns a ContextDependency with the ranges passed. Negative components are made
// positive.
func NewContextDependency(readRange, writeRange cube.Pos) ContextDependency {
	return ContextDependency{readRange: readRange.Abs(), writeRange: writeRange.Abs()}
}

// From returns the ContextDependency implied by read and write bounds relative to an origin. Every
// component of a range is the largest distance from the origin that the bounds reach on that axis.
func From(read, write cube.Bounds) ContextDependency {
	return ContextDependency{readRange: reach(read), writeRange: reach(write)}
}

func reach(b cube.Bounds) cube.Pos {
	if b.Empty() {
		return cube.Pos{}
	}
	return b.Min().Abs().Max(b.Max().Abs())
}

// ReadRange returns the read range of the dependency.
func (d ContextDependency) ReadRange() cube.Pos {
	return d.readRange
}

// WriteRange returns the write range of the dependency.
func (d ContextDependency) WriteRange() cube.Pos {
	return d.writeRange
}

// Max returns the component-wise maximum of d and o.
func (d ContextDependency) Max(o ContextDependency) ContextDependency {
	return ContextDependency{readRange: d.readRange.Max(o.readRange), writeRange: d.writeRange.Max(o.writeRange)}
}

// Range returns the larger of the read and write range on every axis.
func (d ContextDependency) Range() cube.Pos {
	return d.readRange.Max(d.writeRange)
}

// String ...
func (d ContextDependency) String() string {
	return fmt.Sprintf("ContextDependency(read=%v, write=%v)", d.readRange, d.writeRange)
}

// Footprint holds the absolute bounds a single placement may read and write.
type Footprint struct {
	Read, Write cube.Bounds
}

// FootprintAt returns the Footprint of a placement at origin with relative read and write bounds.
func FootprintAt(origin cube.Pos, read, write cube.Bounds) Footprint {
	return Footprint{Read: read.Offset(origin), Write: write.Offset(origin)}
}

// Conflicts checks if two placements may not run concurrently: either writes where the other reads or
// writes.
func Conflicts(a, b Footprint) bool {
	return a.Write.Intersects(b.Write) || a.Write.Intersects(b.Read) || a.Read.Intersects(b.Write)
}

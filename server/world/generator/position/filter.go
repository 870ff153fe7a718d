package position

import (
	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/density"
	"github.com/go-gl/mathgl/mgl64"
)

// SimpleHorizontal forwards the positions of its inner Provider whose Y lies within a vertical range.
type SimpleHorizontal struct {
	RangeY cube.Range[float64]
	Inner  Provider
}

// PositionsIn ...
func (s SimpleHorizontal) PositionsIn(ctx Context) {
	s.Inner.PositionsIn(ctx.WithConsumer(func(pos mgl64.Vec3) {
		if s.RangeY.Contains(pos.Y()) {
			ctx.Consumer(pos)
		}
	}))
}

// Offset moves every position of its inner Provider by Delta. The inner Provider is enumerated in the
// bounds moved by -Delta, so that Offset produces exactly the moved positions lying within ctx.Bounds.
type Offset struct {
	Delta cube.Pos
	Inner Provider
}

// PositionsIn ...
func (o Offset) PositionsIn(ctx Context) {
	if ctx.Bounds.Empty() {
		return
	}
	delta := o.Delta.Vec3()
	inner := ctx.WithBounds(ctx.Bounds.Offset(cube.Pos{}.Sub(o.Delta)))
	o.Inner.PositionsIn(inner.WithConsumer(func(pos mgl64.Vec3) {
		ctx.Consumer(pos.Add(delta))
	}))
}

// DensityFilter forwards the positions of its inner Provider at which Density is greater than Threshold.
type DensityFilter struct {
	Density   density.Density
	Threshold float64
	Inner     Provider
}

// PositionsIn ...
func (d DensityFilter) PositionsIn(ctx Context) {
	d.Inner.PositionsIn(ctx.WithConsumer(func(pos mgl64.Vec3) {
		if d.Density.Value(pos) > d.Threshold {
			ctx.Consumer(pos)
		}
	}))
}

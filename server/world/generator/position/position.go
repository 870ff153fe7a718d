// Package position implements providers of candidate positions for prop placement. Providers push
// positions to a consumer rather than returning them, so that filters can wrap an inner provider without
// materialising intermediate lists. Providers hold no state after construction: calling PositionsIn twice
// with the same Context enumerates the same positions in the same order.
package position

import (
	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/go-gl/mathgl/mgl64"
)

// Provider enumerates candidate positions within the bounds of a Context.
type Provider interface {
	// PositionsIn passes every position of the Provider that lies within ctx.Bounds to ctx.Consumer.
	PositionsIn(ctx Context)
}

// Context holds the parameters of a single enumeration. It is passed by value and never changed after it
// is created: filters derive a new Context using WithConsumer.
type Context struct {
	// Bounds is the voxel region positions are enumerated in. A position p lies within Bounds if the voxel
	// holding it, cube.PosFromVec3(p), does.
	Bounds cube.Bounds
	// Consumer is called for every position enumerated.
	Consumer func(pos mgl64.Vec3)
	// Worker is the worker enumerating the positions.
	Worker worker.Id
}

// WithConsumer returns a copy of the Context with the Consumer replaced.
func (ctx Context) WithConsumer(fn func(pos mgl64.Vec3)) Context {
	ctx.Consumer = fn
	return ctx
}

// WithBounds returns a copy of the Context with the Bounds replaced.
func (ctx Context) WithBounds(b cube.Bounds) Context {
	ctx.Bounds = b
	return ctx
}

// Contains checks if the position passed lies within the Bounds of the Context.
func (ctx Context) Contains(pos mgl64.Vec3) bool {
	return ctx.Bounds.Contains(cube.PosFromVec3(pos))
}

// None is a Provider that never produces positions.
type None struct{}

// PositionsIn ...
func (None) PositionsIn(Context) {}

// List is a Provider of a fixed set of positions, produced in the order they are listed.
type List []mgl64.Vec3

// PositionsIn ...
func (l List) PositionsIn(ctx Context) {
	for _, pos := range l {
		if ctx.Contains(pos) {
			ctx.Consumer(pos)
		}
	}
}

// Union is a Provider producing the positions of each of its Providers in turn.
type Union []Provider

// PositionsIn ...
func (u Union) PositionsIn(ctx Context) {
	for _, p := range u {
		p.PositionsIn(ctx)
	}
}

// Collect returns all positions p produces within ctx.Bounds. The Consumer of ctx is ignored.
func Collect(p Provider, ctx Context) []mgl64.Vec3 {
	var positions []mgl64.Vec3
	p.PositionsIn(ctx.WithConsumer(func(pos mgl64.Vec3) {
		positions = append(positions, pos)
	}))
	return positions
}

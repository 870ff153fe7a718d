package prop

import (
	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/seed"
	"github.com/df-mc/worldgen/server/world/generator/weighted"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/voxel"
)

// Weighted places one of its children, picked at random with a probability proportional to its weight.
// The pick only depends on the seed and the scanned position.
type Weighted struct {
	footprint
	children *weighted.Map[Prop]
	seed     seed.Generator
}

// NewWeighted returns a Weighted picking from the children in m. The Map is copied. A Weighted with no
// children never places anything.
func NewWeighted(m *weighted.Map[Prop], s int64) *Weighted {
	m = m.Clone()
	var children []Prop
	for c := range m.Values() {
		children = append(children, c)
	}
	return &Weighted{footprint: encompass(children), children: m, seed: seed.New(s)}
}

// Pick returns the child picked at the position passed. ok is false if the Weighted has no children.
func (w *Weighted) Pick(pos cube.Pos) (p Prop, ok bool) {
	if w.children.Len() == 0 {
		return nil, false
	}
	return w.children.Pick(w.seed.RandAt(int64(pos[0]), int64(pos[1]), int64(pos[2]))), true
}

// Scan ...
func (w *Weighted) Scan(pos cube.Pos, space voxel.Reader, id worker.Id) ScanResult {
	c, ok := w.Pick(pos)
	if !ok {
		return &childResult{owner: w}
	}
	return &childResult{owner: w, child: c, res: c.Scan(pos, space, id)}
}

// Place ...
func (w *Weighted) Place(ctx Context) {
	CheckResult(w, ctx.Result)
	ctx.Result.(*childResult).place(ctx)
}

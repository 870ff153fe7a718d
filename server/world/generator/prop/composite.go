package prop

import (
	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/conveyor"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/voxel"
)

// noProp is the Prop returned by NoProp.
type noProp struct{}

// negative is the result shared by every scan of the NoProp.
type negative struct{}

var (
	none     = &noProp{}
	noResult = &negative{}
)

// NoProp returns the Prop that never places anything. Its bounds are empty and all its scans return the
// same negative ScanResult. It replaces props that are skipped or failed to build.
func NoProp() Prop {
	return none
}

// Negative ...
func (*negative) Negative() bool { return true }

// Prop ...
func (*negative) Prop() Prop { return none }

// Scan ...
func (*noProp) Scan(cube.Pos, voxel.Reader, worker.Id) ScanResult { return noResult }

// Place ...
func (p *noProp) Place(ctx Context) {
	CheckResult(p, ctx.Result)
}

// ContextDependency ...
func (*noProp) ContextDependency() conveyor.ContextDependency { return conveyor.Empty }

// ReadBounds ...
func (*noProp) ReadBounds() cube.Bounds { return cube.Bounds{} }

// WriteBounds ...
func (*noProp) WriteBounds() cube.Bounds { return cube.Bounds{} }

// Offset places a child Prop at a fixed offset from the scanned position.
type Offset struct {
	footprint
	offset cube.Pos
	child  Prop
}

// NewOffset returns an Offset placing child at offset from every scanned position.
func NewOffset(offset cube.Pos, child Prop) *Offset {
	return &Offset{
		footprint: footprintOf(child.ReadBounds().Offset(offset), child.WriteBounds().Offset(offset)),
		offset:    offset,
		child:     child,
	}
}

// childResult is the ScanResult of composite props forwarding the result of a single child.
type childResult struct {
	owner Prop
	// child is nil if no child was selected.
	child Prop
	res   ScanResult
}

// Negative ...
func (r *childResult) Negative() bool { return r.res == nil || r.res.Negative() }

// Prop ...
func (r *childResult) Prop() Prop { return r.owner }

// Child returns the child Prop selected and its ScanResult. ok is false if no child was selected.
func (r *childResult) Child() (p Prop, res ScanResult, ok bool) {
	return r.child, r.res, r.res != nil
}

func (r *childResult) place(ctx Context) {
	if r.Negative() {
		return
	}
	r.child.Place(ctx.WithResult(r.res))
}

// Scan ...
func (o *Offset) Scan(pos cube.Pos, space voxel.Reader, id worker.Id) ScanResult {
	return &childResult{owner: o, child: o.child, res: o.child.Scan(pos.Add(o.offset), space, id)}
}

// Place ...
func (o *Offset) Place(ctx Context) {
	CheckResult(o, ctx.Result)
	ctx.Result.(*childResult).place(ctx)
}

// Queue places the first of its children that accepts the scanned position. Children are scanned in the
// order they were passed and scanning stops at the first non-negative result.
type Queue struct {
	footprint
	children []Prop
}

// NewQueue returns a Queue of the children passed.
func NewQueue(children ...Prop) *Queue {
	children = append([]Prop(nil), children...)
	return &Queue{footprint: encompass(children), children: children}
}

// Scan ...
func (q *Queue) Scan(pos cube.Pos, space voxel.Reader, id worker.Id) ScanResult {
	for _, c := range q.children {
		if res := c.Scan(pos, space, id); !res.Negative() {
			return &childResult{owner: q, child: c, res: res}
		}
	}
	return &childResult{owner: q}
}

// Place ...
func (q *Queue) Place(ctx Context) {
	CheckResult(q, ctx.Result)
	ctx.Result.(*childResult).place(ctx)
}

// Union places all of its children that accept the scanned position.
type Union struct {
	footprint
	children []Prop
}

// NewUnion returns a Union of the children passed.
func NewUnion(children ...Prop) *Union {
	children = append([]Prop(nil), children...)
	return &Union{footprint: encompass(children), children: children}
}

// unionResult holds the non-negative results of the children of a Union, in child order.
type unionResult struct {
	owner    *Union
	indices  []int
	children []ScanResult
}

// Negative ...
func (r *unionResult) Negative() bool { return len(r.children) == 0 }

// Prop ...
func (r *unionResult) Prop() Prop { return r.owner }

// Scan ...
func (u *Union) Scan(pos cube.Pos, space voxel.Reader, id worker.Id) ScanResult {
	r := &unionResult{owner: u}
	for i, c := range u.children {
		if res := c.Scan(pos, space, id); !res.Negative() {
			r.indices = append(r.indices, i)
			r.children = append(r.children, res)
		}
	}
	return r
}

// Place ...
func (u *Union) Place(ctx Context) {
	CheckResult(u, ctx.Result)
	r := ctx.Result.(*unionResult)
	for i, res := range r.children {
		u.children[r.indices[i]].Place(ctx.WithResult(res))
	}
}

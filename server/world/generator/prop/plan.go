package prop

import (
	"slices"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/material"
)

// Materials is a set of materials a leaf prop accepts, for example as ground or as replaceable voxels.
type Materials []material.Material

// Contains checks if m is in the set.
func (s Materials) Contains(m material.Material) bool {
	return slices.Contains(s, m)
}

// Write is a single voxel write of a Plan.
type Write struct {
	Pos      cube.Pos
	Material material.Material
}

// Plan holds the voxel writes and entity spawns a leaf prop decided on while scanning. Writes are applied
// in order, so a later Write to the same position wins.
type Plan struct {
	Writes []Write
	Spawns []Spawn
}

// Empty checks if the Plan has no effect.
func (p Plan) Empty() bool {
	return len(p.Writes) == 0 && len(p.Spawns) == 0
}

// planResult is the ScanResult of leaf props. It is negative if the Plan is empty.
type planResult struct {
	owner Prop
	plan  Plan
}

// Negative ...
func (r *planResult) Negative() bool { return r.plan.Empty() }

// Prop ...
func (r *planResult) Prop() Prop { return r.owner }

// Plan returns the Plan held by the result.
func (r *planResult) Plan() Plan { return r.plan }

// planner collects the Plan of a leaf prop scanned at an origin. Writes outside the write bounds of the
// prop are dropped.
type planner struct {
	origin cube.Pos
	write  cube.Bounds
	plan   Plan
}

func newPlanner(origin cube.Pos, write cube.Bounds) *planner {
	return &planner{origin: origin, write: write.Offset(origin)}
}

func (p *planner) set(pos cube.Pos, m material.Material) {
	if p.write.Contains(pos) {
		p.plan.Writes = append(p.plan.Writes, Write{Pos: pos, Material: m})
	}
}

func (p *planner) spawn(s Spawn) {
	p.plan.Spawns = append(p.plan.Spawns, s)
}

func (p *planner) result(owner Prop) ScanResult {
	return &planResult{owner: owner, plan: p.plan}
}

// placePlan applies the Plan of a planResult produced by p.
func placePlan(p Prop, ctx Context) {
	CheckResult(p, ctx.Result)
	r := ctx.Result.(*planResult)
	for _, w := range r.plan.Writes {
		ctx.Space.SetMaterial(w.Pos, w.Material)
	}
	if ctx.Entities == nil {
		return
	}
	for _, s := range r.plan.Spawns {
		ctx.Entities.Spawn(s)
	}
}

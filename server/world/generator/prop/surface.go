package prop

import (
	"fmt"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/df-mc/worldgen/server/world/voxel"
)

// Surface moves its child down onto the ground. Starting at the scanned position, it searches up to
// ScanRange voxels downwards for the first non-empty voxel. If that voxel is ground, the child is scanned on
// top of it. Any other material, or not finding anything, rejects the position.
type Surface struct {
	footprint
	child     Prop
	scanRange int
	ground    Materials
}

// NewSurface returns a Surface placing child on top of any of the ground materials passed.
func NewSurface(child Prop, scanRange int, ground Materials) (*Surface, error) {
	if scanRange < 0 {
		return nil, fmt.Errorf("prop: surface scan range must not be negative, got %d", scanRange)
	}
	if len(ground) == 0 {
		return nil, fmt.Errorf("prop: surface must have at least one ground material")
	}
	// The child may end up anywhere between the scanned position and scanRange voxels below it.
	down := cube.Pos{0, -scanRange, 0}
	read := child.ReadBounds().Encompass(child.ReadBounds().Offset(down)).
		Encompass(cube.NewBounds(cube.Pos{0, -scanRange - 1, 0}, cube.Pos{}))
	write := child.WriteBounds().Encompass(child.WriteBounds().Offset(down))
	return &Surface{footprint: footprintOf(read, write), child: child, scanRange: scanRange, ground: ground}, nil
}

// Scan ...
func (s *Surface) Scan(pos cube.Pos, space voxel.Reader, id worker.Id) ScanResult {
	for k := 0; k <= s.scanRange; k++ {
		below := pos.Sub(cube.Pos{0, k + 1, 0})
		m := space.Material(below)
		if m == material.Empty {
			continue
		}
		if !s.ground.Contains(m) {
			break
		}
		return &childResult{owner: s, child: s.child, res: s.child.Scan(pos.Sub(cube.Pos{0, k, 0}), space, id)}
	}
	return &childResult{owner: s}
}

// Place ...
func (s *Surface) Place(ctx Context) {
	CheckResult(s, ctx.Result)
	ctx.Result.(*childResult).place(ctx)
}

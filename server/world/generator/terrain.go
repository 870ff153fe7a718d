package generator

import (
	"context"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/asset"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/df-mc/worldgen/server/world/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

// fillTerrain fills every column of buf with the terrain passed. Rows of columns are filled concurrently.
func (g *Generator) fillTerrain(ctx context.Context, t asset.Terrain, buf *voxel.Buffer) error {
	lo, hi := buf.Bounds().Min(), buf.Bounds().Max()
	tasks := make([]worker.Task, 0, hi[0]-lo[0]+1)
	for x := lo[0]; x <= hi[0]; x++ {
		tasks = append(tasks, func(worker.Id) error {
			for z := lo[2]; z <= hi[2]; z++ {
				fillColumn(t, buf, x, z)
			}
			return nil
		})
	}
	return g.pool.Run(ctx, tasks...)
}

// fillColumn shapes a single column. Voxels with a positive density are solid, others up to the sea level
// are filled with fluid. The highest solid voxel is then covered with the top material followed by filler,
// or only with filler if it lies below the fluid surface.
func fillColumn(t asset.Terrain, buf *voxel.Buffer, x, z int) {
	surface, found := 0, false
	for y := t.Height.Min; y < t.Height.Max; y++ {
		pos := cube.Pos{x, y, z}
		switch {
		case y == t.Height.Min && t.Bedrock != material.Empty:
			buf.SetMaterial(pos, t.Bedrock)
		case t.Density.Value(mgl64.Vec3{float64(x), float64(y), float64(z)}) > 0:
			buf.SetMaterial(pos, t.Solid)
			surface, found = y, true
		case y <= t.SeaLevel:
			buf.SetMaterial(pos, t.Fluid)
		}
	}
	if !found {
		return
	}

	top := t.Top
	if buf.Material(cube.Pos{x, surface + 1, z}) != material.Empty {
		top = t.Filler
	}
	cover := func(y int, m material.Material) {
		pos := cube.Pos{x, y, z}
		if m != material.Empty && buf.Material(pos) == t.Solid {
			buf.SetMaterial(pos, m)
		}
	}
	cover(surface, top)
	for y := surface - 1; y >= surface-t.FillerDepth; y-- {
		cover(y, t.Filler)
	}
}

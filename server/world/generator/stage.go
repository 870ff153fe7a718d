package generator

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/asset"
	"github.com/df-mc/worldgen/server/world/generator/conveyor"
	"github.com/df-mc/worldgen/server/world/generator/position"
	"github.com/df-mc/worldgen/server/world/generator/prop"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

// minBatch is the smallest amount of placements handed to a worker as a single task.
const minBatch = 16

// runStage places the prop of a stage at every position within region. Placements are split into waves so
// that no two placements of a wave touch each other's footprint. Waves run one after another, so a placement
// always sees the voxels written by conflicting placements enumerated before it, regardless of the amount
// of workers.
func (g *Generator) runStage(ctx context.Context, req ChunkRequest, st asset.Stage, region cube.Bounds, buf *voxel.Buffer, sink prop.EntitySink) error {
	p := st.Prop
	if p == prop.NoProp() {
		return nil
	}

	var positions []mgl64.Vec3
	if err := g.pool.Run(ctx, func(id worker.Id) error {
		positions = position.Collect(st.Positions, position.Context{Bounds: region, Worker: id})
		return nil
	}); err != nil {
		return err
	}

	planner := conveyor.NewPlanner(g.cellSize, len(positions))
	read, write := p.ReadBounds(), p.WriteBounds()
	var waves [][]cube.Pos
	for _, v := range positions {
		origin := cube.PosFromVec3(v)
		w := planner.Assign(conveyor.FootprintAt(origin, read, write))
		for len(waves) <= w {
			waves = append(waves, nil)
		}
		waves[w] = append(waves[w], origin)
	}

	var placed atomic.Int64
	for _, wave := range waves {
		if err := checkpoint(ctx, req); err != nil {
			return err
		}
		if err := g.pool.Run(ctx, g.placeTasks(p, wave, buf, sink, &placed)...); err != nil {
			return err
		}
	}
	g.metrics.AddStage(st.Name, int(placed.Load()), len(waves))
	return nil
}

// placeTasks splits the origins of a wave into tasks that scan and place p at each of them.
func (g *Generator) placeTasks(p prop.Prop, origins []cube.Pos, buf *voxel.Buffer, sink prop.EntitySink, placed *atomic.Int64) []worker.Task {
	workers := g.pool.Indexer().Size()
	size := max(minBatch, (len(origins)+workers-1)/workers)
	tasks := make([]worker.Task, 0, len(origins)/size+1)
	for batch := range slices.Chunk(origins, size) {
		tasks = append(tasks, func(id worker.Id) error {
			var n int64
			for _, origin := range batch {
				res := p.Scan(origin, buf, id)
				if res.Negative() {
					continue
				}
				p.Place(prop.Context{Result: res, Space: buf, Entities: sink, Worker: id})
				n++
			}
			placed.Add(n)
			return nil
		})
	}
	return tasks
}

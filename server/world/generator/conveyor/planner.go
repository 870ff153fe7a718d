package conveyor

import (
	"github.com/brentp/intintmap"
	"github.com/df-mc/worldgen/server/block/cube"
)

// DefaultCellSize is the edge length of the cells the Planner tracks footprints in.
const DefaultCellSize = 4

// Planner assigns placements to waves. Placements in the same wave never conflict and may run concurrently.
// Placements that conflict always run in the order they were assigned, so the result of placing all waves
// in order equals placing every placement sequentially. Footprints are tracked per cell, which may
// serialise placements that are close but do not actually overlap.
type Planner struct {
	cell int
	// lastWrite and lastRead map a packed cell coordinate to one more than the highest wave that
	// writes/reads the cell.
	lastWrite, lastRead *intintmap.Map
	waves               int
}

// NewPlanner returns a Planner using cells with an edge length of cellSize. expected is a hint for the
// amount of cells touched.
func NewPlanner(cellSize, expected int) *Planner {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	expected = max(expected, 64)
	return &Planner{
		cell:      cellSize,
		lastWrite: intintmap.New(expected, 0.6),
		lastRead:  intintmap.New(expected, 0.6),
	}
}

// Assign returns the earliest wave the placement with the Footprint passed may run in, given all placements
// assigned before.
func (p *Planner) Assign(f Footprint) int {
	wave := int64(0)
	p.cells(f.Write, func(key int64) {
		if v, ok := p.lastWrite.Get(key); ok {
			wave = max(wave, v)
		}
		if v, ok := p.lastRead.Get(key); ok {
			wave = max(wave, v)
		}
	})
	p.cells(f.Read, func(key int64) {
		if v, ok := p.lastWrite.Get(key); ok {
			wave = max(wave, v)
		}
	})

	next := wave + 1
	p.cells(f.Write, func(key int64) {
		if v, ok := p.lastWrite.Get(key); !ok || v < next {
			p.lastWrite.Put(key, next)
		}
	})
	p.cells(f.Read, func(key int64) {
		if v, ok := p.lastRead.Get(key); !ok || v < next {
			p.lastRead.Put(key, next)
		}
	})
	p.waves = max(p.waves, int(next))
	return int(wave)
}

// Waves returns the amount of waves used by the placements assigned so far.
func (p *Planner) Waves() int {
	return p.waves
}

func (p *Planner) cells(b cube.Bounds, f func(key int64)) {
	if b.Empty() {
		return
	}
	lo, hi := b.Min(), b.Max()
	for x := cube.FloorDiv(lo[0], p.cell); x <= cube.FloorDiv(hi[0], p.cell); x++ {
		for y := cube.FloorDiv(lo[1], p.cell); y <= cube.FloorDiv(hi[1], p.cell); y++ {
			for z := cube.FloorDiv(lo[2], p.cell); z <= cube.FloorDiv(hi[2], p.cell); z++ {
				f(pack(x, y, z))
			}
		}
	}
}

// pack packs a cell coordinate into an int64 using 21 bits per axis. Distant cells may share a key, which
// only makes the Planner more conservative.
func pack(x, y, z int) int64 {
	const mask = 1<<21 - 1
	return int64(x&mask)<<42 | int64(y&mask)<<21 | int64(z&mask)
}

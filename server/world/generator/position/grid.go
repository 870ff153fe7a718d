package position

import (
	"fmt"
	"math"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/seed"
	"github.com/go-gl/mathgl/mgl64"
)

// Grid is a Provider of one position per cell of a horizontal mesh. Each position is moved away from its
// cell corner by a jitter derived from the seed and the cell, so the positions produced never depend on
// the bounds they are enumerated in.
type Grid struct {
	spacing int
	jitter  float64
	y       float64
	seed    seed.Generator
}

// NewGrid returns a Grid with cells spacing voxels wide, placing positions at height y. jitter is the
// fraction of a cell in [0, 1] a position may be moved along the X and Z axes.
func NewGrid(spacing int, jitter, y float64, s seed.Generator) (Grid, error) {
	if spacing <= 0 {
		return Grid{}, fmt.Errorf("position: grid spacing must be greater than 0, got %d", spacing)
	}
	if math.IsNaN(jitter) || jitter < 0 || jitter > 1 {
		return Grid{}, fmt.Errorf("position: grid jitter must be in [0, 1], got %v", jitter)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return Grid{}, fmt.Errorf("position: grid height must be finite")
	}
	return Grid{spacing: spacing, jitter: jitter, y: y, seed: s}, nil
}

// PositionsIn ...
func (g Grid) PositionsIn(ctx Context) {
	if ctx.Bounds.Empty() {
		return
	}
	lo, hi := ctx.Bounds.Min(), ctx.Bounds.Max()
	if int(math.Floor(g.y)) < lo[1] || int(math.Floor(g.y)) > hi[1] {
		return
	}
	for cx := cube.FloorDiv(lo[0], g.spacing); cx <= cube.FloorDiv(hi[0], g.spacing); cx++ {
		for cz := cube.FloorDiv(lo[2], g.spacing); cz <= cube.FloorDiv(hi[2], g.spacing); cz++ {
			if pos := g.cell(cx, cz); ctx.Contains(pos) {
				ctx.Consumer(pos)
			}
		}
	}
}

func (g Grid) cell(cx, cz int) mgl64.Vec3 {
	x, z := float64(cx*g.spacing), float64(cz*g.spacing)
	if g.jitter > 0 {
		r := g.seed.RandAt(int64(cx), 0, int64(cz))
		span := g.jitter * float64(g.spacing)
		x += math.Floor(r.Float64() * span)
		z += math.Floor(r.Float64() * span)
	}
	return mgl64.Vec3{x, g.y, z}
}

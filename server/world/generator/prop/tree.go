package prop

import (
	"fmt"
	"math/rand/v2"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/seed"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/df-mc/worldgen/server/world/voxel"
)

// TreeKind is the shape of a Tree.
type TreeKind uint8

const (
	// TreeOak is a small tree with a rounded top.
	TreeOak TreeKind = iota
	// TreeBirch is a slightly taller version of TreeOak. One in 39 birches grows five voxels taller.
	TreeBirch
	// TreeSpruce is a tall tree with a conical top of alternating rings.
	TreeSpruce
)

// String ...
func (k TreeKind) String() string {
	switch k {
	case TreeOak:
		return "oak"
	case TreeBirch:
		return "birch"
	case TreeSpruce:
		return "spruce"
	}
	return fmt.Sprintf("TreeKind(%d)", uint8(k))
}

// TreeConfig holds the parameters of a Tree.
type TreeConfig struct {
	Kind TreeKind
	// Log and Leaves are the materials of the trunk and the top.
	Log, Leaves material.Material
	// Soil holds the materials a tree may grow on. The soil below the trunk is replaced with Dirt.
	Soil Materials
	Dirt material.Material
	// Seed is the seed the shape of the tree is derived from.
	Seed int64
}

// Tree grows a tree on top of soil at the scanned position. A tree only grows if the space it would grow
// into holds nothing but air and leaves.
type Tree struct {
	footprint
	conf TreeConfig
	seed seed.Generator
}

// treeRadius and treeHeight bound the voxels any tree may read or write relative to its origin.
const (
	treeRadius = 3
	treeHeight = 13
)

// NewTree returns a Tree using the configuration passed.
func NewTree(conf TreeConfig) (*Tree, error) {
	if conf.Kind > TreeSpruce {
		return nil, fmt.Errorf("prop: unknown tree kind %v", conf.Kind)
	}
	if len(conf.Soil) == 0 {
		return nil, fmt.Errorf("prop: tree must have at least one soil material")
	}
	b := cube.NewBounds(cube.Pos{-treeRadius, -1, -treeRadius}, cube.Pos{treeRadius, treeHeight, treeRadius})
	return &Tree{footprint: footprintOf(b, b), conf: conf, seed: seed.New(conf.Seed)}, nil
}

// overridable checks if a tree may grow into a voxel holding m.
func (t *Tree) overridable(m material.Material) bool {
	return m == material.Empty || m == t.conf.Leaves
}

// Scan ...
func (t *Tree) Scan(pos cube.Pos, space voxel.Reader, _ worker.Id) ScanResult {
	p := newPlanner(pos, t.write)
	if !t.conf.Soil.Contains(space.Material(pos.Sub(cube.Pos{0, 1, 0}))) {
		return p.result(t)
	}
	r := t.seed.RandAt(int64(pos[0]), int64(pos[1]), int64(pos[2]))
	g := treeGrowth{t: t, p: p, space: space, pos: pos, r: r}
	switch t.conf.Kind {
	case TreeOak:
		if !g.canGrow(7) {
			return p.result(t)
		}
		height := r.IntN(3) + 4
		g.basicTop(height)
		g.trunk(height - 1)
	case TreeBirch:
		if !g.canGrow(7) {
			return p.result(t)
		}
		height := r.IntN(3) + 5
		if r.IntN(39) == 0 {
			height += 5
		}
		g.basicTop(height)
		g.trunk(height - 1)
	case TreeSpruce:
		if !g.canGrow(10) {
			return p.result(t)
		}
		g.spruce()
	}
	return p.result(t)
}

// Place ...
func (t *Tree) Place(ctx Context) {
	placePlan(t, ctx)
}

// treeGrowth holds the state of growing a single tree while scanning.
type treeGrowth struct {
	t     *Tree
	p     *planner
	space voxel.Reader
	pos   cube.Pos
	r     *rand.Rand
}

func (g treeGrowth) canGrow(height int) bool {
	radius := 0
	for yy := 0; yy < height+3; yy++ {
		if yy == 1 || yy == height {
			radius++
		}
		for xx := -radius; xx <= radius; xx++ {
			for zz := -radius; zz <= radius; zz++ {
				if !g.t.overridable(g.space.Material(g.pos.Add(cube.Pos{xx, yy, zz}))) {
					return false
				}
			}
		}
	}
	return true
}

func (g treeGrowth) trunk(height int) {
	g.p.set(g.pos.Sub(cube.Pos{0, 1, 0}), g.t.conf.Dirt)
	for y := 0; y < height; y++ {
		p := g.pos.Add(cube.Pos{0, y, 0})
		if g.t.overridable(g.space.Material(p)) {
			g.p.set(p, g.t.conf.Log)
		}
	}
}

func (g treeGrowth) leaves(p cube.Pos) {
	if g.t.overridable(g.space.Material(p)) {
		g.p.set(p, g.t.conf.Leaves)
	}
}

func (g treeGrowth) basicTop(height int) {
	pos := g.pos
	for yy := pos[1] - 3 + height; yy <= pos[1]+height; yy++ {
		yOff := yy - (pos[1] + height)
		mid := 1 - yOff/2
		for xx := pos[0] - mid; xx <= pos[0]+mid; xx++ {
			xOff := abs(xx - pos[0])
			for zz := pos[2] - mid; zz <= pos[2]+mid; zz++ {
				zOff := abs(zz - pos[2])
				if xOff == mid && zOff == mid && (yOff == 0 || g.r.IntN(2) == 0) {
					continue
				}
				g.leaves(cube.Pos{xx, yy, zz})
			}
		}
	}
}

func (g treeGrowth) spruce() {
	pos, r := g.pos, g.r
	height := r.IntN(4) + 6
	topSize := height - (1 + r.IntN(2))
	lr := 2 + r.IntN(2)
	trunkHeight := height - r.IntN(3)

	radius := r.IntN(2)
	minR, maxR := 0, 1
	for y := 0; y <= topSize; y++ {
		yy := pos[1] + height - y
		for x := pos[0] - radius; x <= pos[0]+radius; x++ {
			xOff := abs(x - pos[0])
			for z := pos[2] - radius; z <= pos[2]+radius; z++ {
				zOff := abs(z - pos[2])
				if xOff == radius && zOff == radius && radius > 0 {
					continue
				}
				g.leaves(cube.Pos{x, yy, z})
			}
		}
		if radius >= maxR {
			radius = minR
			minR = 1
			if maxR++; maxR > lr {
				maxR = lr
			}
		} else {
			radius++
		}
	}
	g.trunk(trunkHeight)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

package prop

import (
	"errors"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/df-mc/worldgen/server/world/voxel"
)

// Block places a single voxel at the scanned position if the voxel currently there is replaceable.
type Block struct {
	footprint
	material material.Material
	replace  Materials
}

// NewBlock returns a Block placing m over any of the materials in replace.
func NewBlock(m material.Material, replace Materials) *Block {
	b := cube.BoundsAt(cube.Pos{})
	return &Block{footprint: footprintOf(b, b), material: m, replace: replace}
}

// Scan ...
func (b *Block) Scan(pos cube.Pos, space voxel.Reader, _ worker.Id) ScanResult {
	p := newPlanner(pos, b.write)
	if b.replace.Contains(space.Material(pos)) {
		p.set(pos, b.material)
	}
	return p.result(b)
}

// Place ...
func (b *Block) Place(ctx Context) {
	placePlan(b, ctx)
}

// ColumnConfig holds the parameters of a Column.
type ColumnConfig struct {
	// Materials are the materials of the column, starting at the scanned position.
	Materials []material.Material
	// Down makes the column grow downwards rather than upwards.
	Down bool
	// Ground holds the materials the column may grow from. If not empty, the voxel directly before the
	// start of the column must be one of them.
	Ground Materials
	// Replace holds the materials the column may replace. Every voxel of the column must be replaceable.
	Replace Materials
}

// Column places a vertical stack of voxels, such as tall grass, cacti or hanging vines.
type Column struct {
	footprint
	conf ColumnConfig
	step int
}

// NewColumn returns a Column using the configuration passed.
func NewColumn(conf ColumnConfig) (*Column, error) {
	if len(conf.Materials) == 0 {
		return nil, errors.New("prop: column must have at least one material")
	}
	if len(conf.Replace) == 0 {
		conf.Replace = Materials{material.Empty}
	}
	step, n := 1, len(conf.Materials)
	write := cube.NewBounds(cube.Pos{}, cube.Pos{0, n - 1, 0})
	if conf.Down {
		step = -1
		write = cube.NewBounds(cube.Pos{}, cube.Pos{0, 1 - n, 0})
	}
	read := write
	if len(conf.Ground) > 0 {
		read = read.Encompass(cube.BoundsAt(cube.Pos{0, -step, 0}))
	}
	return &Column{footprint: footprintOf(read, write), conf: conf, step: step}, nil
}

// Scan ...
func (c *Column) Scan(pos cube.Pos, space voxel.Reader, _ worker.Id) ScanResult {
	p := newPlanner(pos, c.write)
	if len(c.conf.Ground) > 0 && !c.conf.Ground.Contains(space.Material(pos.Add(cube.Pos{0, -c.step, 0}))) {
		return p.result(c)
	}
	for i := range c.conf.Materials {
		if !c.conf.Replace.Contains(space.Material(pos.Add(cube.Pos{0, i * c.step, 0}))) {
			return p.result(c)
		}
	}
	for i, m := range c.conf.Materials {
		p.set(pos.Add(cube.Pos{0, i * c.step, 0}), m)
	}
	return p.result(c)
}

// Place ...
func (c *Column) Place(ctx Context) {
	placePlan(c, ctx)
}

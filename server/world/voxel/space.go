package voxel

import (
	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/material"
)

// Reader provides read access to the materials in a region of voxel space. Props only ever receive a
// Reader while scanning.
type Reader interface {
	// Bounds returns the region of voxel space covered. Reads outside of it return material.Empty.
	Bounds() cube.Bounds
	// Material returns the material at the position passed.
	Material(pos cube.Pos) material.Material
}

// Space is a Reader that may also be written to.
type Space interface {
	Reader
	// SetMaterial sets the material at the position passed. It returns false if the position lies outside
	// Bounds, in which case nothing is written.
	SetMaterial(pos cube.Pos, m material.Material) bool
}

// Buffer is a dense Space backed by a single slice. Concurrent writes to distinct positions are safe,
// concurrent writes to the same position are not.
type Buffer struct {
	bounds        cube.Bounds
	min           cube.Pos
	sizeX, sizeXY int
	sizeY, sizeZ  int
	materials     []material.Material
}

// NewBuffer returns a Buffer covering the bounds passed, filled with material.Empty.
func NewBuffer(bounds cube.Bounds) *Buffer {
	size := bounds.Size()
	return &Buffer{
		bounds:    bounds,
		min:       bounds.Min(),
		sizeX:     size[0],
		sizeY:     size[1],
		sizeZ:     size[2],
		sizeXY:    size[0] * size[1],
		materials: make([]material.Material, bounds.Volume()),
	}
}

// Bounds ...
func (b *Buffer) Bounds() cube.Bounds {
	return b.bounds
}

// Material ...
func (b *Buffer) Material(pos cube.Pos) material.Material {
	if !b.bounds.Contains(pos) {
		return material.Empty
	}
	return b.materials[b.index(pos)]
}

// SetMaterial ...
func (b *Buffer) SetMaterial(pos cube.Pos, m material.Material) bool {
	if !b.bounds.Contains(pos) {
		return false
	}
	b.materials[b.index(pos)] = m
	return true
}

// Column returns the materials of the column at x, z ordered from the lowest to the highest voxel. The
// slice returned is a copy.
func (b *Buffer) Column(x, z int) []material.Material {
	col := make([]material.Material, b.sizeY)
	for y := range col {
		col[y] = b.Material(cube.Pos{x, b.min[1] + y, z})
	}
	return col
}

// HighestSolid returns the Y of the highest voxel at x, z for which solid returns true.
func (b *Buffer) HighestSolid(x, z int, solid func(material.Material) bool) (int, bool) {
	for y := b.bounds.Max()[1]; y >= b.min[1]; y-- {
		if solid(b.Material(cube.Pos{x, y, z})) {
			return y, true
		}
	}
	return 0, false
}

// CopyTo writes every voxel of b that lies within region to dst.
func (b *Buffer) CopyTo(dst Space, region cube.Bounds) {
	region = region.Intersection(b.bounds)
	if region.Empty() {
		return
	}
	lo, hi := region.Min(), region.Max()
	for x := lo[0]; x <= hi[0]; x++ {
		for z := lo[2]; z <= hi[2]; z++ {
			for y := lo[1]; y <= hi[1]; y++ {
				p := cube.Pos{x, y, z}
				dst.SetMaterial(p, b.materials[b.index(p)])
			}
		}
	}
}

func (b *Buffer) index(pos cube.Pos) int {
	return (pos[0] - b.min[0]) + (pos[1]-b.min[1])*b.sizeX + (pos[2]-b.min[2])*b.sizeXY
}

package prop

import (
	"fmt"
	"math"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/seed"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/df-mc/worldgen/server/world/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

// Ore places a vein of Material, replacing any of the Replaces materials. The vein is a chain of spheres
// along a randomly rotated line through the scanned position, the spheres being largest in the middle.
type Ore struct {
	footprint
	material material.Material
	replaces Materials
	size     int
	seed     seed.Generator
}

// NewOre returns an Ore placing veins of size voxels.
func NewOre(m material.Material, replaces Materials, size int, s int64) (*Ore, error) {
	if size <= 0 || size > 64 {
		return nil, fmt.Errorf("prop: ore size must be in [1, 64], got %d", size)
	}
	if len(replaces) == 0 {
		return nil, fmt.Errorf("prop: ore must replace at least one material")
	}
	r := oreReach(size)
	b := cube.NewBounds(cube.Pos{-r, -r, -r}, cube.Pos{r, r, r})
	return &Ore{footprint: footprintOf(b, b), material: m, replaces: replaces, size: size, seed: seed.New(s)}, nil
}

// oreReach returns the maximum distance from the origin an ore vein of the size passed may reach.
func oreReach(size int) int {
	s := float64(size)
	return int(math.Ceil(s/8+s/16+1)) + 2
}

// Scan ...
func (o *Ore) Scan(pos cube.Pos, space voxel.Reader, _ worker.Id) ScanResult {
	p := newPlanner(pos, o.write)
	r := o.seed.RandAt(int64(pos[0]), int64(pos[1]), int64(pos[2]))

	clusterSize := float64(o.size)
	vec := pos.Vec3Centre()
	angle := r.Float64() * math.Pi
	offset := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(clusterSize / 8)
	x1, x2 := vec[0]+offset[0], vec[0]-offset[0]
	z1, z2 := vec[2]+offset[1], vec[2]-offset[1]
	y1, y2 := vec[1]+float64(r.IntN(3)-1), vec[1]+float64(r.IntN(3)-1)

	seen := make(map[cube.Pos]struct{})
	for i := float64(0); i <= clusterSize; i++ {
		seedX := x1 + (x2-x1)*i/clusterSize
		seedY := y1 + (y2-y1)*i/clusterSize
		seedZ := z1 + (z2-z1)*i/clusterSize
		size := ((math.Sin(i*(math.Pi/clusterSize))+1)*r.Float64()*clusterSize/16 + 1) / 2

		start := cube.PosFromVec3(mgl64.Vec3{seedX - size, seedY - size, seedZ - size})
		end := cube.PosFromVec3(mgl64.Vec3{seedX + size, seedY + size, seedZ + size})
		for xx := start[0]; xx <= end[0]; xx++ {
			sizeX := (float64(xx) + 0.5 - seedX) / size
			sizeX *= sizeX
			if sizeX >= 1 {
				continue
			}
			for yy := start[1]; yy <= end[1]; yy++ {
				sizeY := (float64(yy) + 0.5 - seedY) / size
				sizeY *= sizeY
				if sizeX+sizeY >= 1 {
					continue
				}
				for zz := start[2]; zz <= end[2]; zz++ {
					sizeZ := (float64(zz) + 0.5 - seedZ) / size
					sizeZ *= sizeZ

					target := cube.Pos{xx, yy, zz}
					if _, ok := seen[target]; ok || sizeX+sizeY+sizeZ >= 1 {
						continue
					}
					seen[target] = struct{}{}
					if o.replaces.Contains(space.Material(target)) {
						p.set(target, o.material)
					}
				}
			}
		}
	}
	return p.result(o)
}

// Place ...
func (o *Ore) Place(ctx Context) {
	placePlan(o, ctx)
}

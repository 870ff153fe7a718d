package prop

import (
	"encoding/binary"
	"errors"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/df-mc/worldgen/server/world/voxel"
	"github.com/google/uuid"
)

// entityNamespace is the UUID namespace the IDs of spawned entities are derived in.
var entityNamespace = uuid.MustParse("6f0c4f0e-5b38-4f63-9c1f-8e6b1f7c2a41")

// Entity spawns an entity at the centre of the scanned voxel, if the voxel and the one above it are empty
// and the voxel below is not.
type Entity struct {
	footprint
	typ  string
	seed int64
}

// NewEntity returns an Entity spawning entities of the type passed.
func NewEntity(typ string, s int64) (*Entity, error) {
	if typ == "" {
		return nil, errors.New("prop: entity type must not be empty")
	}
	return &Entity{
		footprint: footprintOf(cube.NewBounds(cube.Pos{0, -1, 0}, cube.Pos{0, 1, 0}), cube.BoundsAt(cube.Pos{})),
		typ:       typ,
		seed:      s,
	}, nil
}

// Scan ...
func (e *Entity) Scan(pos cube.Pos, space voxel.Reader, _ worker.Id) ScanResult {
	p := newPlanner(pos, e.write)
	if space.Material(pos) != material.Empty || space.Material(pos.Add(cube.Pos{0, 1, 0})) != material.Empty ||
		space.Material(pos.Sub(cube.Pos{0, 1, 0})) == material.Empty {
		return p.result(e)
	}
	p.spawn(Spawn{ID: e.id(pos), Type: e.typ, Pos: pos.Vec3Centre()})
	return p.result(e)
}

func (e *Entity) id(pos cube.Pos) uuid.UUID {
	data := make([]byte, 0, 32+len(e.typ))
	data = binary.LittleEndian.AppendUint64(data, uint64(e.seed))
	for _, v := range pos {
		data = binary.LittleEndian.AppendUint64(data, uint64(v))
	}
	return uuid.NewSHA1(entityNamespace, append(data, e.typ...))
}

// Place ...
func (e *Entity) Place(ctx Context) {
	placePlan(e, ctx)
}

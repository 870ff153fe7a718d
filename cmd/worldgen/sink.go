package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/worldgen/server/world/generator"
	"github.com/df-mc/worldgen/server/world/generator/prop"
	"github.com/df-mc/worldgen/server/world/voxel"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	keyVoxels   = 'v'
	keyEntities = 'e'
)

// levelSink is a generator.Output writing chunks to a LevelDB database. Every chunk is stored under the
// chunk index followed by a tag byte: the voxels encoded with voxel.Encode, and the entities spawned.
type levelSink struct {
	db *leveldb.DB
}

// openSink opens the database in the folder passed, creating it if it does not exist.
func openSink(folder string) (*levelSink, error) {
	db, err := leveldb.OpenFile(folder, nil)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &levelSink{db: db}, nil
}

func chunkKey(x, z int32, tag byte) []byte {
	key := make([]byte, 9)
	binary.LittleEndian.PutUint64(key, uint64(generator.ChunkIndex(x, z)))
	key[8] = tag
	return key
}

// Commit ...
func (s *levelSink) Commit(c *generator.Chunk) error {
	voxels, err := voxel.Encode(c.Voxels)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Put(chunkKey(c.X, c.Z, keyVoxels), voxels)
	if len(c.Spawns) > 0 {
		batch.Put(chunkKey(c.X, c.Z, keyEntities), encodeSpawns(c.Spawns))
	}
	return s.db.Write(batch, nil)
}

// Load reads the chunk at x, z. ok is false if the chunk was never committed.
func (s *levelSink) Load(x, z int32) (c *generator.Chunk, ok bool, err error) {
	data, err := s.db.Get(chunkKey(x, z, keyVoxels), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("read voxels: %w", err)
	}
	c = &generator.Chunk{X: x, Z: z}
	if c.Voxels, err = voxel.Decode(data); err != nil {
		return nil, false, err
	}
	data, err = s.db.Get(chunkKey(x, z, keyEntities), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return c, true, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("read entities: %w", err)
	}
	if c.Spawns, err = decodeSpawns(data); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// Close closes the database.
func (s *levelSink) Close() error {
	return s.db.Close()
}

var errMalformedSpawns = errors.New("malformed entity data")

func encodeSpawns(spawns []prop.Spawn) []byte {
	buf := binary.AppendUvarint(nil, uint64(len(spawns)))
	for _, sp := range spawns {
		buf = append(buf, sp.ID[:]...)
		for _, v := range sp.Pos {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
		buf = binary.AppendUvarint(buf, uint64(len(sp.Type)))
		buf = append(buf, sp.Type...)
	}
	return buf
}

func decodeSpawns(data []byte) ([]prop.Spawn, error) {
	n, k := binary.Uvarint(data)
	if k <= 0 || n > uint64(len(data)) {
		return nil, errMalformedSpawns
	}
	data = data[k:]
	spawns := make([]prop.Spawn, 0, n)
	for range n {
		if len(data) < 16+24 {
			return nil, errMalformedSpawns
		}
		var sp prop.Spawn
		sp.ID = uuid.UUID(data[:16])
		var pos mgl64.Vec3
		for i := range pos {
			pos[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[16+i*8:]))
		}
		sp.Pos = pos
		data = data[16+24:]
		l, k := binary.Uvarint(data)
		if k <= 0 || l > uint64(len(data)-k) {
			return nil, errMalformedSpawns
		}
		sp.Type = string(data[k : k+int(l)])
		data = data[k+int(l):]
		spawns = append(spawns, sp)
	}
	return spawns, nil
}

package generator

import (
	"fmt"
	"sync/atomic"
)

// DefaultWorldStructureName is the name of the world structure used by profiles that do not name one.
const DefaultWorldStructureName = "Default"

// GeneratorProfile names the world structure and seed chunks are generated with. The seed may be changed
// with SetSeed until the profile is frozen, which happens when the first request using it is submitted.
type GeneratorProfile struct {
	name   string
	seed   atomic.Int64
	frozen atomic.Bool
}

// NewGeneratorProfile returns a GeneratorProfile for the world structure and seed passed. An empty name
// selects DefaultWorldStructureName.
func NewGeneratorProfile(name string, seed int64) *GeneratorProfile {
	if name == "" {
		name = DefaultWorldStructureName
	}
	p := &GeneratorProfile{name: name}
	p.seed.Store(seed)
	return p
}

// WorldStructureName returns the name of the world structure generated.
func (p *GeneratorProfile) WorldStructureName() string {
	return p.name
}

// Seed returns the world seed.
func (p *GeneratorProfile) Seed() int64 {
	return p.seed.Load()
}

// SetSeed changes the world seed. SetSeed panics if requests using the profile were already submitted.
func (p *GeneratorProfile) SetSeed(seed int64) {
	if p.frozen.Load() {
		panic(fmt.Sprintf("generator: seed of profile %v changed after requests were submitted", p))
	}
	p.seed.Store(seed)
}

// Frozen checks if the profile can no longer be changed.
func (p *GeneratorProfile) Frozen() bool {
	return p.frozen.Load()
}

func (p *GeneratorProfile) freeze() {
	p.frozen.Store(true)
}

// Equal checks if two profiles generate the same world.
func (p *GeneratorProfile) Equal(o *GeneratorProfile) bool {
	return p.name == o.name && p.Seed() == o.Seed()
}

// Hash returns a hash of the world structure name and seed. Equal profiles have equal hashes.
func (p *GeneratorProfile) Hash() uint64 {
	return profileHash(p.name, p.Seed())
}

// String ...
func (p *GeneratorProfile) String() string {
	return fmt.Sprintf("GeneratorProfile(%s, seed=%d)", p.name, p.Seed())
}

// Arguments holds the chunk specific inputs of a ChunkRequest.
type Arguments struct {
	// Seed is the world seed the chunk is generated with.
	Seed int64
	// Index is the linear index of the chunk, as returned by ChunkIndex.
	Index int64
	// X and Z are the chunk coordinates.
	X, Z int32
	// StillNeeded is polled during generation with Index. Once it returns false, the remaining work is
	// abandoned and nothing is committed. A nil StillNeeded never abandons.
	StillNeeded func(index int64) bool
}

// Needed checks if the chunk is still needed.
func (a Arguments) Needed() bool {
	return a.StillNeeded == nil || a.StillNeeded(a.Index)
}

// ChunkIndex packs chunk coordinates into a single linear index.
func ChunkIndex(x, z int32) int64 {
	return int64(uint32(x)) | int64(z)<<32
}

// ChunkCoords unpacks an index returned by ChunkIndex.
func ChunkCoords(index int64) (x, z int32) {
	return int32(uint32(index)), int32(index >> 32)
}

// ChunkRequest asks for one chunk to be generated. ChunkRequests are values and are not changed after they
// are created.
type ChunkRequest struct {
	Profile *GeneratorProfile
	Args    Arguments
}

// NewChunkRequest returns a ChunkRequest for the chunk at x, z. stillNeeded may be nil.
func NewChunkRequest(profile *GeneratorProfile, x, z int32, stillNeeded func(index int64) bool) ChunkRequest {
	return ChunkRequest{
		Profile: profile,
		Args: Arguments{
			Seed:        profile.Seed(),
			Index:       ChunkIndex(x, z),
			X:           x,
			Z:           z,
			StillNeeded: stillNeeded,
		},
	}
}

// String ...
func (r ChunkRequest) String() string {
	return fmt.Sprintf("ChunkRequest(%s, x=%d, z=%d)", r.Profile.WorldStructureName(), r.Args.X, r.Args.Z)
}

// Package seed implements the deterministic seed derivation used throughout world generation. Every
// function in this package is pure: the same inputs produce the same outputs on every goroutine, every run
// and every machine. Changing any of the mixing constants changes every generated world.
package seed

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

const (
	mulX = 0x9e3779b97f4a7c15
	mulY = 0xc2b2ae3d27d4eb4f
	mulZ = 0xbf58476d1ce4e5b9
)

// mix64 is the SplitMix64 finaliser.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Generator derives position-specific seeds from a parent seed.
type Generator struct {
	seed int64
}

// New returns a Generator deriving seeds from the seed passed.
func New(seed int64) Generator {
	return Generator{seed: seed}
}

// Seed returns the parent seed of the Generator.
func (g Generator) Seed() int64 {
	return g.seed
}

// SeedAt returns the seed for the position passed.
func (g Generator) SeedAt(x, y, z int64) int64 {
	v := uint64(g.seed) ^ (uint64(x) * mulX) ^ (uint64(y) * mulY) ^ (uint64(z) * mulZ)
	return int64(mix64(v))
}

// RandAt returns a random source seeded for the position passed.
func (g Generator) RandAt(x, y, z int64) *rand.Rand {
	return Rand(g.SeedAt(x, y, z))
}

// Rand returns a new PCG backed random source seeded with s. Two sources created with the same seed
// produce the same sequence.
func Rand(s int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(s), mix64(uint64(s))))
}

// Seed is a node in a tree of named seeds. World structures derive a child Seed for every named component,
// so that renaming or reordering unrelated components does not change the randomness of others.
type Seed struct {
	v uint64
}

// Root returns the root Seed of a world seed.
func Root(world int64) Seed {
	return Seed{v: mix64(uint64(world))}
}

// Child returns the Seed derived from s for the name passed.
func (s Seed) Child(name string) Seed {
	return Seed{v: mix64(s.v ^ xxhash.Sum64String(name))}
}

// Int64 returns the value of the Seed.
func (s Seed) Int64() int64 {
	return int64(s.v)
}

// Int returns the value of the Seed truncated to 32 bits.
func (s Seed) Int() int32 {
	return int32(s.v ^ s.v>>32)
}

// Generator returns a Generator with the Seed as parent seed.
func (s Seed) Generator() Generator {
	return New(s.Int64())
}

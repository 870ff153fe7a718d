// Package generator generates chunks of voxel terrain from world structures. A Generator turns a
// ChunkRequest into a filled chunk by shaping the terrain from a density tree and placing the props of every
// stage of the world structure, scanning and placing props concurrently where their footprints do not
// overlap. A Scheduler feeds requests to a Generator from a bounded queue.
package generator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/asset"
	"github.com/df-mc/worldgen/server/world/generator/prop"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/df-mc/worldgen/server/world/voxel"
	"github.com/segmentio/fasthash/fnv1a"
)

var (
	// ErrAbandoned is returned by Generate when the chunk was no longer needed. It is not a failure: nothing
	// was committed and nothing needs to be reported.
	ErrAbandoned = errors.New("generator: chunk no longer needed")
	// ErrUnknownStructure is returned for requests naming a world structure that is not registered.
	ErrUnknownStructure = errors.New("generator: unknown world structure")
	// ErrPanicked is wrapped by the error returned for a chunk whose generation panicked.
	ErrPanicked = errors.New("generator: chunk generation panicked")
)

// ChunkSize is the width and length of a chunk in voxels.
const ChunkSize = 16

// Chunk is the content of a generated chunk.
type Chunk struct {
	// X and Z are the chunk coordinates.
	X, Z int32
	// Voxels covers the full height of the chunk.
	Voxels *voxel.Buffer
	// Spawns holds the entities spawned within the chunk, ordered by position.
	Spawns []prop.Spawn
}

// Output receives generated chunks. Commit is called at most once per request, and only for chunks that
// were generated completely.
type Output interface {
	Commit(c *Chunk) error
}

// OutputFunc is an Output calling the function itself.
type OutputFunc func(c *Chunk) error

// Commit ...
func (f OutputFunc) Commit(c *Chunk) error {
	return f(c)
}

// Generator generates chunks. It is safe for concurrent use: any number of chunks may be generated at the
// same time, sharing one pool of workers.
type Generator struct {
	log       *slog.Logger
	pool      *worker.Pool
	materials *material.Registry
	cellSize  int
	metrics   *Metrics

	mu         sync.RWMutex
	structures map[string]*asset.Document
	// built holds the structure last built for each name. Building for another seed replaces it.
	built map[string]builtStructure
}

type builtStructure struct {
	seed int64
	s    *asset.Structure
}

// New creates a Generator using the configuration passed. Close must be called to stop its workers.
func New(conf Config) *Generator {
	conf = conf.withDefaults()
	return &Generator{
		log:        conf.Log,
		pool:       worker.NewPool(worker.PoolConfig{Log: conf.Log, Workers: conf.Workers}),
		materials:  conf.Materials,
		cellSize:   conf.CellSize,
		metrics:    conf.Metrics,
		structures: maps.Clone(conf.Structures),
		built:      make(map[string]builtStructure),
	}
}

// Register adds a world structure document, replacing any registered under the same name. Chunks
// requested afterwards use the new document.
func (g *Generator) Register(doc *asset.Document) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.structures[doc.Name] = doc
	delete(g.built, doc.Name)
}

// Structures returns the sorted names of the world structures registered.
func (g *Generator) Structures() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Sorted(maps.Keys(g.structures))
}

// Materials returns the material registry world structures are built with.
func (g *Generator) Materials() *material.Registry {
	return g.materials
}

// Workers returns the Indexer holding the Ids of the workers scanning and placing props.
func (g *Generator) Workers() *worker.Indexer {
	return g.pool.Indexer()
}

// Close stops the workers of the Generator. Chunks must not be generated after calling Close.
func (g *Generator) Close() {
	g.pool.Close()
}

// structure returns the world structure named name built for the seed passed. Only the structure built for
// the latest seed requested is kept for each name.
func (g *Generator) structure(name string, seed int64) (*asset.Structure, error) {
	g.mu.RLock()
	b, ok := g.built[name]
	doc := g.structures[name]
	g.mu.RUnlock()
	if ok && b.seed == seed {
		return b.s, nil
	}
	if doc == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownStructure, name)
	}

	s, problems := doc.Build(seed, g.materials)
	for _, p := range problems {
		g.log.Warn("world structure node replaced", "structure", name, "err", p)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if b, ok := g.built[name]; ok && b.seed == seed {
		// Another chunk built the structure first: use the same instance so that props compare equal.
		return b.s, nil
	}
	if g.structures[name] == doc {
		g.built[name] = builtStructure{seed: seed, s: s}
	}
	return s, nil
}

// builtStructures returns the amount of structures currently cached.
func (g *Generator) builtStructures() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.built)
}

func profileHash(name string, seed int64) uint64 {
	return fnv1a.AddUint64(fnv1a.HashString64(name), uint64(seed))
}

// Generate generates the chunk requested and commits it to out. The profile of req is frozen. Generate
// returns ErrAbandoned without committing anything if the request is no longer needed or ctx is cancelled.
// A chunk that fails to generate, including by panicking, never affects other chunks generated
// concurrently.
func (g *Generator) Generate(ctx context.Context, req ChunkRequest, out Output) error {
	req.Profile.freeze()
	err := g.generate(ctx, req, out)
	switch {
	case err == nil:
		g.metrics.IncGenerated()
	case errors.Is(err, ErrAbandoned):
		g.metrics.IncAbandoned()
		g.log.Debug("chunk generation abandoned", "chunkX", req.Args.X, "chunkZ", req.Args.Z)
	default:
		g.metrics.IncFailed()
		g.log.Error("chunk generation failed", "chunkX", req.Args.X, "chunkZ", req.Args.Z, "err", err)
	}
	return err
}

func (g *Generator) generate(ctx context.Context, req ChunkRequest, out Output) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrPanicked, e)
				return
			}
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	if err := checkpoint(ctx, req); err != nil {
		return err
	}
	s, err := g.structure(req.Profile.WorldStructureName(), req.Args.Seed)
	if err != nil {
		return err
	}

	core := chunkBounds(req.Args.X, req.Args.Z, s.Terrain.Height)
	reach, pad := reaches(s.Stages)
	buf := voxel.NewBuffer(core.Grow(pad))
	if err := g.fillTerrain(ctx, s.Terrain, buf); err != nil {
		return abandonedOr(ctx, err)
	}
	sink := &spawnSink{}
	for i, st := range s.Stages {
		if err := checkpoint(ctx, req); err != nil {
			return err
		}
		if err := g.runStage(ctx, req, st, core.Grow(reach[i]), buf, sink); err != nil {
			return fmt.Errorf("stage %s: %w", st.Name, abandonedOr(ctx, err))
		}
	}
	if err := checkpoint(ctx, req); err != nil {
		return err
	}

	c := &Chunk{X: req.Args.X, Z: req.Args.Z, Voxels: voxel.NewBuffer(core), Spawns: sink.within(core)}
	buf.CopyTo(c.Voxels, core)
	if err := out.Commit(c); err != nil {
		return fmt.Errorf("commit chunk: %w", err)
	}
	return nil
}

// checkpoint returns ErrAbandoned if the request is no longer needed.
func checkpoint(ctx context.Context, req ChunkRequest) error {
	if ctx.Err() != nil || !req.Args.Needed() {
		return ErrAbandoned
	}
	return nil
}

// abandonedOr returns ErrAbandoned if ctx was cancelled, or err otherwise. Tasks skipped by a cancelled
// worker pool report the context error.
func abandonedOr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrAbandoned
	}
	return err
}

// chunkBounds returns the bounds of the chunk at x, z spanning the height range passed.
func chunkBounds(x, z int32, height cube.Range[int]) cube.Bounds {
	minX, minZ := int(x)*ChunkSize, int(z)*ChunkSize
	return cube.NewBounds(
		cube.Pos{minX, height.Min, minZ},
		cube.Pos{minX + ChunkSize - 1, height.Max - 1, minZ + ChunkSize - 1},
	)
}

// reaches returns how far around a chunk the prop of every stage must be placed, and how far around the
// chunk voxels must be generated. A stage is placed at every position from which it may write into a voxel
// that a later stage reads or writes, so each stage reaches further than the stages after it. Every prop
// reads up to its read range beyond where it is placed.
func reaches(stages []asset.Stage) (reach []cube.Pos, pad cube.Pos) {
	reach = make([]cube.Pos, len(stages))
	for i := len(stages) - 1; i >= 0; i-- {
		dep := stages[i].Prop.ContextDependency()
		reach[i] = pad.Add(dep.WriteRange())
		pad = reach[i].Add(dep.ReadRange())
	}
	return reach, pad
}

// spawnSink collects the entities spawned while generating a chunk.
type spawnSink struct {
	mu     sync.Mutex
	spawns []prop.Spawn
}

// Spawn ...
func (s *spawnSink) Spawn(sp prop.Spawn) {
	s.mu.Lock()
	s.spawns = append(s.spawns, sp)
	s.mu.Unlock()
}

// within returns the spawns with a position in the column of b, ordered by position and ID.
func (s *spawnSink) within(b cube.Bounds) []prop.Spawn {
	s.mu.Lock()
	defer s.mu.Unlock()
	lo, hi := b.Min(), b.Max()
	var spawns []prop.Spawn
	for _, sp := range s.spawns {
		p := cube.PosFromVec3(sp.Pos)
		if p[0] >= lo[0] && p[0] <= hi[0] && p[2] >= lo[2] && p[2] <= hi[2] {
			spawns = append(spawns, sp)
		}
	}
	slices.SortFunc(spawns, func(a, b prop.Spawn) int {
		for i := range 3 {
			if c := cmp.Compare(a.Pos[i], b.Pos[i]); c != 0 {
				return c
			}
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return spawns
}

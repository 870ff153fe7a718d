// Package prop implements props: placeable generation primitives such as trees, ore veins and the
// combinators composing them. Placing a prop happens in two phases. Scan inspects the voxels around a
// position without changing anything and captures its decision in a ScanResult. Place applies exactly that
// decision later, possibly on another worker. Props are immutable after construction and may be scanned
// and placed from any number of goroutines, as long as placements with overlapping footprints are not run
// concurrently.
package prop

import (
	"errors"
	"fmt"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/conveyor"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/voxel"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Prop is a placeable generation primitive.
type Prop interface {
	// Scan decides if and how the Prop would be placed at pos. Scan only reads from space, and only within
	// ReadBounds offset by pos.
	Scan(pos cube.Pos, space voxel.Reader, id worker.Id) ScanResult
	// Place applies the decision held by ctx.Result, which must have been returned by Scan of the same
	// Prop. Place writes only within WriteBounds offset by the scanned position. Placing a negative result
	// has no effect. Place panics with an error wrapping ErrForeignResult if ctx.Result was produced by
	// another Prop.
	Place(ctx Context)
	// ContextDependency returns the maximum distance from its origin the Prop reads and writes.
	ContextDependency() conveyor.ContextDependency
	// ReadBounds returns the bounds relative to the origin that Scan and Place may read from.
	ReadBounds() cube.Bounds
	// WriteBounds returns the bounds relative to the origin that Place may write to.
	WriteBounds() cube.Bounds
}

// ScanResult is the decision produced by Prop.Scan.
type ScanResult interface {
	// Negative reports if there is nothing to place.
	Negative() bool
	// Prop returns the Prop that produced the result.
	Prop() Prop
}

// Context holds the parameters of a single Place call. It is passed by value and never changed after it is
// created: composite props derive a Context for their children using WithResult.
type Context struct {
	// Result is the ScanResult to place.
	Result ScanResult
	// Space is the voxel space written to.
	Space voxel.Space
	// Entities receives the entities spawned.
	Entities EntitySink
	// Worker is the worker placing the result.
	Worker worker.Id
}

// WithResult returns a copy of the Context with the Result replaced.
func (ctx Context) WithResult(r ScanResult) Context {
	ctx.Result = r
	return ctx
}

// Spawn describes an entity to be added to the world.
type Spawn struct {
	// ID is the unique ID of the entity. It is derived from the seed and position of the prop spawning it,
	// so that generating a chunk twice produces the same IDs.
	ID uuid.UUID
	// Type is the name of the entity type, such as "minecraft:cow".
	Type string
	// Pos is the position the entity is spawned at.
	Pos mgl64.Vec3
}

// EntitySink receives the entities spawned by props. Implementations must be safe for concurrent use.
type EntitySink interface {
	Spawn(s Spawn)
}

// NopEntitySink is an EntitySink discarding every Spawn.
type NopEntitySink struct{}

// Spawn ...
func (NopEntitySink) Spawn(Spawn) {}

// ErrForeignResult is the error Place panics with when passed a ScanResult that another Prop produced.
var ErrForeignResult = errors.New("prop: scan result passed to a prop that did not produce it")

// CheckResult panics with an error wrapping ErrForeignResult if r was not produced by p.
func CheckResult(p Prop, r ScanResult) {
	if r == nil {
		panic(fmt.Errorf("%w: %T placed without a result", ErrForeignResult, p))
	}
	if owner := r.Prop(); owner != p {
		panic(fmt.Errorf("%w: %T placed with a result of %T", ErrForeignResult, p, owner))
	}
}

// footprint holds the bounds and dependency of a Prop. Props embed it to implement the corresponding
// methods of Prop.
type footprint struct {
	read, write cube.Bounds
	dep         conveyor.ContextDependency
}

func footprintOf(read, write cube.Bounds) footprint {
	return footprint{read: read, write: write, dep: conveyor.From(read, write)}
}

// encompass returns the footprint covering the footprints of all children.
func encompass(children []Prop) footprint {
	var f footprint
	for _, c := range children {
		f.read = f.read.Encompass(c.ReadBounds())
		f.write = f.write.Encompass(c.WriteBounds())
		f.dep = f.dep.Max(c.ContextDependency())
	}
	return f
}

// ContextDependency ...
func (f footprint) ContextDependency() conveyor.ContextDependency {
	return f.dep
}

// ReadBounds ...
func (f footprint) ReadBounds() cube.Bounds {
	return f.read
}

// WriteBounds ...
func (f footprint) WriteBounds() cube.Bounds {
	return f.write
}

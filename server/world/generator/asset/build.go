package asset

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/density"
	"github.com/df-mc/worldgen/server/world/generator/position"
	"github.com/df-mc/worldgen/server/world/generator/prop"
	"github.com/df-mc/worldgen/server/world/generator/seed"
	"github.com/df-mc/worldgen/server/world/material"
)

// Argument holds the parameters passed down while building the nodes of a document. Builders derive an
// Argument for every child node.
type Argument struct {
	// Seed is the seed of the node being built. Nodes needing randomness derive a child seed from it.
	Seed seed.Seed
	// Materials resolves material names.
	Materials *material.Registry
	// Path identifies the node being built in problems reported.
	Path string

	problems *[]error
}

// NewArgument returns the Argument for the root of a document built for the world seed passed. Problems
// found while building are appended to problems.
func NewArgument(world int64, reg *material.Registry, problems *[]error) Argument {
	return Argument{Seed: seed.Root(world), Materials: reg, problems: problems}
}

// child returns the Argument of a child node at the path element passed.
func (arg Argument) child(elem string) Argument {
	if arg.Path == "" {
		arg.Path = elem
	} else {
		arg.Path += "." + elem
	}
	return arg
}

func (arg Argument) index(elem string, i int) Argument {
	return arg.child(fmt.Sprintf("%s[%d]", elem, i))
}

// problem reports an error for the node being built.
func (arg Argument) problem(err error) {
	if arg.problems == nil {
		return
	}
	*arg.problems = append(*arg.problems, &ProblemError{Path: arg.Path, Err: err})
}

// seedFor returns the seed named name, or the seed of the node path if name is empty.
func (arg Argument) seedFor(name string) seed.Seed {
	if name == "" {
		name = arg.Path
	}
	return arg.Seed.Child(name)
}

// material resolves a material name. An empty name resolves to material.Empty.
func (arg Argument) material(name string) (material.Material, error) {
	if name == "" {
		return material.Empty, nil
	}
	m, ok := arg.Materials.Lookup(name)
	if !ok {
		return material.Empty, fmt.Errorf("%w %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

func (arg Argument) materials(names []string) (prop.Materials, error) {
	s := make(prop.Materials, 0, len(names))
	for _, name := range names {
		m, err := arg.material(name)
		if err != nil {
			return nil, err
		}
		s = append(s, m)
	}
	return s, nil
}

var (
	// ErrUnknownMaterial is returned for material names not found in the material registry.
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrUnknownType is returned for nodes with a type that is not supported.
	ErrUnknownType = errors.New("unknown node type")
)

// ProblemError is a problem found building a single node. The node is replaced with its no-op equivalent.
type ProblemError struct {
	Path string
	Err  error
}

// Error ...
func (e *ProblemError) Error() string {
	return fmt.Sprintf("asset: %s: %v", e.Path, e.Err)
}

// Unwrap ...
func (e *ProblemError) Unwrap() error {
	return e.Err
}

// Structure is a built world structure.
type Structure struct {
	Name    string
	Terrain Terrain
	Stages  []Stage
}

// Terrain holds the built terrain of a Structure. A voxel is solid where Density is greater than 0.
type Terrain struct {
	Density  density.Density
	Height   cube.Range[int]
	SeaLevel int
	// Solid fills solid voxels and Fluid fills non-solid voxels at or below SeaLevel.
	Solid, Fluid material.Material
	// Top covers the highest solid voxel of every column, followed by FillerDepth voxels of Filler.
	Top, Filler material.Material
	FillerDepth int
	// Bedrock fills the lowest layer of the world, unless it is material.Empty.
	Bedrock material.Material
}

// Stage is a built prop placement pass.
type Stage struct {
	Name      string
	Positions position.Provider
	Prop      prop.Prop
}

// Build builds the document for the world seed passed. The problems returned are those of nodes that were
// replaced with their no-op equivalent. Build never fails as a whole.
func (d *Document) Build(world int64, reg *material.Registry) (*Structure, []error) {
	var problems []error
	arg := NewArgument(world, reg, &problems)
	s := &Structure{Name: d.Name, Terrain: d.Terrain.build(arg.child("terrain"))}
	for _, st := range d.Stages {
		if st.Skip {
			continue
		}
		// Stages are seeded and identified by name, so inserting a stage does not change the others.
		stageArg := arg.child(fmt.Sprintf("stages[%s]", st.Name))
		stageArg.Seed = arg.Seed.Child(st.Name)
		s.Stages = append(s.Stages, Stage{
			Name:      st.Name,
			Positions: st.Positions.Build(stageArg.child("positions")),
			Prop:      st.Prop.Build(stageArg.child("prop")),
		})
	}
	return s, problems
}

// maxHeight is the largest amount of voxels a world may span vertically.
const maxHeight = 1024

func (t TerrainAsset) build(arg Argument) Terrain {
	terrain := Terrain{
		Density:     t.Density.Build(arg.child("density")),
		Height:      cube.Range[int]{Min: 0, Max: 128},
		SeaLevel:    t.SeaLevel,
		FillerDepth: t.FillerDepth,
	}
	if len(t.Height) == 2 {
		if h := (cube.Range[int]{Min: t.Height[0], Max: t.Height[1]}); h.Valid() && h.Max > h.Min && h.Max-h.Min <= maxHeight {
			terrain.Height = h
		} else {
			arg.child("height").problem(fmt.Errorf("invalid height range %v", t.Height))
		}
	}
	resolve := func(field, name string, dst *material.Material) {
		m, err := arg.material(name)
		if err != nil {
			arg.child(field).problem(err)
		}
		*dst = m
	}
	resolve("solid", cmp.Or(t.Solid, "stone"), &terrain.Solid)
	resolve("fluid", t.Fluid, &terrain.Fluid)
	resolve("top", t.Top, &terrain.Top)
	resolve("filler", t.Filler, &terrain.Filler)
	resolve("bedrock", t.Bedrock, &terrain.Bedrock)
	return terrain
}

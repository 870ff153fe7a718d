package asset

import (
	"fmt"
	"math"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/prop"
	"github.com/df-mc/worldgen/server/world/generator/weighted"
	"github.com/df-mc/worldgen/server/world/material"
)

// PropAsset describes a prop.
type PropAsset struct {
	Type string `yaml:"type"`
	Skip bool   `yaml:"skip"`

	// Offset.
	Offset [3]int `yaml:"offset"`
	// Prop is the child of Offset and Surface.
	Prop *PropAsset `yaml:"prop"`
	// Props holds the children of Queue and Union.
	Props []*PropAsset `yaml:"props"`
	// Weighted.
	Entries []WeightedEntry `yaml:"entries"`
	// Seed names the seed of Weighted, Ore, Tree and Entity. If empty, the path of the prop is used.
	Seed string `yaml:"seed"`

	// Block, Column and Ore.
	Material  string   `yaml:"material"`
	Materials []string `yaml:"materials"`
	Replace   []string `yaml:"replace"`
	// Column and Surface.
	Ground    []string `yaml:"ground"`
	Down      bool     `yaml:"down"`
	ScanRange int      `yaml:"scan_range"`
	// Ore.
	Size int `yaml:"size"`
	// Tree.
	Kind   string   `yaml:"kind"`
	Log    string   `yaml:"log"`
	Leaves string   `yaml:"leaves"`
	Soil   []string `yaml:"soil"`
	Dirt   string   `yaml:"dirt"`
	// Entity.
	Entity string `yaml:"entity"`
}

// WeightedEntry is a single child of a Weighted prop.
type WeightedEntry struct {
	ID     string     `yaml:"id"`
	Weight float64    `yaml:"weight"`
	Prop   *PropAsset `yaml:"prop"`
}

// Build builds the prop. Skipped props and props that fail to build are replaced with prop.NoProp, the
// latter being reported as a problem.
func (a *PropAsset) Build(arg Argument) prop.Prop {
	if a == nil || a.Skip {
		return prop.NoProp()
	}
	p, err := a.build(arg)
	if err != nil {
		arg.problem(err)
		return prop.NoProp()
	}
	return p
}

func (a *PropAsset) build(arg Argument) (prop.Prop, error) {
	switch a.Type {
	case "None":
		return prop.NoProp(), nil
	case "Offset":
		return prop.NewOffset(cube.Pos(a.Offset), a.Prop.Build(arg.child("prop"))), nil
	case "Queue":
		return prop.NewQueue(a.children(arg)...), nil
	case "Union":
		return prop.NewUnion(a.children(arg)...), nil
	case "Weighted":
		return a.weighted(arg)
	case "Block":
		m, err := arg.material(a.Material)
		if err != nil {
			return nil, err
		}
		replace, err := arg.materials(a.Replace)
		if err != nil {
			return nil, err
		}
		if len(replace) == 0 {
			replace = prop.Materials{material.Empty}
		}
		return prop.NewBlock(m, replace), nil
	case "Column":
		return a.column(arg)
	case "Surface":
		ground, err := arg.materials(a.Ground)
		if err != nil {
			return nil, err
		}
		return prop.NewSurface(a.Prop.Build(arg.child("prop")), a.ScanRange, ground)
	case "Ore":
		m, err := arg.material(a.Material)
		if err != nil {
			return nil, err
		}
		replace, err := arg.materials(a.Replace)
		if err != nil {
			return nil, err
		}
		return prop.NewOre(m, replace, a.Size, arg.seedFor(a.Seed).Int64())
	case "Tree":
		return a.tree(arg)
	case "Entity":
		return prop.NewEntity(a.Entity, arg.seedFor(a.Seed).Int64())
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, a.Type)
}

func (a *PropAsset) children(arg Argument) []prop.Prop {
	children := make([]prop.Prop, len(a.Props))
	for i, c := range a.Props {
		children[i] = c.Build(arg.index("props", i))
	}
	return children
}

// weighted builds a Weighted prop. Its children are built with a seed derived from the seed name of the
// prop, from which the seed of the picks is derived too.
func (a *PropAsset) weighted(arg Argument) (prop.Prop, error) {
	if len(a.Entries) == 0 {
		return prop.NoProp(), nil
	}
	childArg := arg
	childArg.Seed = arg.Seed.Child(a.Seed)
	m := weighted.NewMap[prop.Prop](len(a.Entries))
	for i, e := range a.Entries {
		if e.Weight <= 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("entry %q: weight must be a number greater than 0, got %v", e.ID, e.Weight)
		}
		m.Add(e.Prop.Build(childArg.index("entries", i).child("prop")), e.Weight)
	}
	return prop.NewWeighted(m, int64(childArg.Seed.Int())), nil
}

func (a *PropAsset) column(arg Argument) (prop.Prop, error) {
	materials := make([]material.Material, len(a.Materials))
	for i, name := range a.Materials {
		m, err := arg.material(name)
		if err != nil {
			return nil, err
		}
		materials[i] = m
	}
	ground, err := arg.materials(a.Ground)
	if err != nil {
		return nil, err
	}
	replace, err := arg.materials(a.Replace)
	if err != nil {
		return nil, err
	}
	return prop.NewColumn(prop.ColumnConfig{Materials: materials, Down: a.Down, Ground: ground, Replace: replace})
}

var treeKinds = map[string]prop.TreeKind{
	"oak":    prop.TreeOak,
	"birch":  prop.TreeBirch,
	"spruce": prop.TreeSpruce,
}

func (a *PropAsset) tree(arg Argument) (prop.Prop, error) {
	kind, ok := treeKinds[a.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown tree kind %q", a.Kind)
	}
	conf := prop.TreeConfig{Kind: kind, Seed: arg.seedFor(a.Seed).Int64()}
	var err error
	if conf.Log, err = arg.material(a.Log); err != nil {
		return nil, err
	}
	if conf.Leaves, err = arg.material(a.Leaves); err != nil {
		return nil, err
	}
	if conf.Dirt, err = arg.material(a.Dirt); err != nil {
		return nil, err
	}
	if conf.Soil, err = arg.materials(a.Soil); err != nil {
		return nil, err
	}
	return prop.NewTree(conf)
}

package asset

import (
	"fmt"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/position"
	"github.com/go-gl/mathgl/mgl64"
)

// PositionAsset describes a position provider.
type PositionAsset struct {
	Type string `yaml:"type"`
	Skip bool   `yaml:"skip"`

	// List.
	Points [][3]float64 `yaml:"points"`
	// Grid.
	Spacing int     `yaml:"spacing"`
	Jitter  float64 `yaml:"jitter"`
	Y       float64 `yaml:"y"`
	Seed    string  `yaml:"seed"`
	// SimpleHorizontal: the vertical range [min, max) positions are accepted in.
	RangeY []float64 `yaml:"range_y"`
	// Offset.
	Offset [3]int `yaml:"offset"`
	// DensityFilter.
	Threshold float64       `yaml:"threshold"`
	Density   *DensityAsset `yaml:"density"`

	// Positions is the inner provider of SimpleHorizontal, Offset and DensityFilter.
	Positions *PositionAsset `yaml:"positions"`
	// Children holds the providers of a Union.
	Children []*PositionAsset `yaml:"children"`
}

// Build builds the position provider. Skipped providers and providers that fail to build are replaced with
// position.None, the latter being reported as a problem.
func (a *PositionAsset) Build(arg Argument) position.Provider {
	if a == nil || a.Skip {
		return position.None{}
	}
	p, err := a.build(arg)
	if err != nil {
		arg.problem(err)
		return position.None{}
	}
	return p
}

func (a *PositionAsset) build(arg Argument) (position.Provider, error) {
	switch a.Type {
	case "None":
		return position.None{}, nil
	case "List":
		l := make(position.List, len(a.Points))
		for i, p := range a.Points {
			l[i] = mgl64.Vec3(p)
		}
		return l, nil
	case "Grid":
		return position.NewGrid(a.Spacing, a.Jitter, a.Y, arg.seedFor(a.Seed).Generator())
	case "SimpleHorizontal":
		if len(a.RangeY) != 2 {
			return nil, fmt.Errorf("range_y must hold a minimum and a maximum")
		}
		r := cube.Range[float64]{Min: a.RangeY[0], Max: a.RangeY[1]}
		if !r.Valid() {
			return nil, fmt.Errorf("invalid range_y %v", a.RangeY)
		}
		return position.SimpleHorizontal{RangeY: r, Inner: a.inner(arg)}, nil
	case "Offset":
		return position.Offset{Delta: cube.Pos(a.Offset), Inner: a.inner(arg)}, nil
	case "DensityFilter":
		if a.Density == nil {
			return nil, fmt.Errorf("density filter requires a density")
		}
		return position.DensityFilter{Density: a.Density.Build(arg.child("density")), Threshold: a.Threshold, Inner: a.inner(arg)}, nil
	case "Union":
		u := make(position.Union, len(a.Children))
		for i, c := range a.Children {
			u[i] = c.Build(arg.index("children", i))
		}
		return u, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, a.Type)
}

func (a *PositionAsset) inner(arg Argument) position.Provider {
	return a.Positions.Build(arg.child("positions"))
}

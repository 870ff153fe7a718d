package asset

import (
	"fmt"

	"github.com/df-mc/worldgen/server/world/generator/density"
)

// DensityAsset describes a node of a density tree. Type selects the node, the other fields are the
// parameters of the node types that use them.
type DensityAsset struct {
	Type string `yaml:"type"`
	Skip bool   `yaml:"skip"`

	// Constant.
	Value float64 `yaml:"value"`
	// GradientWarp: Inputs holds the warp field followed by the input field. SampleRange and WarpFactor
	// default to 1 when omitted.
	SampleRange *float64 `yaml:"sample_range"`
	WarpFactor  *float64 `yaml:"warp_factor"`
	Flat        bool    `yaml:"2d"`
	YFor2D      float64 `yaml:"y_for_2d"`
	// Simplex and Perlin.
	Seed        string  `yaml:"seed"`
	Frequency   float64 `yaml:"frequency"`
	Amplitude   float64 `yaml:"amplitude"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	// YGradient.
	Base  float64 `yaml:"base"`
	Scale float64 `yaml:"scale"`
	// Clamp.
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`

	Inputs []*DensityAsset `yaml:"inputs"`
}

// Build builds the density node. Skipped nodes and nodes that fail to build are replaced with density.Zero,
// the latter being reported as a problem.
func (a *DensityAsset) Build(arg Argument) density.Density {
	if a == nil || a.Skip {
		return density.Zero
	}
	d, err := a.build(arg)
	if err != nil {
		arg.problem(err)
		return density.Zero
	}
	return d
}

func (a *DensityAsset) build(arg Argument) (density.Density, error) {
	switch a.Type {
	case "Constant":
		return density.Constant(a.Value), nil
	case "GradientWarp":
		in, err := a.inputs(arg, 2)
		if err != nil {
			return nil, err
		}
		var opts []density.GradientWarpOption
		if a.Flat {
			opts = append(opts, density.Flat2D(a.YFor2D))
		}
		return density.NewGradientWarp(in[0], in[1], valueOr(a.SampleRange, 1), valueOr(a.WarpFactor, 1), opts...)
	case "Simplex":
		return density.NewSimplex(arg.seedFor(a.Seed).Int64(), a.noiseConfig())
	case "Perlin":
		return density.NewPerlin(arg.seedFor(a.Seed).Int64(), a.noiseConfig())
	case "YGradient":
		return density.NewYGradient(a.Base, a.Scale)
	case "Sum":
		in, err := a.inputs(arg, -1)
		return density.Sum(in), err
	case "Product":
		in, err := a.inputs(arg, -1)
		return density.Product(in), err
	case "Clamp":
		in, err := a.inputs(arg, 1)
		if err != nil {
			return nil, err
		}
		return density.NewClamp(in[0], a.Min, a.Max)
	case "Abs":
		in, err := a.inputs(arg, 1)
		if err != nil {
			return nil, err
		}
		return density.Abs{Input: in[0]}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, a.Type)
}

// inputs builds the inputs of the node. If n is not negative, exactly n inputs are required.
func (a *DensityAsset) inputs(arg Argument, n int) ([]density.Density, error) {
	if n >= 0 && len(a.Inputs) != n {
		return nil, fmt.Errorf("%s requires %d inputs, got %d", a.Type, n, len(a.Inputs))
	}
	in := make([]density.Density, len(a.Inputs))
	for i, input := range a.Inputs {
		in[i] = input.Build(arg.index("inputs", i))
	}
	return in, nil
}

// valueOr returns *v, or def if v is nil.
func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (a *DensityAsset) noiseConfig() density.NoiseConfig {
	return density.NoiseConfig{
		Frequency:   a.Frequency,
		Amplitude:   a.Amplitude,
		Octaves:     a.Octaves,
		Persistence: a.Persistence,
		Lacunarity:  a.Lacunarity,
		Flat:        a.Flat,
	}
}

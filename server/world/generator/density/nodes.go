package density

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Constant is a Density with the same value everywhere.
type Constant float64

// Zero is the constant-zero Density. It replaces nodes that are skipped or failed to build.
var Zero Density = Constant(0)

// Value ...
func (c Constant) Value(mgl64.Vec3) float64 {
	return float64(c)
}

// YGradient is a Density decreasing linearly with height: it is 0 at Base, positive below and negative
// above. Scale is the amount of voxels over which the value changes by 1.
type YGradient struct {
	base, scale float64
}

// NewYGradient returns a YGradient with the base height and scale passed.
func NewYGradient(base, scale float64) (YGradient, error) {
	if !finite(base, scale) {
		return YGradient{}, ErrInvalidParameter
	}
	if scale == 0 {
		return YGradient{}, fmt.Errorf("density: y gradient scale must not be 0")
	}
	return YGradient{base: base, scale: scale}, nil
}

// Value ...
func (g YGradient) Value(pos mgl64.Vec3) float64 {
	return (g.base - pos.Y()) / g.scale
}

// Sum is a Density returning the sum of all its inputs.
type Sum []Density

// Value ...
func (s Sum) Value(pos mgl64.Vec3) float64 {
	var v float64
	for _, d := range s {
		v += d.Value(pos)
	}
	return v
}

// Product is a Density returning the product of all its inputs. An empty Product is 1.
type Product []Density

// Value ...
func (p Product) Value(pos mgl64.Vec3) float64 {
	v := 1.0
	for _, d := range p {
		v *= d.Value(pos)
	}
	return v
}

// Clamp limits the value of its input to [Min, Max].
type Clamp struct {
	input    Density
	min, max float64
}

// NewClamp returns a Clamp of input to the range passed.
func NewClamp(input Density, lo, hi float64) (Clamp, error) {
	if input == nil {
		return Clamp{}, ErrMissingInput
	}
	if !finite(lo, hi) || lo > hi {
		return Clamp{}, fmt.Errorf("density: invalid clamp range [%v, %v]", lo, hi)
	}
	return Clamp{input: input, min: lo, max: hi}, nil
}

// Value ...
func (c Clamp) Value(pos mgl64.Vec3) float64 {
	return math.Max(c.min, math.Min(c.max, c.input.Value(pos)))
}

// Abs returns the absolute value of its input.
type Abs struct {
	Input Density
}

// Value ...
func (a Abs) Value(pos mgl64.Vec3) float64 {
	return math.Abs(a.Input.Value(pos))
}

// Flat samples its input at a fixed height, turning any Density into a 2D field.
type Flat struct {
	Input Density
	Y     float64
}

// Value ...
func (f Flat) Value(pos mgl64.Vec3) float64 {
	return f.Input.Value(mgl64.Vec3{pos.X(), f.Y, pos.Z()})
}

package density

import (
	"github.com/go-gl/mathgl/mgl64"
)

// GradientWarp samples an input field at a position displaced along the gradient of a warp field. The
// gradient is estimated using central differences SampleRange voxels apart, and the displacement is the
// gradient multiplied by WarpFactor.
type GradientWarp struct {
	warp, input Density
	sampleRange float64
	warpFactor  float64

	flat  bool
	flatY float64
}

// GradientWarpOption configures optional behaviour of a GradientWarp.
type GradientWarpOption func(g *GradientWarp)

// Flat2D makes the GradientWarp only warp horizontally. The warp field is sampled at height y and the
// vertical component of the position passed to the input is kept.
func Flat2D(y float64) GradientWarpOption {
	return func(g *GradientWarp) {
		g.flat, g.flatY = true, y
	}
}

// NewGradientWarp returns a GradientWarp of input warped by the gradient of warp. An error is returned if
// sampleRange is not greater than 0 or if any parameter is not finite.
func NewGradientWarp(warp, input Density, sampleRange, warpFactor float64, opts ...GradientWarpOption) (*GradientWarp, error) {
	if warp == nil || input == nil {
		return nil, ErrMissingInput
	}
	if !finite(sampleRange, warpFactor) {
		return nil, ErrInvalidParameter
	}
	if sampleRange <= 0 {
		return nil, ErrInvalidSampleRange
	}
	g := &GradientWarp{warp: warp, input: input, sampleRange: sampleRange, warpFactor: warpFactor}
	for _, opt := range opts {
		opt(g)
	}
	if !finite(g.flatY) {
		return nil, ErrInvalidParameter
	}
	return g, nil
}

// Gradient returns the estimated gradient of the warp field at the position passed.
func (g *GradientWarp) Gradient(pos mgl64.Vec3) mgl64.Vec3 {
	r := g.sampleRange
	if g.flat {
		pos = mgl64.Vec3{pos.X(), g.flatY, pos.Z()}
	}
	dx := g.warp.Value(pos.Add(mgl64.Vec3{r, 0, 0})) - g.warp.Value(pos.Sub(mgl64.Vec3{r, 0, 0}))
	dz := g.warp.Value(pos.Add(mgl64.Vec3{0, 0, r})) - g.warp.Value(pos.Sub(mgl64.Vec3{0, 0, r}))
	var dy float64
	if !g.flat {
		dy = g.warp.Value(pos.Add(mgl64.Vec3{0, r, 0})) - g.warp.Value(pos.Sub(mgl64.Vec3{0, r, 0}))
	}
	return mgl64.Vec3{dx, dy, dz}.Mul(1 / (2 * r))
}

// Value ...
func (g *GradientWarp) Value(pos mgl64.Vec3) float64 {
	return g.input.Value(pos.Add(g.Gradient(pos).Mul(g.warpFactor)))
}

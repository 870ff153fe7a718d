// Package density implements composable scalar fields used to shape terrain. A Density is a pure function
// of position: it holds no mutable state after construction, so a single tree of nodes may be evaluated
// from any number of goroutines at once. Invalid configuration is rejected by the constructors; evaluation
// itself never fails.
package density

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Density is a scalar field over voxel space. Positive values are generally considered solid.
type Density interface {
	// Value returns the value of the field at the position passed.
	Value(pos mgl64.Vec3) float64
}

// Func is a function implementing Density.
type Func func(pos mgl64.Vec3) float64

// Value ...
func (f Func) Value(pos mgl64.Vec3) float64 {
	return f(pos)
}

var (
	// ErrInvalidSampleRange is returned when a sample range is not a finite number greater than 0.
	ErrInvalidSampleRange = errors.New("density: sample range must be greater than 0")
	// ErrInvalidParameter is returned when a numeric parameter is NaN or infinite.
	ErrInvalidParameter = errors.New("density: parameter must be a finite number")
	// ErrMissingInput is returned when a node is constructed without a required input.
	ErrMissingInput = errors.New("density: missing input")
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

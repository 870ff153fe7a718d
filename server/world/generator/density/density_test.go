package density

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGradientWarpValidation(t *testing.T) {
	if _, err := NewGradientWarp(Zero, Zero, 0, 1); !errors.Is(err, ErrInvalidSampleRange) {
		t.Fatalf("expected ErrInvalidSampleRange for sample range 0, got %v", err)
	}
	if _, err := NewGradientWarp(Zero, Zero, -2, 1); !errors.Is(err, ErrInvalidSampleRange) {
		t.Fatalf("expected ErrInvalidSampleRange for negative sample range, got %v", err)
	}
	if _, err := NewGradientWarp(Zero, Zero, math.NaN(), 1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for NaN sample range, got %v", err)
	}
	if _, err := NewGradientWarp(nil, Zero, 1, 1); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if _, err := NewGradientWarp(Zero, Zero, 1, math.Inf(1)); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for infinite warp factor, got %v", err)
	}
}

func TestGradientWarpLinearField(t *testing.T) {
	// The gradient of warp is (2, 0, 0) everywhere, so the input is sampled 2*factor voxels further along X.
	warp := Func(func(pos mgl64.Vec3) float64 { return 2 * pos.X() })
	input := Func(func(pos mgl64.Vec3) float64 { return pos.X() })
	g, err := NewGradientWarp(warp, input, 0.5, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grad := g.Gradient(mgl64.Vec3{4, 1, 9}); !grad.ApproxEqual(mgl64.Vec3{2, 0, 0}) {
		t.Fatalf("expected gradient (2, 0, 0), got %v", grad)
	}
	if v := g.Value(mgl64.Vec3{4, 1, 9}); math.Abs(v-10) > 1e-9 {
		t.Fatalf("expected 10, got %v", v)
	}
}

func TestGradientWarpZeroFactorIsIdentity(t *testing.T) {
	s, err := NewSimplex(7, NoiseConfig{Frequency: 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := NewGradientWarp(s, s, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []mgl64.Vec3{{0, 0, 0}, {13.5, 64, -8}, {-100, 3, 77}} {
		if g.Value(p) != s.Value(p) {
			t.Fatalf("expected warp factor 0 to sample input unchanged at %v", p)
		}
	}
}

func TestGradientWarpFlat(t *testing.T) {
	warp := Func(func(pos mgl64.Vec3) float64 { return pos.Y() * pos.X() })
	input := Func(func(pos mgl64.Vec3) float64 { return pos.Y() })
	g, err := NewGradientWarp(warp, input, 1, 1, Flat2D(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Sampled at y=5 the gradient is (5, 0, 0), leaving the height passed to the input untouched.
	if grad := g.Gradient(mgl64.Vec3{1, 40, 1}); !grad.ApproxEqual(mgl64.Vec3{5, 0, 0}) {
		t.Fatalf("expected gradient (5, 0, 0), got %v", grad)
	}
	if v := g.Value(mgl64.Vec3{1, 40, 1}); v != 40 {
		t.Fatalf("expected 40, got %v", v)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	conf := NoiseConfig{Frequency: 0.05, Octaves: 4}
	a, _ := NewSimplex(42, conf)
	b, _ := NewSimplex(42, conf)
	p, _ := NewPerlin(42, conf)
	q, _ := NewPerlin(42, conf)
	for x := -20.0; x < 20; x += 3.7 {
		pos := mgl64.Vec3{x, x / 2, -x}
		if a.Value(pos) != b.Value(pos) {
			t.Fatalf("expected equal simplex values at %v", pos)
		}
		if p.Value(pos) != q.Value(pos) {
			t.Fatalf("expected equal perlin values at %v", pos)
		}
		if v := a.Value(pos); v < -1 || v > 1 {
			t.Fatalf("expected simplex value in [-1, 1], got %v", v)
		}
	}
}

func TestNoiseConfigValidation(t *testing.T) {
	if _, err := NewSimplex(1, NoiseConfig{Frequency: math.NaN()}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := NewPerlin(1, NoiseConfig{Octaves: 40}); err == nil {
		t.Fatalf("expected error for too many octaves")
	}
}

func TestNodes(t *testing.T) {
	pos := mgl64.Vec3{0, 70, 0}
	g, err := NewYGradient(64, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := g.Value(pos); v != -3 {
		t.Fatalf("expected -3, got %v", v)
	}
	if _, err := NewYGradient(64, 0); err == nil {
		t.Fatalf("expected error for scale 0")
	}
	if v := (Sum{Constant(1), Constant(2), g}).Value(pos); v != 0 {
		t.Fatalf("expected 0, got %v", v)
	}
	if v := (Product{}).Value(pos); v != 1 {
		t.Fatalf("expected empty product to be 1, got %v", v)
	}
	c, err := NewClamp(g, -1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := c.Value(pos); v != -1 {
		t.Fatalf("expected -1, got %v", v)
	}
	if _, err := NewClamp(g, 2, 1); err == nil {
		t.Fatalf("expected error for inverted clamp range")
	}
	if v := (Abs{Input: g}).Value(pos); v != 3 {
		t.Fatalf("expected 3, got %v", v)
	}
	if v := (Flat{Input: g, Y: 60}).Value(pos); v != 2 {
		t.Fatalf("expected 2, got %v", v)
	}
}

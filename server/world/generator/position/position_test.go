package position

import (
	"slices"
	"testing"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/density"
	"github.com/df-mc/worldgen/server/world/generator/seed"
	"github.com/go-gl/mathgl/mgl64"
)

func chunkContext(x, z int) Context {
	return Context{Bounds: cube.NewBounds(cube.Pos{x * 16, 0, z * 16}, cube.Pos{x*16 + 15, 127, z*16 + 15})}
}

func TestListInBounds(t *testing.T) {
	l := List{{1, 5, 1}, {20, 5, 1}, {3.5, 200, 2}, {15.9, 0, 15.9}}
	got := Collect(l, chunkContext(0, 0))
	want := []mgl64.Vec3{{1, 5, 1}, {15.9, 0, 15.9}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNoneIsIdentity(t *testing.T) {
	l := List{{1, 1, 1}, {2, 2, 2}}
	a := Collect(Union{None{}, l, None{}}, chunkContext(0, 0))
	if !slices.Equal(a, Collect(l, chunkContext(0, 0))) {
		t.Fatalf("expected None to add no positions, got %v", a)
	}
}

func TestSimpleHorizontal(t *testing.T) {
	l := List{{1, 10, 1}, {1, 20, 1}, {1, 30, 1}}
	s := SimpleHorizontal{RangeY: cube.Range[float64]{Min: 10, Max: 30}, Inner: l}
	got := Collect(s, chunkContext(0, 0))
	want := []mgl64.Vec3{{1, 10, 1}, {1, 20, 1}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOffset(t *testing.T) {
	l := List{{0, 0, 0}, {15, 0, 0}}
	o := Offset{Delta: cube.Pos{2, 3, 0}, Inner: l}
	got := Collect(o, chunkContext(0, 0))
	want := []mgl64.Vec3{{2, 3, 0}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDensityFilter(t *testing.T) {
	l := List{{1, 1, 1}, {5, 1, 1}, {9, 1, 1}}
	d := DensityFilter{Density: density.Func(func(pos mgl64.Vec3) float64 { return pos.X() }), Threshold: 4, Inner: l}
	got := Collect(d, chunkContext(0, 0))
	want := []mgl64.Vec3{{5, 1, 1}, {9, 1, 1}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGridIndependentOfBounds(t *testing.T) {
	g, err := NewGrid(8, 0.75, 64, seed.New(99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	big := Context{Bounds: cube.NewBounds(cube.Pos{-32, 0, -32}, cube.Pos{31, 127, 31})}
	all := Collect(g, big)
	if len(all) != 64 {
		t.Fatalf("expected 64 positions, got %d", len(all))
	}
	var fromChunks []mgl64.Vec3
	for x := -2; x < 2; x++ {
		for z := -2; z < 2; z++ {
			fromChunks = append(fromChunks, Collect(g, chunkContext(x, z))...)
		}
	}
	if len(fromChunks) != len(all) {
		t.Fatalf("expected %d positions across chunks, got %d", len(all), len(fromChunks))
	}
	for _, pos := range fromChunks {
		if !slices.Contains(all, pos) {
			t.Fatalf("expected position %v to be produced regardless of bounds", pos)
		}
	}
	if !slices.Equal(all, Collect(g, big)) {
		t.Fatalf("expected enumeration to be restartable")
	}
}

func TestGridValidation(t *testing.T) {
	if _, err := NewGrid(0, 0, 0, seed.New(1)); err == nil {
		t.Fatalf("expected error for spacing 0")
	}
	if _, err := NewGrid(4, 1.5, 0, seed.New(1)); err == nil {
		t.Fatalf("expected error for jitter above 1")
	}
}

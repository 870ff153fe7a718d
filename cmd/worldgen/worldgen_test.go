package main

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/df-mc/worldgen/server/world/generator"
	"github.com/df-mc/worldgen/server/world/voxel"
)

func TestReadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldgen.toml")
	c, err := readConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != DefaultConfig() {
		t.Fatalf("expected default config, got %+v", c)
	}
	again, err := readConfig(path)
	if err != nil {
		t.Fatalf("unexpected error reading written config: %v", err)
	}
	if again != c {
		t.Fatalf("expected config to survive a round trip, got %+v", again)
	}
}

func TestSinkStoresChunks(t *testing.T) {
	sink, err := openSink(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	t.Cleanup(func() {
		if err := sink.Close(); err != nil {
			t.Errorf("close sink: %v", err)
		}
	})

	uc := DefaultConfig()
	uc.Generator.Workers = 2
	conf, err := uc.Config(nil, nil)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	g := generator.New(conf)
	t.Cleanup(g.Close)
	profile := generator.NewGeneratorProfile("", 3)

	var committed []*generator.Chunk
	out := generator.OutputFunc(func(c *generator.Chunk) error {
		committed = append(committed, c)
		return sink.Commit(c)
	})
	for _, req := range areaRequests(profile, 0, 0, 1, nil) {
		if err := g.Generate(context.Background(), req, out); err != nil {
			t.Fatalf("generate %v: %v", req, err)
		}
	}
	if len(committed) != 9 {
		t.Fatalf("expected 9 chunks, got %d", len(committed))
	}
	for _, want := range committed {
		got, ok, err := sink.Load(want.X, want.Z)
		if err != nil || !ok {
			t.Fatalf("expected chunk %d, %d to be stored, got %v, %v", want.X, want.Z, ok, err)
		}
		a, _ := voxel.Encode(want.Voxels)
		b, _ := voxel.Encode(got.Voxels)
		if !slices.Equal(a, b) {
			t.Fatalf("expected stored voxels of chunk %d, %d to match", want.X, want.Z)
		}
		if len(got.Spawns) != len(want.Spawns) || (len(want.Spawns) > 0 && !slices.Equal(got.Spawns, want.Spawns)) {
			t.Fatalf("expected stored spawns %v, got %v", want.Spawns, got.Spawns)
		}
	}
	if _, ok, err := sink.Load(5, 5); ok || err != nil {
		t.Fatalf("expected missing chunk not to be found, got %v, %v", ok, err)
	}
}

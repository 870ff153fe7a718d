package asset

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/generator/density"
	"github.com/df-mc/worldgen/server/world/generator/position"
	"github.com/df-mc/worldgen/server/world/generator/prop"
	"github.com/df-mc/worldgen/server/world/generator/worker"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/df-mc/worldgen/server/world/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

func mustParse(t *testing.T, doc string) *Document {
	t.Helper()
	d, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return d
}

func TestDefaultBuilds(t *testing.T) {
	reg := material.DefaultRegistry()
	s, problems := Default().Build(1234, reg)
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if s.Name != "Default" {
		t.Fatalf("expected name Default, got %q", s.Name)
	}
	if len(s.Stages) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(s.Stages))
	}
	stone, _ := reg.Lookup("stone")
	if s.Terrain.Solid != stone || s.Terrain.Height != (cube.Range[int]{Min: 0, Max: 128}) {
		t.Fatalf("unexpected terrain %+v", s.Terrain)
	}
	if s.Terrain.Density.Value(mgl64.Vec3{0, 0, 0}) <= 0 || s.Terrain.Density.Value(mgl64.Vec3{0, 127, 0}) >= 0 {
		t.Fatalf("expected terrain to be solid at the bottom and empty at the top")
	}
}

func TestSkippedGradientWarpIsZero(t *testing.T) {
	a := &DensityAsset{
		Type:        "GradientWarp",
		Skip:        true,
		SampleRange: ptr(-5.0),
		WarpFactor:  ptr(100.0),
		Inputs:      []*DensityAsset{{Type: "Constant", Value: 3}},
	}
	var problems []error
	d := a.Build(NewArgument(1, material.DefaultRegistry(), &problems))
	if d != density.Zero {
		t.Fatalf("expected density.Zero, got %v", d)
	}
	if len(problems) != 0 {
		t.Fatalf("expected skipped node not to be validated, got %v", problems)
	}
	for _, p := range []mgl64.Vec3{{0, 0, 0}, {1e6, -3, 7}} {
		if v := d.Value(p); v != 0 {
			t.Fatalf("expected 0 at %v, got %v", p, v)
		}
	}
}

func ptr[T any](v T) *T { return &v }

func TestGradientWarpDefaults(t *testing.T) {
	doc := mustParse(t, `
name: Warped
terrain:
  density:
    type: GradientWarp
    inputs: [{type: Constant, value: 1}, {type: Constant, value: 5}]
`)
	s, problems := doc.Build(1, material.DefaultRegistry())
	if len(problems) != 0 {
		t.Fatalf("expected omitted warp parameters to default, got %v", problems)
	}
	if _, ok := s.Terrain.Density.(*density.GradientWarp); !ok {
		t.Fatalf("expected a GradientWarp, got %T", s.Terrain.Density)
	}
	if v := s.Terrain.Density.Value(mgl64.Vec3{3, 4, 5}); v != 5 {
		t.Fatalf("expected warped constant 5, got %v", v)
	}

	var lit []error
	d := (&DensityAsset{Type: "GradientWarp", Inputs: []*DensityAsset{
		{Type: "Constant", Value: 1}, {Type: "Constant", Value: 5},
	}}).Build(NewArgument(1, material.DefaultRegistry(), &lit))
	if len(lit) != 0 || d.Value(mgl64.Vec3{}) != 5 {
		t.Fatalf("expected a warped constant 5 without problems, got %v and %v", d.Value(mgl64.Vec3{}), lit)
	}
}

func TestInvalidNodeSubstituted(t *testing.T) {
	doc := mustParse(t, `
name: Broken
terrain:
  density:
    type: Sum
    inputs:
      - {type: Constant, value: 1}
      - type: GradientWarp
        sample_range: 0
        warp_factor: 1
        inputs: [{type: Constant, value: 1}, {type: Constant, value: 2}]
stages:
  - name: bad
    positions: {type: Grid, spacing: 0}
    prop:
      type: Weighted
      entries:
        - {id: a, weight: 0, prop: {type: None}}
  - name: good
    positions: {type: List, points: [[1, 2, 3]]}
    prop: {type: Block, material: unobtainium}
`)
	s, problems := doc.Build(1, material.DefaultRegistry())
	if len(problems) != 4 {
		t.Fatalf("expected 4 problems, got %d: %v", len(problems), problems)
	}
	if !errors.Is(problems[0], density.ErrInvalidSampleRange) {
		t.Fatalf("expected invalid sample range problem, got %v", problems[0])
	}
	var pe *ProblemError
	if !errors.As(problems[0], &pe) || pe.Path != "terrain.density.inputs[1]" {
		t.Fatalf("expected problem at terrain.density.inputs[1], got %v", problems[0])
	}
	if !errors.Is(problems[3], ErrUnknownMaterial) {
		t.Fatalf("expected unknown material problem, got %v", problems[3])
	}
	if v := s.Terrain.Density.Value(mgl64.Vec3{}); v != 1 {
		t.Fatalf("expected failed node to contribute 0, got %v", v)
	}
	if _, ok := s.Stages[0].Positions.(position.None); !ok {
		t.Fatalf("expected invalid grid to be replaced by None, got %T", s.Stages[0].Positions)
	}
	if s.Stages[0].Prop != prop.NoProp() || s.Stages[1].Prop != prop.NoProp() {
		t.Fatalf("expected invalid props to be replaced by NoProp")
	}
}

func TestSchemaRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown type":  "name: x\nterrain:\n  density: {type: Cube}\n",
		"missing name":  "terrain:\n  density: {type: Constant}\n",
		"unknown field": "name: x\nterrain:\n  density: {type: Constant, colour: red}\n",
		"wrong type":    "name: x\nterrain:\n  density: {type: Constant, value: high}\n",
	} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("%s: expected ErrInvalidDocument, got %v", name, err)
		}
	}
	if _, err := Parse([]byte("name: [")); err == nil {
		t.Fatalf("expected malformed YAML to fail")
	}
}

func TestSkippedNodes(t *testing.T) {
	doc := mustParse(t, `
name: Skips
terrain:
  density: {type: Constant, value: 1}
stages:
  - name: skipped stage
    skip: true
    positions: {type: None}
    prop: {type: None}
  - name: skipped nodes
    positions: {type: Grid, spacing: -1, skip: true}
    prop: {type: Ore, size: 0, skip: true}
`)
	s, problems := doc.Build(1, material.DefaultRegistry())
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if len(s.Stages) != 1 {
		t.Fatalf("expected skipped stage to be dropped, got %d stages", len(s.Stages))
	}
	if s.Stages[0].Prop != prop.NoProp() {
		t.Fatalf("expected skipped prop to be NoProp")
	}
	if _, ok := s.Stages[0].Positions.(position.None); !ok {
		t.Fatalf("expected skipped provider to be None")
	}
}

func TestWeightedSeeds(t *testing.T) {
	doc := mustParse(t, `
name: Weighted
terrain:
  density: {type: Constant, value: 1}
stages:
  - name: pick
    positions: {type: None}
    prop:
      type: Weighted
      seed: picks
      entries:
        - {id: a, weight: 1, prop: {type: Entity, entity: a}}
        - {id: b, weight: 1, prop: {type: Entity, entity: b}}
`)
	picks := func(world int64) []prop.Prop {
		s, problems := doc.Build(world, material.DefaultRegistry())
		if len(problems) != 0 {
			t.Fatalf("unexpected problems: %v", problems)
		}
		w := s.Stages[0].Prop.(*prop.Weighted)
		var out []prop.Prop
		for i := 0; i < 64; i++ {
			p, _ := w.Pick(cube.Pos{i, 0, i * 3})
			out = append(out, p)
		}
		return out
	}
	a, b, c := picks(1), picks(1), picks(2)
	var differs bool
	for i := range a {
		// Props are rebuilt every time, so they are compared by the entity they spawn.
		if a[i].WriteBounds() != b[i].WriteBounds() || entityType(a[i]) != entityType(b[i]) {
			t.Fatalf("expected identical picks for identical world seeds")
		}
		if entityType(a[i]) != entityType(c[i]) {
			differs = true
		}
	}
	if !differs {
		t.Fatalf("expected other world seed to change picks")
	}
}

func entityType(p prop.Prop) string {
	res := p.Scan(cube.Pos{0, 1, 0}, groundBuffer(), workerID)
	var sink spawnSink
	p.Place(prop.Context{Result: res, Space: groundBuffer(), Entities: &sink})
	if len(sink) == 0 {
		return ""
	}
	return sink[0].Type
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":    {Data: []byte("name: A\nterrain:\n  density: {type: Constant}\n")},
		"b.yaml":    {Data: []byte("name: B\nterrain:\n  density: {type: Constant}\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	docs, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 || docs["A"] == nil || docs["B"] == nil {
		t.Fatalf("expected documents A and B, got %v", docs)
	}
	fsys["c.yaml"] = &fstest.MapFile{Data: []byte("name: A\nterrain:\n  density: {type: Constant}\n")}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate names to fail")
	}
}

var workerID worker.Id

type spawnSink []prop.Spawn

func (s *spawnSink) Spawn(sp prop.Spawn) { *s = append(*s, sp) }

// groundBuffer returns a small Buffer with a single solid voxel at the origin.
func groundBuffer() *voxel.Buffer {
	b := voxel.NewBuffer(cube.NewBounds(cube.Pos{-1, 0, -1}, cube.Pos{1, 3, 1}))
	stone, _ := material.DefaultRegistry().Lookup("stone")
	b.SetMaterial(cube.Pos{}, stone)
	return b
}

// Package asset implements the world structure documents that describe the terrain and props of a world.
// Documents are YAML files validated against an embedded JSON schema. Building a document turns it into
// the density, position and prop trees used during generation. A node that fails to build is replaced with
// its no-op equivalent and reported as a problem, so that a single bad definition never prevents the rest
// of a world from generating.
package asset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/structure.schema.json
var schemaData []byte

// ErrInvalidDocument is returned when a document does not match the world structure schema.
var ErrInvalidDocument = errors.New("asset: invalid world structure document")

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if schemaErr = c.AddResource("structure.schema.json", bytes.NewReader(schemaData)); schemaErr != nil {
			return
		}
		schema, schemaErr = c.Compile("structure.schema.json")
	})
	return schema, schemaErr
}

// Document is a world structure document.
type Document struct {
	Name    string       `yaml:"name"`
	Terrain TerrainAsset `yaml:"terrain"`
	Stages  []StageAsset `yaml:"stages"`
}

// TerrainAsset describes how the terrain of a world is shaped and covered.
type TerrainAsset struct {
	// Height is the vertical range [min, max) of the world.
	Height      []int         `yaml:"height"`
	SeaLevel    int           `yaml:"sea_level"`
	Solid       string        `yaml:"solid"`
	Fluid       string        `yaml:"fluid"`
	Top         string        `yaml:"top"`
	Filler      string        `yaml:"filler"`
	FillerDepth int           `yaml:"filler_depth"`
	Bedrock     string        `yaml:"bedrock"`
	Density     *DensityAsset `yaml:"density"`
}

// StageAsset is a single prop placement pass: Prop is scanned at every position of Positions.
type StageAsset struct {
	Name      string         `yaml:"name"`
	Skip      bool           `yaml:"skip"`
	Positions *PositionAsset `yaml:"positions"`
	Prop      *PropAsset     `yaml:"prop"`
}

// Parse parses and validates a world structure document.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("asset: decode document: %w", err)
	}
	// The schema validator operates on JSON values, so the YAML tree is converted first.
	j, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	var v any
	if err := json.Unmarshal(j, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("asset: compile schema: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("asset: decode document: %w", err)
	}
	return doc, nil
}

// LoadFile reads and parses the world structure document at the path passed.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/df-mc/worldgen/server/world/generator"
	"github.com/df-mc/worldgen/server/world/generator/asset"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/pelletier/go-toml"
)

// UserConfig is the user configuration of the worldgen tool. It is stored in a TOML file and converted to
// the configurations of the generator and scheduler by calling Config.
type UserConfig struct {
	World struct {
		// Seed is the world seed chunks are generated with.
		Seed int64
		// Structure is the name of the world structure generated. Defaults to "Default".
		Structure string
		// StructuresFolder is a folder holding additional world structure documents. Structures found in
		// it replace the embedded structures of the same name.
		StructuresFolder string
	}
	Generator struct {
		// Workers is the amount of goroutines scanning and placing props. Set to 0 to use the amount of
		// CPUs.
		Workers int
		// GeneratorWorkers is the amount of chunks generated at the same time.
		GeneratorWorkers int
		// GeneratorQueueSize determines how many chunks can wait for a generator worker.
		GeneratorQueueSize int
	}
	Area struct {
		// CentreX and CentreZ are the chunk coordinates of the centre of the area generated.
		CentreX, CentreZ int32
		// Radius is the radius of the square area generated, in chunks.
		Radius int32
	}
	Output struct {
		// Folder is the folder of the LevelDB database generated chunks are written to.
		Folder string
	}
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.World.Structure = generator.DefaultWorldStructureName
	c.Generator.GeneratorWorkers = 4
	c.Generator.GeneratorQueueSize = 256
	c.Area.Radius = 8
	c.Output.Folder = "world"
	return c
}

// readConfig reads the configuration at the path passed. If the file does not exist yet, it is created with
// the default configuration.
func readConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		encoded, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, encoded, 0644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Config converts the UserConfig to a generator.Config. An error is returned if the structures folder
// could not be loaded.
func (uc UserConfig) Config(log *slog.Logger, metrics *generator.Metrics) (generator.Config, error) {
	d := asset.Default()
	structures := map[string]*asset.Document{d.Name: d}
	if folder := strings.TrimSpace(uc.World.StructuresFolder); folder != "" {
		docs, err := asset.LoadFS(os.DirFS(folder))
		if err != nil {
			return generator.Config{}, fmt.Errorf("load structures: %w", err)
		}
		for name, doc := range docs {
			structures[name] = doc
		}
	}
	return generator.Config{
		Log:        log,
		Workers:    uc.Generator.Workers,
		Materials:  material.DefaultRegistry(),
		Structures: structures,
		Metrics:    metrics,
	}, nil
}

// SchedulerConfig returns the configuration of the scheduler feeding the generator passed.
func (uc UserConfig) SchedulerConfig(log *slog.Logger, g *generator.Generator) generator.SchedulerConfig {
	return generator.SchedulerConfig{
		Log:       log,
		Generator: g,
		Workers:   uc.Generator.GeneratorWorkers,
		QueueSize: uc.Generator.GeneratorQueueSize,
	}
}

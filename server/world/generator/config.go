package generator

import (
	"log/slog"
	"runtime"

	"github.com/df-mc/worldgen/server/world/generator/asset"
	"github.com/df-mc/worldgen/server/world/generator/conveyor"
	"github.com/df-mc/worldgen/server/world/material"
)

// Config holds the parameters of a Generator. The zero value is usable; defaults are applied by
// withDefaults.
type Config struct {
	// Log is the Logger used to report failed chunks and problems found building world structures. If nil,
	// slog.Default() is used.
	Log *slog.Logger
	// Workers is the amount of goroutines scanning and placing props, shared by all chunks generated
	// concurrently. If 0 or lower, runtime.GOMAXPROCS(0) is used.
	Workers int
	// Materials resolves the material names of world structures. If nil, material.DefaultRegistry() is
	// used.
	Materials *material.Registry
	// Structures holds the world structure documents by name. If empty, only the embedded Default
	// structure is available.
	Structures map[string]*asset.Document
	// CellSize is the edge length of the cells used to detect overlapping props. Smaller cells find more
	// props that may be placed concurrently at the cost of more bookkeeping.
	CellSize int
	// Metrics receives generation counters. It may be nil.
	Metrics *Metrics
}

func (c Config) withDefaults() Config {
	if c.Log == nil {
		c.Log = slog.Default()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Materials == nil {
		c.Materials = material.DefaultRegistry()
	}
	if len(c.Structures) == 0 {
		d := asset.Default()
		c.Structures = map[string]*asset.Document{d.Name: d}
	}
	if c.CellSize <= 0 {
		c.CellSize = conveyor.DefaultCellSize
	}
	return c
}

// SchedulerConfig holds the parameters of a Scheduler.
type SchedulerConfig struct {
	// Log is the Logger used to report failed chunks. If nil, slog.Default() is used.
	Log *slog.Logger
	// Generator generates the chunks submitted. It must not be nil.
	Generator *Generator
	// Workers is the amount of chunks generated concurrently. If 0 or lower, 4 is used.
	Workers int
	// QueueSize is the amount of requests that may wait for a worker before Submit blocks. If 0 or lower,
	// 256 is used.
	QueueSize int
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.Generator == nil {
		panic("generator: scheduler requires a generator")
	}
	if c.Log == nil {
		c.Log = slog.Default()
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	return c
}

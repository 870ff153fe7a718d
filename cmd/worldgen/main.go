// Command worldgen generates a square area of chunks and writes them to a LevelDB database.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/df-mc/worldgen/server/world/generator"
)

func main() {
	configPath := flag.String("config", "worldgen.toml", "path of the TOML configuration file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := run(*configPath, log); err != nil {
		log.Error("worldgen failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath string, log *slog.Logger) error {
	uc, err := readConfig(configPath)
	if err != nil {
		return err
	}
	metrics := generator.NewMetrics()
	conf, err := uc.Config(log, metrics)
	if err != nil {
		return err
	}
	sink, err := openSink(uc.Output.Folder)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Error("close database", "err", err)
		}
	}()

	g := generator.New(conf)
	defer g.Close()
	s := generator.NewScheduler(uc.SchedulerConfig(log, g))
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// Chunks are no longer needed once the user interrupts generation.
	var interrupted atomic.Bool
	go func() {
		<-ctx.Done()
		interrupted.Store(true)
	}()
	stillNeeded := func(int64) bool { return !interrupted.Load() }

	profile := generator.NewGeneratorProfile(uc.World.Structure, uc.World.Seed)
	reqs := areaRequests(profile, uc.Area.CentreX, uc.Area.CentreZ, uc.Area.Radius, stillNeeded)

	start := time.Now()
	log.Info("generating chunks", "structure", profile.WorldStructureName(), "seed", profile.Seed(), "chunks", len(reqs))
	var failed int
	for res := range s.SubmitAll(ctx, reqs, sink) {
		if res.Err != nil && !errors.Is(res.Err, generator.ErrAbandoned) {
			failed++
		}
	}
	snap := metrics.Snapshot()
	log.Info("generation finished",
		"generated", snap.Generated,
		"abandoned", snap.Abandoned,
		"failed", snap.Failed,
		"waves", snap.Waves,
		"placed", snap.Placed,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	if failed > 0 {
		return errors.New("some chunks failed to generate")
	}
	return nil
}

// areaRequests returns requests for every chunk in the square of the radius passed around a centre chunk.
func areaRequests(profile *generator.GeneratorProfile, cx, cz, radius int32, stillNeeded func(int64) bool) []generator.ChunkRequest {
	radius = max(radius, 0)
	reqs := make([]generator.ChunkRequest, 0, (radius*2+1)*(radius*2+1))
	for x := cx - radius; x <= cx+radius; x++ {
		for z := cz - radius; z <= cz+radius; z++ {
			reqs = append(reqs, generator.NewChunkRequest(profile, x, z, stillNeeded))
		}
	}
	return reqs
}

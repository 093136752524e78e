package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/coolbirds/config"
	"github.com/pthm-cable/coolbirds/studio"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	rngSeed := flag.Uint64("rng-seed", 0, "RNG seed (0 = config value, then time-based)")
	birdSeed := flag.String("bird", "", "Starting bird seed string (empty = default bird)")
	random := flag.Bool("random", false, "Start from a random bird")
	good := flag.Bool("good", false, "Start from a catalog bird")
	generations := flag.Int("generations", -1, "Generations to evolve (-1 = use config)")
	side := flag.String("side", "", "Offspring to keep each generation: left, right or auto (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for lineage and diversity CSVs, config snapshot and STL")
	stlPath := flag.String("stl", "", "Write the final bird's STL to this path")
	resume := flag.String("resume", "", "Continue from the last bird of a lineage CSV")
	describe := flag.Bool("describe", false, "Print the starting bird's seed and description, then exit")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Use config values if not overridden by CLI
	gens := cfg.Evolution.Generations
	if *generations >= 0 {
		gens = *generations
	}
	keep := cfg.Evolution.Side
	if *side != "" {
		keep = *side
	}

	s, err := studio.New(cfg, studio.Options{
		RNGSeed:   *rngSeed,
		Start:     *birdSeed,
		Resume:    *resume,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	opts := runOptions{
		random:      *random,
		good:        *good,
		describe:    *describe,
		generations: gens,
		side:        keep,
		stlPath:     *stlPath,
		saveSTL:     *stlPath != "" || *outputDir != "",
	}
	if err := run(s, opts); err != nil {
		slog.Error("run failed", "error", err)
		s.Close()
		os.Exit(1)
	}
	if err := s.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	random, good bool
	describe     bool
	generations  int
	side         string
	stlPath      string
	saveSTL      bool
}

func run(s *studio.Studio, opts runOptions) error {
	switch {
	case opts.random:
		if err := s.Randomize(); err != nil {
			return err
		}
	case opts.good:
		if err := s.Good(); err != nil {
			return err
		}
	}

	if opts.describe {
		fmt.Println(s.Seed())
		fmt.Println(s.Describe(s.Current()))
		return nil
	}

	slog.Info("starting evolution",
		"generations", opts.generations,
		"side", opts.side,
		"bird", s.Current(),
	)
	if err := s.Evolve(opts.generations, opts.side); err != nil {
		return err
	}

	slog.Info("evolution finished",
		"generation", s.Generation(),
		"seed", s.Seed(),
		"description", s.Describe(s.Current()),
		"perf", s.Perf().Stats(),
	)

	if !opts.saveSTL {
		return nil
	}
	path, err := s.SaveSTL(opts.stlPath)
	if err != nil {
		return err
	}
	slog.Info("wrote stl", "path", path)
	return nil
}

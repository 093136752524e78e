// Bird viewer - edit a bird with sliders and breed it by picking offspring.
//
// Usage: go run ./cmd/birdview [-config path] [-bird seed]
package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/coolbirds/config"
	"github.com/pthm-cable/coolbirds/studio"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	rngSeed := flag.Uint64("rng-seed", 0, "RNG seed (0 = config value, then time-based)")
	birdSeed := flag.String("bird", "", "Starting bird seed string (empty = default bird)")
	outputDir := flag.String("output-dir", "", "Output directory for lineage CSVs and saved STL files")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	s, err := studio.New(cfg, studio.Options{
		RNGSeed:   *rngSeed,
		Start:     *birdSeed,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height), "coolbirds")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Viewer.TargetFPS))

	v := newViewer(s)
	defer v.unload()

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()
	}
}

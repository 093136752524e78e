// Package main searches for a bird whose mesh fits target print dimensions
// using CMA-ES over the normalized parameter space.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/config"
	"github.com/pthm-cable/coolbirds/export"
	"github.com/pthm-cable/coolbirds/geometry"
	"github.com/pthm-cable/coolbirds/seed"
)

// EvalRecord is one row of fit_log.csv.
type EvalRecord struct {
	Eval    int     `csv:"eval"`
	Fitness float64 `csv:"fitness"`
	Length  float64 `csv:"length"`
	Width   float64 `csv:"width"`
	Height  float64 `csv:"height"`
	Seed    string  `csv:"seed"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML or TOML file (empty = use defaults)")
	birdSeed := flag.String("bird", "", "Starting bird seed (empty = default bird)")
	length := flag.Float64("length", 0, "Target length, beak to tail (0 = free)")
	width := flag.Float64("width", 0, "Target width (0 = free)")
	height := flag.Float64("height", 0, "Target height (0 = free)")
	fields := flag.String("fields", "", "Comma separated fields to search (empty = all but base_flat)")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	segments := flag.Int("segments", 12, "Segments and stacks used while searching (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for fit_log.csv, best.stl and config.yaml")
	flag.Parse()

	target := Target{Length: *length, Width: *width, Height: *height}
	if err := target.Validate(); err != nil {
		log.Fatal(err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	start := bird.Default()
	if *birdSeed != "" {
		p, err := seed.Parse(*birdSeed)
		if err != nil {
			log.Fatalf("bad starting seed: %v", err)
		}
		start = p
	}

	params, err := NewParamVector(start, ParseFields(*fields))
	if err != nil {
		log.Fatal(err)
	}

	// Search on a coarse mesh; the extents barely move with resolution
	searchOpts := geometry.OptionsFromConfig(cfg)
	if *segments > 0 {
		searchOpts.Segments, searchOpts.Stacks = *segments, *segments
		searchOpts.Subdivisions = 0
	}
	evaluator := NewFitnessEvaluator(params, geometry.New(searchOpts), target)

	var logFile *os.File
	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			log.Fatalf("failed to create output directory: %v", err)
		}
		logFile, err = os.Create(filepath.Join(*outputDir, "fit_log.csv"))
		if err != nil {
			log.Fatalf("failed to create log file: %v", err)
		}
		defer logFile.Close()
	}

	dim := params.Dim()
	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	startTime := time.Now()
	headerWritten := false
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			r := evaluator.Evaluate(x)
			n := evaluator.Evals()

			if logFile != nil {
				rec := []EvalRecord{{
					Eval:    n,
					Fitness: r.Fitness,
					Length:  r.Size.X,
					Width:   r.Size.Y,
					Height:  r.Size.Z,
					Seed:    r.Seed(),
				}}
				write := gocsv.MarshalWithoutHeaders
				if !headerWritten {
					write = gocsv.Marshal
					headerWritten = true
				}
				if err := write(rec, logFile); err != nil {
					log.Printf("failed to log evaluation: %v", err)
				}
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-n) * (elapsed / time.Duration(n))
			fmt.Printf("Eval %d/%d: size=%.1fx%.1fx%.1f fitness=%.5f (best=%.5f) | elapsed: %s, ETA: %s\n",
				n, *maxEvals, r.Size.X, r.Size.Y, r.Size.Z, r.Fitness, evaluator.Best().Fitness,
				formatDuration(elapsed), formatDuration(remaining))
			return r.Fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES search over %d fields, population=%d, max_evals=%d\n", dim, popSize, *maxEvals)
	fmt.Printf("Target: length=%.1f width=%.1f height=%.1f\n", target.Length, target.Width, target.Height)

	if _, err := optimize.Minimize(problem, params.Initial(), settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := evaluator.Best()
	if evaluator.Evals() == 0 {
		log.Fatal("no evaluations ran")
	}

	// Re-measure at full resolution
	builder := geometry.New(geometry.OptionsFromConfig(cfg))
	size := Size(builder.Build(best.Params).Bounds())

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evaluator.Evals(), formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.6f\n", best.Fitness)
	fmt.Printf("Size: length=%.2f width=%.2f height=%.2f\n", size.X, size.Y, size.Z)
	fmt.Printf("Description: %s\n", bird.Describe(best.Params, func(int) int { return 0 }))
	fmt.Printf("\nBest bird:\n%s\n", best.Seed())

	if *outputDir == "" {
		return
	}

	exporter := export.New(builder)
	exporter.SolidName = cfg.Export.SolidName
	exporter.HeadName = cfg.Export.HeadName
	data, err := exporter.STL(best.Params)
	if err != nil {
		log.Fatalf("failed to export best bird: %v", err)
	}
	stlPath := filepath.Join(*outputDir, "best.stl")
	if err := os.WriteFile(stlPath, data, 0644); err != nil {
		log.Fatalf("failed to write %s: %v", stlPath, err)
	}
	fmt.Printf("\nBest bird saved to: %s\n", stlPath)

	if err := cfg.WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
		log.Printf("failed to write config: %v", err)
	}
}

// Package studio runs a breeding session: the current bird, its two
// offspring, the lineage of chosen birds and the run's output files. The
// headless CLI and the viewer both drive a Studio.
package studio

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/config"
	"github.com/pthm-cable/coolbirds/export"
	"github.com/pthm-cable/coolbirds/genetics"
	"github.com/pthm-cable/coolbirds/geometry"
	"github.com/pthm-cable/coolbirds/seed"
	"github.com/pthm-cable/coolbirds/telemetry"
)

// Options configures a session.
type Options struct {
	RNGSeed   uint64 // 0 = config value, then time-based
	Start     string // starting seed string (empty = default bird)
	Resume    string // lineage CSV to continue from; overrides Start
	OutputDir string // lineage, diversity, config and STL output (empty = disabled)
}

// Studio holds the complete session state.
type Studio struct {
	cfg      *config.Config
	src      *genetics.RandSource
	breeder  genetics.Breeder
	builder  *geometry.Builder
	exporter *export.Exporter

	current    bird.Params
	pair       genetics.Pair
	generation int
	chosen     []bird.Params
	statsGen   int // generation of the last diversity row

	output *telemetry.OutputManager
	perf   *telemetry.PerfCollector
	toasts *Toasts
}

// New creates a session from loaded configuration.
func New(cfg *config.Config, opts Options) (*Studio, error) {
	rngSeed := opts.RNGSeed
	if rngSeed == 0 {
		rngSeed = cfg.Evolution.RNGSeed
	}
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	builder := geometry.New(geometry.OptionsFromConfig(cfg))
	exporter := export.New(builder)
	exporter.SolidName = cfg.Export.SolidName
	exporter.HeadName = cfg.Export.HeadName

	s := &Studio{
		cfg:      cfg,
		src:      genetics.NewSource(rngSeed),
		breeder:  genetics.BreederFromConfig(cfg),
		builder:  builder,
		exporter: exporter,
		current:  bird.Default(),
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.StatsEvery),
		toasts:   NewToasts(cfg.Derived.LogLifetime),
	}

	// Read the lineage before the output manager truncates it
	var history []telemetry.LineageRecord
	switch {
	case opts.Resume != "":
		records, err := telemetry.ReadLineage(opts.Resume)
		if err != nil {
			return nil, err
		}
		p, gen, err := telemetry.LastBird(records)
		if err != nil {
			return nil, fmt.Errorf("resuming: %w", err)
		}
		s.current, s.generation, history = p, gen, records
	case opts.Start != "":
		p, err := seed.Parse(opts.Start)
		if err != nil {
			return nil, fmt.Errorf("starting seed: %w", err)
		}
		s.current = p
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.LineageFile)
	if err != nil {
		return nil, err
	}
	s.output = output
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}
	for _, r := range history {
		if err := output.WriteLineage(r); err != nil {
			output.Close()
			return nil, err
		}
		if p, err := r.Params(); err == nil {
			s.chosen = append(s.chosen, p)
		}
	}

	if err := s.Rebreed(); err != nil {
		output.Close()
		return nil, err
	}

	slog.Info("studio started",
		"rng_seed", rngSeed,
		"generation", s.generation,
		"seed", seed.Encode(s.current),
		"output_dir", output.Dir(),
	)
	return s, nil
}

// Current returns the seed bird.
func (s *Studio) Current() bird.Params { return s.current }

// Pair returns the current offspring.
func (s *Studio) Pair() genetics.Pair { return s.pair }

// Generation returns the number of choices made so far.
func (s *Studio) Generation() int { return s.generation }

// Builder returns the mesh builder used by the session.
func (s *Studio) Builder() *geometry.Builder { return s.builder }

// Config returns the session configuration.
func (s *Studio) Config() *config.Config { return s.cfg }

// Toasts returns the on-screen message list.
func (s *Studio) Toasts() *Toasts { return s.toasts }

// Perf returns the session's timing collector.
func (s *Studio) Perf() *telemetry.PerfCollector { return s.perf }

// Seed returns the current bird's seed string.
func (s *Studio) Seed() string { return seed.Encode(s.current) }

// Describe returns a description of p, drawing the noun from the session RNG.
func (s *Studio) Describe(p bird.Params) string {
	return bird.Describe(p, s.src.Pick)
}

// SetField changes one field of the seed bird. The offspring are left as
// they are until Rebreed.
func (s *Studio) SetField(f bird.Field, v float32) {
	s.current.Set(f, v)
}

// SetCurrent replaces the seed bird and breeds new offspring.
func (s *Studio) SetCurrent(p bird.Params) error {
	s.current = p
	return s.Rebreed()
}

// Rebreed draws a new left/right pair from the seed bird.
func (s *Studio) Rebreed() error {
	pair, err := s.breeder.Offspring(s.current, s.src)
	if err != nil {
		return fmt.Errorf("breeding offspring: %w", err)
	}
	s.pair = pair
	return nil
}

// Randomize replaces the seed bird with a fully random one.
func (s *Studio) Randomize() error {
	return s.SetCurrent(s.breeder.Randomize(s.src))
}

// Good replaces the seed bird with a catalog bird.
func (s *Studio) Good() error {
	p, err := s.breeder.Good(s.src)
	if err != nil {
		return err
	}
	return s.SetCurrent(p)
}

// Copy returns the seed string of the current bird for the clipboard.
func (s *Studio) Copy() string {
	text := s.Seed()
	s.toasts.Add("copied bird seed to clipboard\n" + text)
	return text
}

// Paste decodes text onto the seed bird. Sections decoded before an error
// stay applied.
func (s *Studio) Paste(text string) error {
	text = strings.TrimSpace(text)
	p := s.current
	decodeErr := seed.Decode(text, &p)
	if err := s.SetCurrent(p); err != nil {
		return err
	}
	if decodeErr != nil {
		slog.Warn("paste failed", "text", text, "error", decodeErr)
		s.toasts.Add("oof that didn't work")
		return decodeErr
	}
	s.toasts.Add("loaded bird seed from clipboard\n" + text)
	return nil
}

// Choose keeps the offspring on side: it becomes the seed bird, the choice
// is logged to the lineage and a new pair is bred.
func (s *Studio) Choose(side genetics.Side) (telemetry.LineageRecord, error) {
	s.perf.Start()
	started := time.Now()

	child := s.pair.Choose(side)
	mate := s.pair.Mate(side)

	s.perf.StartPhase(telemetry.PhaseHead)
	head := s.builder.Head(child)
	s.perf.StartPhase(telemetry.PhaseBody)
	body := s.builder.Body(child)

	s.perf.StartPhase(telemetry.PhaseBreed)
	s.current = child
	s.generation++
	s.chosen = append(s.chosen, child)
	if err := s.Rebreed(); err != nil {
		s.perf.End()
		return telemetry.LineageRecord{}, err
	}

	s.perf.StartPhase(telemetry.PhaseOutput)
	record := telemetry.LineageRecord{
		Generation:  s.generation,
		Side:        side.String(),
		Seed:        seed.Encode(child),
		MateSeed:    seed.Encode(mate),
		Description: s.Describe(child),
		HeadTris:    head.TriangleCount(),
		BodyTris:    body.TriangleCount(),
		BuildMS:     time.Since(started).Milliseconds(),
	}
	err := s.output.WriteLineage(record)
	s.perf.End()
	if err != nil {
		return record, err
	}

	if every := s.cfg.Telemetry.StatsEvery; every > 0 && s.generation%every == 0 {
		if err := s.flushStats(); err != nil {
			return record, err
		}
	}
	return record, nil
}

// flushStats logs and writes diversity of the chosen birds so far.
func (s *Studio) flushStats() error {
	s.statsGen = s.generation
	stats := telemetry.ComputeDiversity(s.generation, s.chosen)
	slog.Info("diversity", "stats", stats, "perf", s.perf.Stats())
	return s.output.WriteDiversity(stats)
}

// Evolve makes generations automatic choices. side is left, right or auto;
// auto picks a side at random each generation.
func (s *Studio) Evolve(generations int, side string) error {
	auto := side == "auto"
	var fixed genetics.Side
	if !auto {
		var err error
		if fixed, err = genetics.ParseSide(side); err != nil {
			return err
		}
	}

	for i := 0; i < generations; i++ {
		pick := fixed
		if auto {
			pick = genetics.Side(s.src.Pick(2))
		}
		record, err := s.Choose(pick)
		if err != nil {
			return fmt.Errorf("generation %d: %w", s.generation, err)
		}
		slog.Info("generation", "record", record)
	}
	return nil
}

// STL renders the seed bird as a merged STL document.
func (s *Studio) STL() ([]byte, error) {
	s.perf.Start()
	s.perf.StartPhase(telemetry.PhaseExport)
	data, err := s.exporter.STL(s.current)
	s.perf.End()
	return data, err
}

// SaveSTL writes the seed bird's STL. An empty path writes the configured
// file name into the output directory, or the working directory when output
// is disabled. It returns the path written.
func (s *Studio) SaveSTL(path string) (string, error) {
	s.toasts.Add("creating bird STL...")
	data, err := s.STL()
	if err != nil {
		s.toasts.Add("yikes couldn't make an STL oops")
		return "", err
	}

	switch {
	case path != "":
		err = os.WriteFile(path, data, 0644)
	case s.output != nil:
		path, err = s.output.WriteSTL(s.cfg.Export.FileName, data)
	default:
		path = s.cfg.Export.FileName
		err = os.WriteFile(path, data, 0644)
	}
	if err != nil {
		s.toasts.Add("yikes couldn't make an STL oops")
		return "", fmt.Errorf("saving STL: %w", err)
	}

	s.toasts.Add("saved " + path)
	slog.Info("stl saved", "path", path, "facets", export.FacetCount(string(data)), "seed", s.Seed())
	return path, nil
}

// Close flushes final statistics and closes output files.
func (s *Studio) Close() error {
	if len(s.chosen) > 0 && s.statsGen != s.generation {
		if err := s.flushStats(); err != nil {
			slog.Error("failed to write diversity", "error", err)
		}
	}
	return s.output.Close()
}

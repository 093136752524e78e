package telemetry

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/seed"
)

// LineageRecord is one generation of an evolution run: the bird that was
// kept and the mate it was bred with.
type LineageRecord struct {
	Generation  int    `csv:"generation"`
	Side        string `csv:"side"`
	Seed        string `csv:"seed"`
	MateSeed    string `csv:"mate_seed"`
	Description string `csv:"description"`
	HeadTris    int    `csv:"head_triangles"`
	BodyTris    int    `csv:"body_triangles"`
	BuildMS     int64  `csv:"build_ms"`
}

// Params decodes the record's seed onto the default bird.
func (r LineageRecord) Params() (bird.Params, error) {
	p, err := seed.Parse(r.Seed)
	if err != nil {
		return p, fmt.Errorf("generation %d: %w", r.Generation, err)
	}
	return p, nil
}

// LogValue implements slog.LogValuer for structured logging.
func (r LineageRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.String("side", r.Side),
		slog.String("seed", r.Seed),
		slog.String("mate_seed", r.MateSeed),
		slog.String("description", r.Description),
		slog.Int("head_triangles", r.HeadTris),
		slog.Int("body_triangles", r.BodyTris),
		slog.Int64("build_ms", r.BuildMS),
	)
}

// ReadLineage loads a lineage CSV written by OutputManager.
func ReadLineage(path string) ([]LineageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lineage: %w", err)
	}
	defer f.Close()

	var records []LineageRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading lineage: %w", err)
	}
	return records, nil
}

// LastBird returns the bird of the highest generation in records, for
// resuming a run.
func LastBird(records []LineageRecord) (bird.Params, int, error) {
	if len(records) == 0 {
		return bird.Default(), 0, nil
	}
	last := records[0]
	for _, r := range records[1:] {
		if r.Generation >= last.Generation {
			last = r
		}
	}
	p, err := last.Params()
	return p, last.Generation, err
}

package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/coolbirds/bird"
)

// DiversityStats summarizes how varied a window of birds is. Spreads are
// standard deviations of each field after normalizing it to its slider
// interval, so fields with different units compare directly.
type DiversityStats struct {
	Generation   int     `csv:"generation"`
	Samples      int     `csv:"samples"`
	MeanSpread   float64 `csv:"mean_spread"`
	SpreadP10    float64 `csv:"spread_p10"`
	SpreadP50    float64 `csv:"spread_p50"`
	SpreadP90    float64 `csv:"spread_p90"`
	MostVariable string  `csv:"most_variable"`
	Drift        float64 `csv:"drift"` // Mean normalized distance of the newest bird from the default
	OutOfRange   int     `csv:"out_of_range"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDiversity summarizes birds, oldest first.
func ComputeDiversity(generation int, birds []bird.Params) DiversityStats {
	s := DiversityStats{Generation: generation, Samples: len(birds)}
	if len(birds) == 0 {
		return s
	}

	spreads := make([]float64, bird.NumFields)
	column := make([]float64, len(birds))
	best := -1.0
	for i, f := range bird.Fields {
		for j, b := range birds {
			column[j] = float64(f.Normalize(f.Get(&b)))
		}
		_, std := stat.PopMeanStdDev(column, nil)
		spreads[i] = std
		if std > best {
			best = std
			s.MostVariable = f.Name
		}
	}
	s.MeanSpread = stat.Mean(spreads, nil)

	sort.Float64s(spreads)
	s.SpreadP10 = Percentile(spreads, 0.10)
	s.SpreadP50 = Percentile(spreads, 0.50)
	s.SpreadP90 = Percentile(spreads, 0.90)

	newest := birds[len(birds)-1]
	def := bird.Default()
	var drift float64
	for _, f := range bird.Fields {
		v := f.Get(&newest)
		d := float64(f.Normalize(v) - f.Normalize(f.Get(&def)))
		if d < 0 {
			d = -d
		}
		drift += d
		if v < f.Min || v > f.Max {
			s.OutOfRange++
		}
	}
	s.Drift = drift / float64(bird.NumFields)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s DiversityStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("samples", s.Samples),
		slog.Float64("mean_spread", s.MeanSpread),
		slog.Float64("spread_p10", s.SpreadP10),
		slog.Float64("spread_p50", s.SpreadP50),
		slog.Float64("spread_p90", s.SpreadP90),
		slog.String("most_variable", s.MostVariable),
		slog.Float64("drift", s.Drift),
		slog.Int("out_of_range", s.OutOfRange),
	)
}

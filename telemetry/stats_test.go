package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/coolbirds/bird"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDiversityEmpty(t *testing.T) {
	s := ComputeDiversity(3, nil)
	if s.Generation != 3 || s.Samples != 0 || s.MeanSpread != 0 || s.Drift != 0 {
		t.Errorf("empty diversity = %+v", s)
	}
}

func TestComputeDiversityIdentical(t *testing.T) {
	birds := []bird.Params{bird.Default(), bird.Default(), bird.Default()}
	s := ComputeDiversity(1, birds)

	if s.Samples != 3 {
		t.Errorf("samples = %d, want 3", s.Samples)
	}
	if s.MeanSpread > 1e-9 || s.SpreadP90 > 1e-9 {
		t.Errorf("spread = %v/%v, want 0", s.MeanSpread, s.SpreadP90)
	}
	if s.Drift != 0 || s.OutOfRange != 0 {
		t.Errorf("drift = %v, out of range = %d, want 0", s.Drift, s.OutOfRange)
	}
}

func TestComputeDiversitySingleField(t *testing.T) {
	a, b := bird.Default(), bird.Default()
	a.HeadSize = 10 // normalized 0
	b.HeadSize = 40 // normalized 1
	b.BeakLength = -5

	s := ComputeDiversity(7, []bird.Params{a, b})

	if s.MostVariable != "head_size" {
		t.Errorf("most variable = %q, want head_size", s.MostVariable)
	}
	// Population std of {0, 1} is 0.5; beak length {0.3, -0.1} gives 0.2
	wantSpread := (0.5 + 0.2) / float64(bird.NumFields)
	if math.Abs(s.MeanSpread-wantSpread) > 1e-6 {
		t.Errorf("mean spread = %v, want %v", s.MeanSpread, wantSpread)
	}
	if math.Abs(s.SpreadP50) > 1e-9 {
		t.Errorf("median spread = %v, want 0", s.SpreadP50)
	}

	// Newest bird: head 22->40 over a 30 wide range, beak 15->-5 over 50
	wantDrift := (18.0/30 + 20.0/50) / float64(bird.NumFields)
	if math.Abs(s.Drift-wantDrift) > 1e-6 {
		t.Errorf("drift = %v, want %v", s.Drift, wantDrift)
	}
	if s.OutOfRange != 1 {
		t.Errorf("out of range = %d, want 1", s.OutOfRange)
	}
}

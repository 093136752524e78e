package main

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/geometry"
)

func TestParamVector(t *testing.T) {
	pv, err := NewParamVector(bird.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if pv.Dim() != int(bird.NumFields)-1 {
		t.Errorf("Dim() = %d, want every field but base_flat", pv.Dim())
	}

	// The starting point reproduces the starting bird
	if got := pv.Apply(pv.Initial()); got != bird.Default() {
		t.Errorf("Apply(Initial()) = %+v, want default bird", got)
	}

	pv, err = NewParamVector(bird.Default(), ParseFields(" tail_length, ,head_size,tail_length"))
	if err != nil {
		t.Fatal(err)
	}
	if pv.Dim() != 2 {
		t.Fatalf("Dim() = %d, want 2", pv.Dim())
	}
	p := pv.Apply([]float64{1, -0.5})
	if p.TailLength != 100 || p.HeadSize != 10 {
		t.Errorf("tail %v head %v, want clamped to 100 and 10", p.TailLength, p.HeadSize)
	}
	if p.BeakLength != bird.Default().BeakLength {
		t.Error("unsearched field changed")
	}

	if _, err := NewParamVector(bird.Default(), []string{"wingspan"}); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestOutOfRange(t *testing.T) {
	tests := []struct {
		x    []float64
		want float64
	}{
		{[]float64{0, 0.5, 1}, 0},
		{[]float64{-0.5, 1.5}, 0.5},
		{[]float64{2}, 1},
	}
	for _, tt := range tests {
		if got := OutOfRange(tt.x); !scalar.EqualWithinAbs(got, tt.want, 1e-12) {
			t.Errorf("OutOfRange(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestTarget(t *testing.T) {
	if err := (Target{}).Validate(); err == nil {
		t.Error("empty target accepted")
	}
	if err := (Target{Length: -1, Height: 3}).Validate(); err == nil {
		t.Error("negative target accepted")
	}

	target := Target{Length: 100, Height: 50}
	if err := target.Validate(); err != nil {
		t.Fatal(err)
	}
	if s := target.Score(r3.Vec{X: 100, Y: 999, Z: 50}); s != 0 {
		t.Errorf("exact fit scored %v; width should be free", s)
	}
	if s := target.Score(r3.Vec{X: 110, Y: 0, Z: 40}); !scalar.EqualWithinAbs(s, 0.01+0.04, 1e-12) {
		t.Errorf("score = %v, want 0.05", s)
	}
}

func TestEvaluateTracksBest(t *testing.T) {
	opts := geometry.DefaultOptions()
	opts.Segments, opts.Stacks = 8, 8
	opts.EyeSegments, opts.EyeStacks = 4, 4
	opts.Subdivisions = 0
	builder := geometry.New(opts)

	pv, err := NewParamVector(bird.Default(), []string{"tail_length"})
	if err != nil {
		t.Fatal(err)
	}
	start := Size(builder.Build(bird.Default()).Bounds())
	fe := NewFitnessEvaluator(pv, builder, Target{Length: start.X})

	short := fe.Evaluate([]float64{0})
	exact := fe.Evaluate(pv.Initial())
	outside := fe.Evaluate([]float64{-1})

	if fe.Evals() != 3 {
		t.Errorf("Evals() = %d, want 3", fe.Evals())
	}
	if short.Size.X >= start.X {
		t.Errorf("no tail length %v, want shorter than %v", short.Size.X, start.X)
	}
	if exact.Fitness > 1e-12 {
		t.Errorf("starting bird fitness = %v, want 0", exact.Fitness)
	}
	if outside.Fitness <= short.Fitness {
		t.Errorf("point outside the cube scored %v, want above %v", outside.Fitness, short.Fitness)
	}
	if best := fe.Best(); best.Params != bird.Default() || best.Seed() != bird.DefaultSeed {
		t.Errorf("best = %+v", best)
	}
}

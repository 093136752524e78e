package genetics

import (
	"math"
	"testing"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/config"
	"github.com/pthm-cable/coolbirds/seed"
)

// scriptedSource returns fixed answers so individual branches can be forced.
type scriptedSource struct {
	chance  bool    // answer for dominance draws
	mutate  bool    // answer for mutation draws
	factor  float32 // fraction of [lo,hi) returned by Range
	pick    int
	chances int
}

func (s *scriptedSource) Range(lo, hi float32) float32 {
	return lo + s.factor*(hi-lo)
}

func (s *scriptedSource) Chance(p float64) bool {
	// Breed alternates dominance and mutation draws per field
	s.chances++
	if s.chances%2 == 1 {
		return s.chance
	}
	return s.mutate
}

func (s *scriptedSource) Pick(n int) int {
	return s.pick % n
}

func distinctParents() (bird.Params, bird.Params) {
	a := bird.Default()
	var b bird.Params
	for _, spec := range bird.Fields {
		spec.Set(&b, spec.Get(&a)+17)
	}
	return a, b
}

func TestRandomizeWithinBounds(t *testing.T) {
	src := NewSource(1)
	br := DefaultBreeder()

	for i := 0; i < 200; i++ {
		p := br.Randomize(src)
		for _, spec := range bird.Fields {
			v := spec.Get(&p)
			if v < spec.Min || v > spec.Max {
				t.Fatalf("iteration %d: %s = %v outside [%v,%v]", i, spec.Name, v, spec.Min, spec.Max)
			}
		}
	}
}

func TestBreedSelectsFromParentsWithoutMutation(t *testing.T) {
	br := DefaultBreeder()
	br.MutationChance = 0
	a, b := distinctParents()

	fromA, fromB := 0, 0
	for seedVal := uint64(0); seedVal < 20; seedVal++ {
		child := br.Breed(a, b, NewSource(seedVal))
		for _, spec := range bird.Fields {
			v := spec.Get(&child)
			switch v {
			case spec.Get(&a):
				fromA++
			case spec.Get(&b):
				fromB++
			default:
				t.Fatalf("seed %d: %s = %v is neither parent's value (%v, %v)",
					seedVal, spec.Name, v, spec.Get(&a), spec.Get(&b))
			}
		}
	}

	// Dominance in [0.4, 0.6] should mix both parents
	if fromA == 0 || fromB == 0 {
		t.Errorf("expected both parents to contribute, got a=%d b=%d", fromA, fromB)
	}
	t.Logf("traits from self=%d, from mate=%d", fromA, fromB)
}

func TestBreedDominanceKeepsMate(t *testing.T) {
	br := DefaultBreeder()
	a, b := distinctParents()

	child := br.Breed(a, b, &scriptedSource{chance: true})
	if child != b {
		t.Errorf("dominant mate should be kept:\n got %+v\nwant %+v", child, b)
	}

	child = br.Breed(a, b, &scriptedSource{chance: false})
	if child != a {
		t.Errorf("recessive mate should yield self:\n got %+v\nwant %+v", child, a)
	}
}

func TestBreedMutationShrinks(t *testing.T) {
	br := DefaultBreeder()
	br.MutationChance = 1
	a := bird.Default()
	a.BeakWidth = 3
	a.BaseFlat = -40

	for seedVal := uint64(0); seedVal < 20; seedVal++ {
		child := br.Breed(a, a, NewSource(seedVal))
		for _, spec := range bird.Fields {
			before := math.Abs(float64(spec.Get(&a)))
			after := math.Abs(float64(spec.Get(&child)))
			if before == 0 {
				continue
			}
			if after >= before {
				t.Errorf("seed %d: %s grew from %v to %v", seedVal, spec.Name, before, after)
			}
			if after < before*0.05-1e-4 {
				t.Errorf("seed %d: %s shrank below 5%%: %v -> %v", seedVal, spec.Name, before, after)
			}
			if (spec.Get(&a) < 0) != (spec.Get(&child) < 0) {
				t.Errorf("seed %d: %s changed sign", seedVal, spec.Name)
			}
		}
	}
}

func TestBreedMutationAppliesToCrossoverResult(t *testing.T) {
	br := DefaultBreeder()
	a, b := distinctParents()

	// Take self, then mutate at the middle of [0.05, 0.95)
	child := br.Breed(a, b, &scriptedSource{chance: false, mutate: true, factor: 0.5})
	for _, spec := range bird.Fields {
		want := spec.Get(&a) * 0.5
		if got := spec.Get(&child); math.Abs(float64(got-want)) > 1e-4 {
			t.Errorf("%s = %v, want %v", spec.Name, got, want)
		}
	}
}

func TestBreedDoesNotModifyParents(t *testing.T) {
	br := DefaultBreeder()
	br.MutationChance = 1
	a, b := distinctParents()
	a0, b0 := a, b

	_ = br.Breed(a, b, NewSource(99))
	if a != a0 || b != b0 {
		t.Error("parents were modified")
	}
}

func TestBreedDeterministic(t *testing.T) {
	br := DefaultBreeder()
	a, b := distinctParents()

	c1 := br.Breed(a, b, NewSource(42))
	c2 := br.Breed(a, b, NewSource(42))
	if c1 != c2 {
		t.Errorf("same seed produced different children:\n%+v\n%+v", c1, c2)
	}
}

func TestGoodPicksCatalog(t *testing.T) {
	br := DefaultBreeder()
	for i := range bird.Catalog {
		p, err := br.Good(&scriptedSource{pick: i})
		if err != nil {
			t.Fatalf("Good failed: %v", err)
		}
		if got := seed.Encode(p); got != bird.Catalog[i] {
			t.Errorf("pick %d: got %q, want %q", i, got, bird.Catalog[i])
		}
	}
}

func TestGoodCustomCatalog(t *testing.T) {
	br := DefaultBreeder()
	br.Catalog = []string{"m.1.2.3.4"}
	p, err := br.Good(NewSource(1))
	if err != nil {
		t.Fatalf("Good failed: %v", err)
	}
	if p.BeakLength != 1 || p.HeadSize != bird.Default().HeadSize {
		t.Errorf("unexpected bird %+v", p)
	}

	br.Catalog = []string{"x.1"}
	if _, err := br.Good(NewSource(1)); err == nil {
		t.Error("expected error for invalid catalog seed")
	}
}

func TestOffspring(t *testing.T) {
	br := DefaultBreeder()
	current := bird.Default()

	pair, err := br.Offspring(current, NewSource(5))
	if err != nil {
		t.Fatalf("Offspring failed: %v", err)
	}
	if pair.Choose(Left) != pair.Left || pair.Choose(Right) != pair.Right {
		t.Error("Choose returned the wrong child")
	}
	if pair.Mate(Left) != pair.LeftMate || pair.Mate(Right) != pair.RightMate {
		t.Error("Mate returned the wrong parent")
	}
	if pair.Left == pair.Right {
		t.Error("left and right offspring should differ")
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"left", Left, false},
		{"r", Right, false},
		{"up", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSide(%q) error = %v", tt.in, err)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseSide(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBreederFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	got := BreederFromConfig(cfg)
	want := DefaultBreeder()
	if got.DominanceMin != want.DominanceMin || got.DominanceMax != want.DominanceMax ||
		got.MutationChance != want.MutationChance ||
		got.MutationMin != want.MutationMin || got.MutationMax != want.MutationMax {
		t.Errorf("BreederFromConfig = %+v, want %+v", got, want)
	}
	if len(got.Catalog) != 0 {
		t.Errorf("default config should use the built-in catalog, got %v", got.Catalog)
	}
}

// Package genetics breeds and randomizes bird parameters.
package genetics

import "math/rand/v2"

// Source supplies the randomness used by breeding and randomization.
type Source interface {
	// Range returns a uniform value in [lo, hi).
	Range(lo, hi float32) float32
	// Chance returns true with probability p.
	Chance(p float64) bool
	// Pick returns a uniform index in [0, n).
	Pick(n int) int
}

// RandSource adapts *rand.Rand to Source.
type RandSource struct {
	rng *rand.Rand
}

// NewSource creates a deterministic source from a seed.
func NewSource(seed uint64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// FromRand wraps an existing generator.
func FromRand(rng *rand.Rand) *RandSource {
	return &RandSource{rng: rng}
}

func (s *RandSource) Range(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}

func (s *RandSource) Chance(p float64) bool {
	return s.rng.Float64() < p
}

func (s *RandSource) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.IntN(n)
}

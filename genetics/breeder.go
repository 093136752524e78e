package genetics

import (
	"fmt"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/config"
	"github.com/pthm-cable/coolbirds/seed"
)

// Breeder holds the crossover and mutation settings.
type Breeder struct {
	// Per-trait dominance is drawn from [DominanceMin, DominanceMax]; it is the
	// probability of keeping the mate's value.
	DominanceMin float32
	DominanceMax float32

	// MutationChance is the per-trait probability of mutating after crossover.
	MutationChance float64
	// Mutation multiplies the trait by a factor in [MutationMin, MutationMax).
	// Both bounds are below 1, so mutation only ever shrinks a trait.
	MutationMin float32
	MutationMax float32

	// Catalog holds the seeds used by Good. Nil means bird.Catalog.
	Catalog []string
}

// DefaultBreeder returns the standard breeding settings.
func DefaultBreeder() Breeder {
	return Breeder{
		DominanceMin:   0.4,
		DominanceMax:   0.6,
		MutationChance: 0.05,
		MutationMin:    0.05,
		MutationMax:    0.95,
	}
}

// BreederFromConfig builds breeding settings from loaded configuration.
func BreederFromConfig(cfg *config.Config) Breeder {
	b := cfg.Breeding
	return Breeder{
		DominanceMin:   float32(b.DominanceMin),
		DominanceMax:   float32(b.DominanceMax),
		MutationChance: b.MutationChance,
		MutationMin:    float32(b.MutationMin),
		MutationMax:    float32(b.MutationMax),
		Catalog:        cfg.Catalog,
	}
}

// Randomize draws every field uniformly from its documented range.
func (b Breeder) Randomize(src Source) bird.Params {
	var p bird.Params
	for _, spec := range bird.Fields {
		spec.Set(&p, src.Range(spec.Min, spec.Max))
	}
	return p
}

// Breed creates a child of self and mate. Neither parent is modified.
func (b Breeder) Breed(self, mate bird.Params, src Source) bird.Params {
	child := mate
	for _, spec := range bird.Fields {
		dominance := src.Range(b.DominanceMin, b.DominanceMax)
		if !src.Chance(float64(dominance)) {
			spec.Set(&child, spec.Get(&self))
		}

		if src.Chance(b.MutationChance) {
			factor := src.Range(b.MutationMin, b.MutationMax)
			spec.Set(&child, spec.Get(&child)*factor)
		}
	}
	return child
}

// Good returns a uniformly picked catalog bird.
func (b Breeder) Good(src Source) (bird.Params, error) {
	catalog := b.Catalog
	if len(catalog) == 0 {
		catalog = bird.Catalog
	}
	s := catalog[src.Pick(len(catalog))]
	p, err := seed.Parse(s)
	if err != nil {
		return bird.Params{}, fmt.Errorf("catalog seed %q: %w", s, err)
	}
	return p, nil
}

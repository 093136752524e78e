package main

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/geometry"
	"github.com/pthm-cable/coolbirds/seed"
)

// Target is the wanted bounding box size in mesh units. Zero axes are free.
// Length runs beak to tail (X), width side to side (Y), height base to crown (Z).
type Target struct {
	Length, Width, Height float64
}

// Validate rejects negative sizes and a target with every axis free.
func (t Target) Validate() error {
	if t.Length < 0 || t.Width < 0 || t.Height < 0 {
		return errors.New("target sizes must not be negative")
	}
	if t.Length == 0 && t.Width == 0 && t.Height == 0 {
		return errors.New("at least one of length, width or height is required")
	}
	return nil
}

// Score is the sum of squared relative errors over the constrained axes.
func (t Target) Score(size r3.Vec) float64 {
	var s float64
	for _, axis := range [][2]float64{{size.X, t.Length}, {size.Y, t.Width}, {size.Z, t.Height}} {
		got, want := axis[0], axis[1]
		if want == 0 {
			continue
		}
		e := (got - want) / want
		s += e * e
	}
	return s
}

// Size returns the extent of a bounding box along each axis.
func Size(b r3.Box) r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Result is one evaluated bird.
type Result struct {
	Params  bird.Params
	Size    r3.Vec
	Fitness float64
}

// Seed returns the bird's seed string.
func (r Result) Seed() string {
	return seed.Encode(r.Params)
}

// FitnessEvaluator builds candidate birds and scores their size against a
// target (lower is better). Evaluations are sequential.
type FitnessEvaluator struct {
	params  *ParamVector
	builder *geometry.Builder
	target  Target

	evals int
	best  Result
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, builder *geometry.Builder, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:  params,
		builder: builder,
		target:  target,
		best:    Result{Fitness: math.Inf(1)},
	}
}

// Evaluate builds the bird for a normalized search point. Points outside
// the unit cube are scored at their clamped bird plus a penalty so the
// search is pulled back inside.
func (fe *FitnessEvaluator) Evaluate(x []float64) Result {
	p := fe.params.Apply(x)
	size := Size(fe.builder.Build(p).Bounds())
	r := Result{
		Params:  p,
		Size:    size,
		Fitness: fe.target.Score(size) + OutOfRange(x),
	}

	fe.evals++
	if r.Fitness < fe.best.Fitness {
		fe.best = r
	}
	return r
}

// Evals returns the number of evaluations so far.
func (fe *FitnessEvaluator) Evals() int {
	return fe.evals
}

// Best returns the lowest scoring bird seen.
func (fe *FitnessEvaluator) Best() Result {
	return fe.best
}

// Package geometry turns a bird parameter vector into head and body meshes.
package geometry

import (
	"github.com/pthm-cable/coolbirds/config"
)

// Options holds tessellation and construction constants.
type Options struct {
	Segments      int
	Stacks        int
	EyeSegments   int
	EyeStacks     int
	TaperHeight   float64
	EpsilonRadius float64
	MinScale      float64
	HeadScale     float64
	Subdivisions  int
	BeakTilt      float64
	EyeRotation   [3]float64
}

// DefaultOptions returns the constants the catalog birds were tuned with.
func DefaultOptions() Options {
	return Options{
		Segments:      20,
		Stacks:        40,
		EyeSegments:   10,
		EyeStacks:     20,
		TaperHeight:   1.0,
		EpsilonRadius: 0.1,
		MinScale:      0.01,
		HeadScale:     1.1,
		Subdivisions:  1,
		BeakTilt:      15,
		EyeRotation:   [3]float64{50, -40, 0},
	}
}

// OptionsFromConfig builds options from loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	g := cfg.Geometry
	return Options{
		Segments:      g.Segments,
		Stacks:        g.Stacks,
		EyeSegments:   cfg.Derived.EyeSegments,
		EyeStacks:     cfg.Derived.EyeStacks,
		TaperHeight:   g.TaperHeight,
		EpsilonRadius: g.EpsilonRadius,
		MinScale:      g.MinScale,
		HeadScale:     g.HeadScale,
		Subdivisions:  g.Subdivisions,
		BeakTilt:      g.BeakTilt,
		EyeRotation:   g.EyeRotation,
	}
}

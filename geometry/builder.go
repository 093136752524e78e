package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/csg"
)

// Builder generates bird meshes. The zero value is not usable; use New.
type Builder struct {
	Options Options
}

// New creates a builder with the given options.
func New(opts Options) *Builder {
	return &Builder{Options: opts}
}

// Bird is the pair of meshes for one parameter vector. Head and body are
// never fused.
type Bird struct {
	Head *csg.Mesh
	Body *csg.Mesh
}

// Triangles returns head and body triangles in one list for rendering.
func (b Bird) Triangles() []csg.Triangle {
	return append(b.Head.Triangles(), b.Body.Triangles()...)
}

// TriangleCount returns the combined triangle count.
func (b Bird) TriangleCount() int {
	return b.Head.TriangleCount() + b.Body.TriangleCount()
}

// Bounds returns the box around both meshes. Empty meshes are skipped.
func (b Bird) Bounds() r3.Box {
	switch {
	case b.Head.TriangleCount() == 0:
		return b.Body.Bounds()
	case b.Body.TriangleCount() == 0:
		return b.Head.Bounds()
	}
	h, d := b.Head.Bounds(), b.Body.Bounds()
	return r3.Box{
		Min: r3.Vec{X: math.Min(h.Min.X, d.Min.X), Y: math.Min(h.Min.Y, d.Min.Y), Z: math.Min(h.Min.Z, d.Min.Z)},
		Max: r3.Vec{X: math.Max(h.Max.X, d.Max.X), Y: math.Max(h.Max.Y, d.Max.Y), Z: math.Max(h.Max.Z, d.Max.Z)},
	}
}

// Build generates both meshes.
func (g *Builder) Build(p bird.Params) Bird {
	return Bird{Head: g.Head(p), Body: g.Body(p)}
}

// radius replaces zero and negative radii with their magnitude, floored at
// the epsilon radius.
func (g *Builder) radius(r float32) float64 {
	return math.Max(math.Abs(float64(r)), g.Options.EpsilonRadius)
}

// taper returns the wide end of a beak or tail cone.
func (g *Builder) taper(w float32) float64 {
	if float64(w) <= g.Options.EpsilonRadius {
		return g.Options.EpsilonRadius
	}
	return float64(w)
}

// factor keeps the sign of a scale factor but keeps it away from zero.
func (g *Builder) factor(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	if math.Abs(s) < g.Options.MinScale {
		return math.Copysign(g.Options.MinScale, s)
	}
	return s
}

func (g *Builder) sphere(r float32) *csg.Mesh {
	return csg.Sphere(g.radius(r), g.Options.Segments, g.Options.Stacks)
}

// cone is a short taper from width down to the epsilon radius.
func (g *Builder) cone(width float32) *csg.Mesh {
	return csg.Frustum(g.taper(width), g.Options.EpsilonRadius, g.Options.TaperHeight, g.Options.Segments)
}

func f64(v float32) float64 {
	return float64(v)
}

var yPlane = r3.Vec{Y: 1}

package csg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere builds a UV sphere centered on the origin with its poles on Y.
// segments divide the equator and stacks divide pole to pole.
func Sphere(radius float64, segments, stacks int) *Mesh {
	segments = max(segments, 3)
	stacks = max(stacks, 2)

	vertex := func(theta, phi float64) Vertex {
		theta *= 2 * math.Pi
		phi *= math.Pi
		dir := r3.Vec{
			X: math.Cos(theta) * math.Sin(phi),
			Y: math.Cos(phi),
			Z: math.Sin(theta) * math.Sin(phi),
		}
		return Vertex{Pos: r3.Scale(radius, dir), Normal: dir}
	}

	polygons := make([]Polygon, 0, segments*stacks)
	for i := 0; i < segments; i++ {
		for j := 0; j < stacks; j++ {
			t0, t1 := float64(i)/float64(segments), float64(i+1)/float64(segments)
			p0, p1 := float64(j)/float64(stacks), float64(j+1)/float64(stacks)

			vs := []Vertex{vertex(t0, p0)}
			if j > 0 {
				vs = append(vs, vertex(t1, p0))
			}
			if j < stacks-1 {
				vs = append(vs, vertex(t1, p1))
			}
			vs = append(vs, vertex(t0, p1))

			if poly, ok := newPolygon(vs); ok {
				polygons = append(polygons, poly)
			}
		}
	}
	return &Mesh{Polygons: polygons}
}

// Frustum builds a truncated cone along +Z from z=0 (radius bottom) to
// z=height (radius top).
func Frustum(bottom, top, height float64, segments int) *Mesh {
	segments = max(segments, 3)

	ring := func(r, z float64) []r3.Vec {
		pts := make([]r3.Vec, segments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / float64(segments)
			pts[i] = r3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z}
		}
		return pts
	}
	lower, upper := ring(bottom, 0), ring(top, height)

	polygons := make([]Polygon, 0, segments+2)
	add := func(points ...r3.Vec) {
		if poly, ok := flatPolygon(points...); ok {
			polygons = append(polygons, poly)
		}
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		add(lower[i], lower[j], upper[j], upper[i])
	}
	// Caps are single polygons; the bottom one winds clockwise seen from +Z
	base := make([]r3.Vec, segments)
	for i := range lower {
		base[i] = lower[segments-1-i]
	}
	add(base...)
	add(upper...)
	return &Mesh{Polygons: polygons}
}

// Cuboid builds an axis-aligned box spanning (0,0,0) to (w,l,h).
func Cuboid(w, l, h float64) *Mesh {
	corner := func(i int) r3.Vec {
		var v r3.Vec
		if i&1 != 0 {
			v.X = w
		}
		if i&2 != 0 {
			v.Y = l
		}
		if i&4 != 0 {
			v.Z = h
		}
		return v
	}
	faces := [6][4]int{
		{0, 4, 6, 2},
		{1, 3, 7, 5},
		{0, 1, 5, 4},
		{2, 6, 7, 3},
		{0, 2, 3, 1},
		{4, 5, 7, 6},
	}
	polygons := make([]Polygon, 0, 6)
	for _, f := range faces {
		if poly, ok := flatPolygon(corner(f[0]), corner(f[1]), corner(f[2]), corner(f[3])); ok {
			polygons = append(polygons, poly)
		}
	}
	return &Mesh{Polygons: polygons}
}

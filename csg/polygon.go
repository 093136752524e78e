// Package csg implements a small constructive solid geometry kernel over
// polygon soups: primitives, affine transforms, BSP booleans, convex hulls,
// normal recomputation, subdivision and ASCII STL output.
package csg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon is the plane thickness used when classifying points.
const epsilon = 1e-5

// minNormal is the smallest Newell normal length accepted as a real polygon.
const minNormal = 1e-12

// Vertex is a polygon corner with its shading normal.
type Vertex struct {
	Pos    r3.Vec
	Normal r3.Vec
}

func (v Vertex) flip() Vertex {
	return Vertex{Pos: v.Pos, Normal: r3.Scale(-1, v.Normal)}
}

// lerp interpolates position and normal between v and u.
func (v Vertex) lerp(u Vertex, t float64) Vertex {
	return Vertex{
		Pos:    lerpVec(v.Pos, u.Pos, t),
		Normal: lerpVec(v.Normal, u.Normal, t),
	}
}

func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// unit normalizes v, returning the zero vector for zero input.
func unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < minNormal || math.IsNaN(n) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// Plane is the set of points p with Normal·p = W.
type Plane struct {
	Normal r3.Vec
	W      float64
}

func (p Plane) flip() Plane {
	return Plane{Normal: r3.Scale(-1, p.Normal), W: -p.W}
}

// planeOf computes the plane of a vertex loop with Newell's method, which is
// stable for thin and non-triangular polygons. ok is false for degenerate loops.
func planeOf(vs []Vertex) (Plane, bool) {
	var n, centroid r3.Vec
	for i := range vs {
		cur := vs[i].Pos
		next := vs[(i+1)%len(vs)].Pos
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
		centroid = r3.Add(centroid, cur)
	}
	length := r3.Norm(n)
	if len(vs) < 3 || length < minNormal || math.IsNaN(length) {
		return Plane{}, false
	}
	n = r3.Scale(1/length, n)
	centroid = r3.Scale(1/float64(len(vs)), centroid)
	return Plane{Normal: n, W: r3.Dot(n, centroid)}, true
}

// Polygon is a planar, convex vertex loop wound counter-clockwise when viewed
// from the front of its plane.
type Polygon struct {
	Vertices []Vertex
	Plane    Plane
}

// newPolygon builds a polygon and its plane. ok is false for degenerate loops.
func newPolygon(vs []Vertex) (Polygon, bool) {
	plane, ok := planeOf(vs)
	if !ok {
		return Polygon{}, false
	}
	return Polygon{Vertices: vs, Plane: plane}, true
}

// flatPolygon builds a polygon whose vertex normals equal its plane normal.
func flatPolygon(points ...r3.Vec) (Polygon, bool) {
	vs := make([]Vertex, len(points))
	for i, p := range points {
		vs[i] = Vertex{Pos: p}
	}
	poly, ok := newPolygon(vs)
	if !ok {
		return Polygon{}, false
	}
	for i := range poly.Vertices {
		poly.Vertices[i].Normal = poly.Plane.Normal
	}
	return poly, true
}

func (p Polygon) clone() Polygon {
	vs := make([]Vertex, len(p.Vertices))
	copy(vs, p.Vertices)
	return Polygon{Vertices: vs, Plane: p.Plane}
}

func (p Polygon) flip() Polygon {
	n := len(p.Vertices)
	vs := make([]Vertex, n)
	for i, v := range p.Vertices {
		vs[n-1-i] = v.flip()
	}
	return Polygon{Vertices: vs, Plane: p.Plane.flip()}
}

const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

// split sorts poly relative to plane into the four destination lists, cutting
// spanning polygons in two.
func (pl Plane) split(poly Polygon, coplanarFront, coplanarBack, fronts, backs *[]Polygon) {
	polyType := 0
	types := make([]int, len(poly.Vertices))
	for i, v := range poly.Vertices {
		t := r3.Dot(pl.Normal, v.Pos) - pl.W
		typ := coplanar
		if t < -epsilon {
			typ = back
		} else if t > epsilon {
			typ = front
		}
		polyType |= typ
		types[i] = typ
	}

	switch polyType {
	case coplanar:
		if r3.Dot(pl.Normal, poly.Plane.Normal) > 0 {
			*coplanarFront = append(*coplanarFront, poly)
		} else {
			*coplanarBack = append(*coplanarBack, poly)
		}
	case front:
		*fronts = append(*fronts, poly)
	case back:
		*backs = append(*backs, poly)
	case spanning:
		var f, b []Vertex
		n := len(poly.Vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.Vertices[i], poly.Vertices[j]
			if ti != back {
				f = append(f, vi)
			}
			if ti != front {
				b = append(b, vi)
			}
			if ti|tj == spanning {
				t := (pl.W - r3.Dot(pl.Normal, vi.Pos)) / r3.Dot(pl.Normal, r3.Sub(vj.Pos, vi.Pos))
				v := vi.lerp(vj, t)
				f = append(f, v)
				b = append(b, v)
			}
		}
		// Pieces inherit the parent plane; they are coplanar with it by construction
		if len(f) >= 3 {
			*fronts = append(*fronts, Polygon{Vertices: f, Plane: poly.Plane})
		}
		if len(b) >= 3 {
			*backs = append(*backs, Polygon{Vertices: b, Plane: poly.Plane})
		}
	}
}

package csg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type hullFace struct {
	v      [3]int
	normal r3.Vec
	w      float64
	dead   bool
}

type hullEdge [2]int

// ConvexHull returns the convex hull of every vertex in the mesh as a
// triangle mesh with flat normals. Inputs with fewer than four
// non-coplanar points are returned unchanged.
func (m *Mesh) ConvexHull() *Mesh {
	return Hull(m)
}

// Hull returns the convex hull of the union of the given meshes. It only
// looks at vertices, so the meshes need not be combined with Union first.
func Hull(meshes ...*Mesh) *Mesh {
	var all []r3.Vec
	for _, m := range meshes {
		all = append(all, m.Positions()...)
	}
	pts := uniquePoints(all)
	faces, ok := quickHull(pts)
	if !ok {
		var polygons []Polygon
		for _, m := range meshes {
			polygons = append(polygons, m.Clone().Polygons...)
		}
		return &Mesh{Polygons: polygons}
	}

	polygons := make([]Polygon, 0, len(faces))
	for _, f := range faces {
		if poly, ok := flatPolygon(pts[f.v[0]], pts[f.v[1]], pts[f.v[2]]); ok {
			polygons = append(polygons, poly)
		}
	}
	return &Mesh{Polygons: polygons}
}

// uniquePoints removes exact and near-exact duplicates, keeping first-seen order.
func uniquePoints(pts []r3.Vec) []r3.Vec {
	const quantum = 1e-7
	seen := make(map[[3]int64]bool, len(pts))
	out := make([]r3.Vec, 0, len(pts))
	for _, p := range pts {
		key := [3]int64{
			int64(math.Round(p.X / quantum)),
			int64(math.Round(p.Y / quantum)),
			int64(math.Round(p.Z / quantum)),
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// quickHull builds the hull incrementally: start from a tetrahedron of
// extreme points, then for every outside point remove the faces it can see
// and stitch its horizon to it.
func quickHull(pts []r3.Vec) ([]hullFace, bool) {
	if len(pts) < 4 {
		return nil, false
	}

	extent := 0.0
	for _, p := range pts {
		extent = math.Max(extent, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
	}
	eps := 1e-9 * math.Max(extent, 1)

	i0, i1, i2, i3, ok := initialSimplex(pts, eps)
	if !ok {
		return nil, false
	}

	var faces []hullFace
	edges := make(map[hullEdge]int)

	addFace := func(a, b, c int) {
		n := unit(r3.Cross(r3.Sub(pts[b], pts[a]), r3.Sub(pts[c], pts[a])))
		idx := len(faces)
		faces = append(faces, hullFace{v: [3]int{a, b, c}, normal: n, w: r3.Dot(n, pts[a])})
		edges[hullEdge{a, b}] = idx
		edges[hullEdge{b, c}] = idx
		edges[hullEdge{c, a}] = idx
	}

	simplex := [4]int{i0, i1, i2, i3}
	for _, tri := range [4][4]int{{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 3, 1}, {1, 2, 3, 0}} {
		a, b, c, opp := simplex[tri[0]], simplex[tri[1]], simplex[tri[2]], simplex[tri[3]]
		n := r3.Cross(r3.Sub(pts[b], pts[a]), r3.Sub(pts[c], pts[a]))
		if r3.Dot(n, r3.Sub(pts[opp], pts[a])) > 0 {
			b, c = c, b
		}
		addFace(a, b, c)
	}

	visible := make(map[int]bool)
	var order []int
	dead := 0
	for i, p := range pts {
		if i == i0 || i == i1 || i == i2 || i == i3 {
			continue
		}

		clear(visible)
		order = order[:0]
		for fi := range faces {
			f := &faces[fi]
			if !f.dead && r3.Dot(f.normal, p)-f.w > eps {
				visible[fi] = true
				order = append(order, fi)
			}
		}
		if len(order) == 0 {
			continue
		}

		// Faces coplanar with p that touch the visible region go too, so no
		// new face is built from p and a collinear horizon edge.
		for n := 0; n < len(order); n++ {
			v := faces[order[n]].v
			for k := 0; k < 3; k++ {
				twin, ok := edges[hullEdge{v[(k+1)%3], v[k]}]
				if !ok || visible[twin] || faces[twin].dead {
					continue
				}
				if r3.Dot(faces[twin].normal, p)-faces[twin].w > -eps {
					visible[twin] = true
					order = append(order, twin)
				}
			}
		}

		var horizon []hullEdge
		for _, fi := range order {
			v := faces[fi].v
			for k := 0; k < 3; k++ {
				e := hullEdge{v[k], v[(k+1)%3]}
				twin, ok := edges[hullEdge{e[1], e[0]}]
				if !ok || !visible[twin] {
					horizon = append(horizon, e)
				}
			}
		}

		for _, fi := range order {
			f := &faces[fi]
			f.dead = true
			dead++
			for k := 0; k < 3; k++ {
				e := hullEdge{f.v[k], f.v[(k+1)%3]}
				if idx, ok := edges[e]; ok && idx == fi {
					delete(edges, e)
				}
			}
		}

		for _, e := range horizon {
			addFace(e[0], e[1], i)
		}

		if dead > len(faces)/2 {
			faces, edges = compactFaces(faces)
			dead = 0
		}
	}

	out := make([]hullFace, 0, len(faces))
	for _, f := range faces {
		if !f.dead {
			out = append(out, f)
		}
	}
	return out, true
}

func compactFaces(faces []hullFace) ([]hullFace, map[hullEdge]int) {
	live := make([]hullFace, 0, len(faces))
	edges := make(map[hullEdge]int, len(faces)*3)
	for _, f := range faces {
		if f.dead {
			continue
		}
		idx := len(live)
		live = append(live, f)
		for k := 0; k < 3; k++ {
			edges[hullEdge{f.v[k], f.v[(k+1)%3]}] = idx
		}
	}
	return live, edges
}

// initialSimplex picks four points spanning a non-degenerate tetrahedron.
func initialSimplex(pts []r3.Vec, eps float64) (int, int, int, int, bool) {
	i0 := 0
	for i, p := range pts {
		if p.X < pts[i0].X {
			i0 = i
		}
	}

	i1, best := -1, eps
	for i, p := range pts {
		if d := r3.Norm(r3.Sub(p, pts[i0])); d > best {
			i1, best = i, d
		}
	}
	if i1 < 0 {
		return 0, 0, 0, 0, false
	}

	dir := unit(r3.Sub(pts[i1], pts[i0]))
	i2, best := -1, eps
	for i, p := range pts {
		if d := r3.Norm(r3.Cross(r3.Sub(p, pts[i0]), dir)); d > best {
			i2, best = i, d
		}
	}
	if i2 < 0 {
		return 0, 0, 0, 0, false
	}

	n := unit(r3.Cross(r3.Sub(pts[i1], pts[i0]), r3.Sub(pts[i2], pts[i0])))
	i3, best := -1, eps
	for i, p := range pts {
		if d := math.Abs(r3.Dot(n, r3.Sub(p, pts[i0]))); d > best {
			i3, best = i, d
		}
	}
	if i3 < 0 {
		return 0, 0, 0, 0, false
	}
	return i0, i1, i2, i3, true
}

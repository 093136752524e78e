package csg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a polygon soup. Operations never modify their receiver; they return
// new meshes that may share unmodified vertex data.
type Mesh struct {
	Polygons []Polygon
}

// FromPolygons builds a mesh from polygons, dropping degenerate ones.
func FromPolygons(polygons []Polygon) *Mesh {
	out := make([]Polygon, 0, len(polygons))
	for _, p := range polygons {
		if len(p.Vertices) >= 3 {
			out = append(out, p)
		}
	}
	return &Mesh{Polygons: out}
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	out := make([]Polygon, len(m.Polygons))
	for i, p := range m.Polygons {
		out[i] = p.clone()
	}
	return &Mesh{Polygons: out}
}

// IsEmpty reports whether the mesh has no polygons.
func (m *Mesh) IsEmpty() bool {
	return len(m.Polygons) == 0
}

// Union returns the space occupied by m or other.
func (m *Mesh) Union(other *Mesh) *Mesh {
	if m.IsEmpty() {
		return other.Clone()
	}
	if other.IsEmpty() {
		return m.Clone()
	}
	a := newNode(m.Polygons)
	b := newNode(other.Polygons)
	a.clipTo(b)
	b.clipTo(a)
	b.invert()
	b.clipTo(a)
	b.invert()
	a.build(b.allPolygons())
	return FromPolygons(a.allPolygons())
}

// Difference returns the space occupied by m but not by other.
func (m *Mesh) Difference(other *Mesh) *Mesh {
	if m.IsEmpty() || other.IsEmpty() {
		return m.Clone()
	}
	a := newNode(m.Polygons)
	b := newNode(other.Polygons)
	a.invert()
	a.clipTo(b)
	b.clipTo(a)
	b.invert()
	b.clipTo(a)
	b.invert()
	a.build(b.allPolygons())
	a.invert()
	return FromPolygons(a.allPolygons())
}

// Intersection returns the space occupied by both m and other.
func (m *Mesh) Intersection(other *Mesh) *Mesh {
	if m.IsEmpty() || other.IsEmpty() {
		return &Mesh{}
	}
	a := newNode(m.Polygons)
	b := newNode(other.Polygons)
	a.invert()
	b.clipTo(a)
	b.invert()
	a.clipTo(b)
	b.clipTo(a)
	a.build(b.allPolygons())
	a.invert()
	return FromPolygons(a.allPolygons())
}

// transform maps every vertex. normal receives the untransformed normal and
// must return a vector pointing the same way relative to the surface; mirror
// reverses winding for orientation-reversing maps.
func (m *Mesh) transform(pos, normal func(r3.Vec) r3.Vec, mirror bool) *Mesh {
	out := make([]Polygon, 0, len(m.Polygons))
	for _, p := range m.Polygons {
		n := len(p.Vertices)
		vs := make([]Vertex, n)
		for i, v := range p.Vertices {
			j := i
			if mirror {
				j = n - 1 - i
			}
			vs[j] = Vertex{Pos: pos(v.Pos), Normal: unit(normal(v.Normal))}
		}
		if poly, ok := newPolygon(vs); ok {
			out = append(out, poly)
		}
	}
	return &Mesh{Polygons: out}
}

// Translate moves the mesh by (x, y, z).
func (m *Mesh) Translate(x, y, z float64) *Mesh {
	offset := r3.Vec{X: x, Y: y, Z: z}
	return m.transform(
		func(p r3.Vec) r3.Vec { return r3.Add(p, offset) },
		func(n r3.Vec) r3.Vec { return n },
		false,
	)
}

// Scale multiplies each axis by the given factor. Negative factors mirror the
// mesh and keep it outward facing.
func (m *Mesh) Scale(x, y, z float64) *Mesh {
	det := x * y * z
	sign := 1.0
	if det < 0 {
		sign = -1
	}
	// Cofactor of diag(x,y,z), i.e. det * inverse transpose, without dividing by zero
	cof := r3.Vec{X: y * z * sign, Y: x * z * sign, Z: x * y * sign}
	return m.transform(
		func(p r3.Vec) r3.Vec { return r3.Vec{X: p.X * x, Y: p.Y * y, Z: p.Z * z} },
		func(n r3.Vec) r3.Vec { return r3.Vec{X: n.X * cof.X, Y: n.Y * cof.Y, Z: n.Z * cof.Z} },
		det < 0,
	)
}

// Uniform scales all axes by s.
func (m *Mesh) Uniform(s float64) *Mesh {
	return m.Scale(s, s, s)
}

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// Rotate rotates by the given angles in degrees about X, then Y, then Z.
func (m *Mesh) Rotate(xDeg, yDeg, zDeg float64) *Mesh {
	rx, ry, rz := radians(xDeg), radians(yDeg), radians(zDeg)
	rot := func(v r3.Vec) r3.Vec {
		if rx != 0 {
			v = r3.Rotate(v, rx, axisX)
		}
		if ry != 0 {
			v = r3.Rotate(v, ry, axisY)
		}
		if rz != 0 {
			v = r3.Rotate(v, rz, axisZ)
		}
		return v
	}
	return m.transform(rot, rot, false)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Mirror reflects the mesh across the plane normal·p = offset.
func (m *Mesh) Mirror(normal r3.Vec, offset float64) *Mesh {
	n := unit(normal)
	reflect := func(v r3.Vec, w float64) r3.Vec {
		return r3.Sub(v, r3.Scale(2*(r3.Dot(n, v)-w), n))
	}
	return m.transform(
		func(p r3.Vec) r3.Vec { return reflect(p, offset) },
		func(v r3.Vec) r3.Vec { return reflect(v, 0) },
		true,
	)
}

// Renormalize recomputes every polygon plane and sets each vertex normal to
// its polygon's face normal.
func (m *Mesh) Renormalize() *Mesh {
	out := make([]Polygon, 0, len(m.Polygons))
	for _, p := range m.Polygons {
		plane, ok := planeOf(p.Vertices)
		if !ok {
			continue
		}
		vs := make([]Vertex, len(p.Vertices))
		for i, v := range p.Vertices {
			vs[i] = Vertex{Pos: v.Pos, Normal: plane.Normal}
		}
		out = append(out, Polygon{Vertices: vs, Plane: plane})
	}
	return &Mesh{Polygons: out}
}

// Triangulate fans every polygon into triangles.
func (m *Mesh) Triangulate() *Mesh {
	out := make([]Polygon, 0, m.TriangleCount())
	for _, p := range m.Polygons {
		for i := 1; i+1 < len(p.Vertices); i++ {
			out = append(out, Polygon{
				Vertices: []Vertex{p.Vertices[0], p.Vertices[i], p.Vertices[i+1]},
				Plane:    p.Plane,
			})
		}
	}
	return &Mesh{Polygons: out}
}

// Subdivide triangulates and then splits each triangle into four at its edge
// midpoints, levels times.
func (m *Mesh) Subdivide(levels int) *Mesh {
	out := m.Triangulate()
	for l := 0; l < levels; l++ {
		next := make([]Polygon, 0, len(out.Polygons)*4)
		for _, p := range out.Polygons {
			a, b, c := p.Vertices[0], p.Vertices[1], p.Vertices[2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next,
				Polygon{Vertices: []Vertex{a, ab, ca}, Plane: p.Plane},
				Polygon{Vertices: []Vertex{ab, b, bc}, Plane: p.Plane},
				Polygon{Vertices: []Vertex{ca, bc, c}, Plane: p.Plane},
				Polygon{Vertices: []Vertex{ab, bc, ca}, Plane: p.Plane},
			)
		}
		out = &Mesh{Polygons: next}
	}
	return out
}

func midpoint(a, b Vertex) Vertex {
	v := a.lerp(b, 0.5)
	if n := unit(v.Normal); n != (r3.Vec{}) {
		v.Normal = n
	}
	return v
}

// TriangleCount returns the number of triangles after fan triangulation.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, p := range m.Polygons {
		if len(p.Vertices) >= 3 {
			n += len(p.Vertices) - 2
		}
	}
	return n
}

// Bounds returns the axis-aligned bounding box. An empty mesh yields a zero box.
func (m *Mesh) Bounds() r3.Box {
	if m.IsEmpty() {
		return r3.Box{}
	}
	inf := math.Inf(1)
	box := r3.Box{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
	for _, p := range m.Polygons {
		for _, v := range p.Vertices {
			box.Min = r3.Vec{X: math.Min(box.Min.X, v.Pos.X), Y: math.Min(box.Min.Y, v.Pos.Y), Z: math.Min(box.Min.Z, v.Pos.Z)}
			box.Max = r3.Vec{X: math.Max(box.Max.X, v.Pos.X), Y: math.Max(box.Max.Y, v.Pos.Y), Z: math.Max(box.Max.Z, v.Pos.Z)}
		}
	}
	return box
}

// Positions returns every vertex position, including duplicates.
func (m *Mesh) Positions() []r3.Vec {
	var out []r3.Vec
	for _, p := range m.Polygons {
		for _, v := range p.Vertices {
			out = append(out, v.Pos)
		}
	}
	return out
}

// Triangle is one face handed to renderers and exporters.
type Triangle struct {
	Normal   r3.Vec
	Vertices [3]Vertex
}

// Triangles returns the mesh as a flat triangle list.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, 0, m.TriangleCount())
	for _, p := range m.Polygons {
		for i := 1; i+1 < len(p.Vertices); i++ {
			out = append(out, Triangle{
				Normal:   p.Plane.Normal,
				Vertices: [3]Vertex{p.Vertices[0], p.Vertices[i], p.Vertices[i+1]},
			})
		}
	}
	return out
}

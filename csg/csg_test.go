package csg

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// signedVolume integrates over the surface with the divergence theorem.
// Outward-facing closed meshes give a positive volume.
func signedVolume(m *Mesh) float64 {
	v := 0.0
	for _, t := range m.Triangles() {
		a, b, c := t.Vertices[0].Pos, t.Vertices[1].Pos, t.Vertices[2].Pos
		v += r3.Dot(a, r3.Cross(b, c)) / 6
	}
	return v
}

func boxNear(got, want r3.Box, tol float64) bool {
	return scalar.EqualWithinAbs(got.Min.X, want.Min.X, tol) &&
		scalar.EqualWithinAbs(got.Min.Y, want.Min.Y, tol) &&
		scalar.EqualWithinAbs(got.Min.Z, want.Min.Z, tol) &&
		scalar.EqualWithinAbs(got.Max.X, want.Max.X, tol) &&
		scalar.EqualWithinAbs(got.Max.Y, want.Max.Y, tol) &&
		scalar.EqualWithinAbs(got.Max.Z, want.Max.Z, tol)
}

func box(x0, y0, z0, x1, y1, z1 float64) r3.Box {
	return r3.Box{Min: r3.Vec{X: x0, Y: y0, Z: z0}, Max: r3.Vec{X: x1, Y: y1, Z: z1}}
}

// assertOutward checks that every face normal points away from an interior point.
func assertOutward(t *testing.T, m *Mesh, inside r3.Vec) {
	t.Helper()
	for i, p := range m.Polygons {
		var c r3.Vec
		for _, v := range p.Vertices {
			c = r3.Add(c, v.Pos)
		}
		c = r3.Scale(1/float64(len(p.Vertices)), c)
		if r3.Dot(p.Plane.Normal, r3.Sub(c, inside)) <= 0 {
			t.Fatalf("polygon %d faces inward: normal %v centroid %v", i, p.Plane.Normal, c)
		}
	}
}

func TestPrimitives(t *testing.T) {
	t.Run("cuboid", func(t *testing.T) {
		m := Cuboid(2, 3, 4)
		if len(m.Polygons) != 6 || m.TriangleCount() != 12 {
			t.Fatalf("polygons=%d triangles=%d, want 6 and 12", len(m.Polygons), m.TriangleCount())
		}
		if !boxNear(m.Bounds(), box(0, 0, 0, 2, 3, 4), 1e-12) {
			t.Errorf("bounds = %v", m.Bounds())
		}
		assertOutward(t, m, r3.Vec{X: 1, Y: 1.5, Z: 2})
		if v := signedVolume(m); !scalar.EqualWithinAbs(v, 24, 1e-9) {
			t.Errorf("volume = %v, want 24", v)
		}
	})

	t.Run("sphere", func(t *testing.T) {
		m := Sphere(2, 20, 40)
		if m.IsEmpty() {
			t.Fatal("sphere is empty")
		}
		if !boxNear(m.Bounds(), box(-2, -2, -2, 2, 2, 2), 0.05) {
			t.Errorf("bounds = %v", m.Bounds())
		}
		assertOutward(t, m, r3.Vec{})
		v := signedVolume(m)
		exact := 4.0 / 3 * math.Pi * 8
		if v <= 0.9*exact || v > exact {
			t.Errorf("volume = %v, want just under %v", v, exact)
		}
	})

	t.Run("frustum", func(t *testing.T) {
		m := Frustum(3, 1, 5, 20)
		if len(m.Polygons) != 22 || m.TriangleCount() != 20*2+18*2 {
			t.Errorf("polygons = %d triangles = %d, want 22 and 76", len(m.Polygons), m.TriangleCount())
		}
		b := m.Bounds()
		if !scalar.EqualWithinAbs(b.Min.Z, 0, 1e-12) || !scalar.EqualWithinAbs(b.Max.Z, 5, 1e-12) {
			t.Errorf("z extent = [%v, %v], want [0, 5]", b.Min.Z, b.Max.Z)
		}
		assertOutward(t, m, r3.Vec{Z: 2.5})
	})

	t.Run("pointed frustum", func(t *testing.T) {
		m := Frustum(2, 0.1, 3, 12)
		assertOutward(t, m, r3.Vec{Z: 1})
		if signedVolume(m) <= 0 {
			t.Error("volume is not positive")
		}
	})
}

func TestBooleans(t *testing.T) {
	a := Cuboid(2, 2, 2)
	b := Cuboid(2, 2, 2).Translate(1, 1, 1)

	tests := []struct {
		name   string
		result *Mesh
		volume float64
		bounds r3.Box
	}{
		{"union", a.Union(b), 15, box(0, 0, 0, 3, 3, 3)},
		{"difference", a.Difference(b), 7, box(0, 0, 0, 2, 2, 2)},
		{"intersection", a.Intersection(b), 1, box(1, 1, 1, 2, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := signedVolume(tt.result); !scalar.EqualWithinAbs(v, tt.volume, 1e-6) {
				t.Errorf("volume = %v, want %v", v, tt.volume)
			}
			if !boxNear(tt.result.Bounds(), tt.bounds, 1e-6) {
				t.Errorf("bounds = %v, want %v", tt.result.Bounds(), tt.bounds)
			}
		})
	}

	if len(a.Polygons) != 6 || len(b.Polygons) != 6 {
		t.Error("operands were modified")
	}
}

func TestBooleansWithEmpty(t *testing.T) {
	a := Cuboid(1, 1, 1)
	empty := &Mesh{}

	if got := a.Union(empty); len(got.Polygons) != 6 {
		t.Errorf("union with empty: %d polygons", len(got.Polygons))
	}
	if got := empty.Union(a); len(got.Polygons) != 6 {
		t.Errorf("empty union a: %d polygons", len(got.Polygons))
	}
	if got := a.Difference(empty); len(got.Polygons) != 6 {
		t.Errorf("difference with empty: %d polygons", len(got.Polygons))
	}
	if got := a.Intersection(empty); !got.IsEmpty() {
		t.Errorf("intersection with empty: %d polygons", len(got.Polygons))
	}
}

func TestDifferenceCutsAway(t *testing.T) {
	s := Sphere(1, 16, 16)
	cut := Cuboid(4, 4, 2).Translate(-2, -2, -2.5)
	got := s.Difference(cut)

	if got.Bounds().Min.Z < -0.5-1e-6 {
		t.Errorf("min z = %v, want >= -0.5", got.Bounds().Min.Z)
	}
	if signedVolume(got) >= signedVolume(s) {
		t.Error("difference did not remove volume")
	}
}

func TestTransforms(t *testing.T) {
	tests := []struct {
		name   string
		mesh   *Mesh
		bounds r3.Box
	}{
		{"translate", Cuboid(1, 1, 1).Translate(1, -2, 3), box(1, -2, 3, 2, -1, 4)},
		{"scale", Cuboid(1, 1, 1).Scale(2, 3, 4), box(0, 0, 0, 2, 3, 4)},
		{"uniform", Cuboid(1, 2, 3).Uniform(2), box(0, 0, 0, 2, 4, 6)},
		{"negative scale", Cuboid(1, 1, 1).Scale(-1, 1, 1), box(-1, 0, 0, 0, 1, 1)},
		{"rotate z", Cuboid(2, 1, 1).Rotate(0, 0, 90), box(-1, 0, 0, 0, 2, 1)},
		{"rotate x", Cuboid(1, 2, 1).Rotate(90, 0, 0), box(0, -1, 0, 1, 0, 2)},
		{"mirror x", Cuboid(1, 1, 1).Mirror(r3.Vec{X: 1}, 0), box(-1, 0, 0, 0, 1, 1)},
		{"mirror offset", Cuboid(1, 1, 1).Mirror(r3.Vec{Z: 1}, 2), box(0, 0, 3, 1, 1, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !boxNear(tt.mesh.Bounds(), tt.bounds, 1e-9) {
				t.Errorf("bounds = %v, want %v", tt.mesh.Bounds(), tt.bounds)
			}
			// Orientation-reversing maps must keep faces outward
			if v := signedVolume(tt.mesh); v <= 0 {
				t.Errorf("volume = %v, want positive", v)
			}
			c := r3.Scale(0.5, r3.Add(tt.bounds.Min, tt.bounds.Max))
			assertOutward(t, tt.mesh, c)
		})
	}
}

func TestScaleKeepsVertexNormalsOutward(t *testing.T) {
	m := Sphere(1, 12, 12).Scale(-3, 1, 0.5)
	for _, p := range m.Polygons {
		for _, v := range p.Vertices {
			if r3.Dot(v.Normal, v.Pos) <= 0 {
				t.Fatalf("vertex normal %v at %v points inward", v.Normal, v.Pos)
			}
		}
	}
}

func TestConvexHull(t *testing.T) {
	t.Run("cube", func(t *testing.T) {
		h := Cuboid(1, 1, 1).ConvexHull()
		if !boxNear(h.Bounds(), box(0, 0, 0, 1, 1, 1), 1e-12) {
			t.Errorf("bounds = %v", h.Bounds())
		}
		if v := signedVolume(h); !scalar.EqualWithinAbs(v, 1, 1e-9) {
			t.Errorf("volume = %v, want 1", v)
		}
		if h.TriangleCount() != 12 {
			t.Errorf("triangles = %d, want 12", h.TriangleCount())
		}
	})

	t.Run("sphere and far point", func(t *testing.T) {
		s := Sphere(1, 16, 8)
		tip := Cuboid(0.1, 0.1, 0.1).Translate(5, 0, 0)
		h := s.Union(tip).ConvexHull()
		b := h.Bounds()
		if !scalar.EqualWithinAbs(b.Max.X, 5.1, 1e-9) {
			t.Errorf("max x = %v, want 5.1", b.Max.X)
		}
		if signedVolume(h) <= signedVolume(s) {
			t.Error("hull is not larger than the sphere")
		}
		assertOutward(t, h, r3.Vec{X: 0.5})
	})

	t.Run("interior points ignored", func(t *testing.T) {
		outer := Cuboid(2, 2, 2)
		inner := Cuboid(0.5, 0.5, 0.5).Translate(0.5, 0.5, 0.5)
		h := FromPolygons(append(outer.Clone().Polygons, inner.Polygons...)).ConvexHull()
		if v := signedVolume(h); !scalar.EqualWithinAbs(v, 8, 1e-9) {
			t.Errorf("volume = %v, want 8", v)
		}
	})

	t.Run("several meshes", func(t *testing.T) {
		a := Cuboid(1, 1, 1)
		b := Cuboid(1, 1, 1).Translate(2, 0, 0)
		h := Hull(a, b)
		if v := signedVolume(h); !scalar.EqualWithinAbs(v, 3, 1e-9) {
			t.Errorf("volume = %v, want 3", v)
		}
		if !boxNear(h.Bounds(), box(0, 0, 0, 3, 1, 1), 1e-12) {
			t.Errorf("bounds = %v", h.Bounds())
		}
		assertOutward(t, h, r3.Vec{X: 1.5, Y: 0.5, Z: 0.5})
	})

	t.Run("flat input", func(t *testing.T) {
		sq, _ := flatPolygon(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1}, r3.Vec{Y: 1})
		m := &Mesh{Polygons: []Polygon{sq}}
		if h := m.ConvexHull(); len(h.Polygons) != 1 {
			t.Errorf("flat hull has %d polygons, want the input back", len(h.Polygons))
		}
	})
}

func TestSubdivide(t *testing.T) {
	m := Cuboid(1, 2, 3)
	for levels := 0; levels <= 2; levels++ {
		s := m.Subdivide(levels)
		want := 12
		for i := 0; i < levels; i++ {
			want *= 4
		}
		if s.TriangleCount() != want {
			t.Errorf("levels=%d triangles=%d, want %d", levels, s.TriangleCount(), want)
		}
		if v := signedVolume(s); !scalar.EqualWithinAbs(v, 6, 1e-9) {
			t.Errorf("levels=%d volume=%v, want 6", levels, v)
		}
	}
}

func TestRenormalize(t *testing.T) {
	m := Sphere(1, 8, 8).Renormalize()
	for _, p := range m.Polygons {
		for _, v := range p.Vertices {
			if r3.Norm(r3.Sub(v.Normal, p.Plane.Normal)) > 1e-12 {
				t.Fatalf("vertex normal %v differs from face normal %v", v.Normal, p.Plane.Normal)
			}
		}
	}
}

func TestSTLASCII(t *testing.T) {
	s := Cuboid(1, 1, 1).ToSTLASCII("cube")

	if !strings.HasPrefix(s, "solid cube\n") {
		t.Errorf("missing header: %q", s[:min(len(s), 20)])
	}
	if !strings.HasSuffix(s, "endsolid cube\n") {
		t.Errorf("missing footer")
	}
	if n := strings.Count(s, "facet normal"); n != 12 {
		t.Errorf("facets = %d, want 12", n)
	}
	if n := strings.Count(s, "vertex "); n != 36 {
		t.Errorf("vertices = %d, want 36", n)
	}
	if n := strings.Count(s, "endloop"); n != 12 {
		t.Errorf("loops = %d, want 12", n)
	}
	if !strings.Contains(s, "facet normal 0.000000e+00 0.000000e+00 1.000000e+00") {
		t.Error("top face normal not formatted in scientific notation")
	}
}

// Package components defines ECS components for the bird viewer.
package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/csg"
	"github.com/pthm-cable/coolbirds/geometry"
)

// Role identifies which bird an entity shows.
type Role uint8

const (
	RoleSeed  Role = iota // The bird being edited
	RoleLeft              // Offspring bred with a catalog bird
	RoleRight             // Offspring bred with a random bird
)

func (r Role) String() string {
	switch r {
	case RoleSeed:
		return "seed"
	case RoleLeft:
		return "left"
	case RoleRight:
		return "right"
	}
	return "unknown"
}

// Specimen holds the parameters an entity displays.
type Specimen struct {
	Role        Role
	Params      bird.Params
	Description string
}

// Model caches the triangles built from a specimen's parameters.
type Model struct {
	Built  bird.Params // Parameters the triangles were built from
	Valid  bool
	Head   []csg.Triangle
	Body   []csg.Triangle
	Bounds r3.Box
}

// Stale reports whether the model must be rebuilt to show p.
func (m *Model) Stale(p bird.Params) bool {
	return !m.Valid || m.Built != p
}

// Set replaces the cached triangles with a freshly built bird.
func (m *Model) Set(p bird.Params, b geometry.Bird) {
	m.Built = p
	m.Valid = true
	m.Head = b.Head.Triangles()
	m.Body = b.Body.Triangles()
	m.Bounds = b.Bounds()
}

// TriangleCount returns the number of cached triangles.
func (m *Model) TriangleCount() int {
	return len(m.Head) + len(m.Body)
}

// Viewport is the screen rectangle an entity is drawn into.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether the screen point lies inside the viewport.
func (v Viewport) Contains(x, y float32) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}

// Spin turns a preview bird on a turntable.
type Spin struct {
	Angle float32 // Degrees
	Speed float32 // Degrees per second
}

// Advance turns the bird by dt seconds, wrapping at a full turn.
func (s *Spin) Advance(dt float32) {
	s.Angle = float32(math.Mod(float64(s.Angle+s.Speed*dt), 360))
	if s.Angle < 0 {
		s.Angle += 360
	}
}

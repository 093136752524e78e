// Package renderer draws bird models with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/coolbirds/camera"
	"github.com/pthm-cable/coolbirds/components"
	"github.com/pthm-cable/coolbirds/csg"
)

// MeshRenderer draws cached bird triangles with flat directional shading.
type MeshRenderer struct {
	// Light points from the scene toward the light, in scene coordinates
	Light   r3.Vec
	Ambient float64

	HeadColor rl.Color
	BodyColor rl.Color
}

// NewMeshRenderer creates a renderer lit from above and in front.
func NewMeshRenderer(head, body rl.Color) *MeshRenderer {
	return &MeshRenderer{
		Light:     r3.Unit(r3.Vec{X: 0.4, Y: 1, Z: 0.6}),
		Ambient:   0.35,
		HeadColor: head,
		BodyColor: body,
	}
}

// Draw renders a model turned spinDeg degrees about the scene's up axis.
// It must be called between rl.BeginMode3D and rl.EndMode3D.
func (mr *MeshRenderer) Draw(m *components.Model, spinDeg float32) {
	if !m.Valid {
		return
	}
	rot := r3.NewRotation(float64(spinDeg)*math.Pi/180, r3.Vec{Y: 1})
	mr.drawTriangles(m.Body, mr.BodyColor, rot)
	mr.drawTriangles(m.Head, mr.HeadColor, rot)
}

func (mr *MeshRenderer) drawTriangles(tris []csg.Triangle, base rl.Color, rot r3.Rotation) {
	for _, tri := range tris {
		n := rot.Rotate(camera.ToScene(tri.Normal))
		c := shade(base, mr.Ambient+(1-mr.Ambient)*math.Max(0, r3.Dot(n, mr.Light)))

		var v [3]rl.Vector3
		for i, vert := range tri.Vertices {
			p := rot.Rotate(camera.ToScene(vert.Pos))
			v[i] = rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z))
		}
		rl.DrawTriangle3D(v[0], v[1], v[2], c)
	}
}

// shade scales a color's RGB by f in [0,1].
func shade(c rl.Color, f float64) rl.Color {
	f = math.Min(math.Max(f, 0), 1)
	return rl.Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// Camera3D converts an orbit camera to a raylib perspective camera.
func Camera3D(o *camera.Orbit) rl.Camera3D {
	pos, target := o.Position(), o.Target
	return rl.Camera3D{
		Position:   rl.NewVector3(float32(pos.X), float32(pos.Y), float32(pos.Z)),
		Target:     rl.NewVector3(float32(target.X), float32(target.Y), float32(target.Z)),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

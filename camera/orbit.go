// Package camera provides an orbit camera around a bird mesh.
//
// Meshes are built Z-up. The viewer's scene is Y-up, so points pass
// through ToScene before drawing.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orbit circles a target point at a fixed radius.
type Orbit struct {
	// Target is the orbit center in scene coordinates
	Target r3.Vec

	// Yaw about the scene's up axis and pitch above the horizon, in radians
	Yaw, Pitch float64
	Radius     float64

	// Constraints
	MinRadius, MaxRadius float64
	MaxPitch             float64
}

// NewOrbit creates a camera looking at the origin from radius.
func NewOrbit(radius float64) *Orbit {
	o := &Orbit{
		MinRadius: radius / 10,
		MaxRadius: radius * 4,
		MaxPitch:  math.Pi/2 - 0.05,
	}
	o.reset(radius)
	return o
}

func (o *Orbit) reset(radius float64) {
	o.Target = r3.Vec{}
	o.Yaw = math.Pi / 4
	o.Pitch = math.Pi / 8
	o.Radius = clamp(radius, o.MinRadius, o.MaxRadius)
}

// Position returns the camera position in scene coordinates.
func (o *Orbit) Position() r3.Vec {
	cp := math.Cos(o.Pitch)
	offset := r3.Vec{
		X: o.Radius * cp * math.Sin(o.Yaw),
		Y: o.Radius * math.Sin(o.Pitch),
		Z: o.Radius * cp * math.Cos(o.Yaw),
	}
	return r3.Add(o.Target, offset)
}

// Rotate turns the camera by the given yaw and pitch deltas in radians.
// Yaw wraps; pitch stops short of the poles.
func (o *Orbit) Rotate(dYaw, dPitch float64) {
	o.Yaw = mod(o.Yaw+dYaw, 2*math.Pi)
	o.Pitch = clamp(o.Pitch+dPitch, -o.MaxPitch, o.MaxPitch)
}

// ZoomBy multiplies the radius by factor.
func (o *Orbit) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	o.Radius = clamp(o.Radius*factor, o.MinRadius, o.MaxRadius)
}

// Frame centers the camera on a mesh bounding box given in mesh
// coordinates and backs off far enough to see all of it.
func (o *Orbit) Frame(box r3.Box) {
	lo, hi := ToScene(box.Min), ToScene(box.Max)
	o.Target = r3.Scale(0.5, r3.Add(lo, hi))
	extent := r3.Norm(r3.Sub(box.Max, box.Min))
	if extent > 0 {
		o.Radius = clamp(extent*1.2, o.MinRadius, o.MaxRadius)
	}
}

// Reset returns to the default view at radius.
func (o *Orbit) Reset(radius float64) {
	o.reset(radius)
}

// ToScene maps a Z-up mesh point to the Y-up scene: (x, y, z) -> (x, z, -y).
// It is a rotation, so triangle winding is unchanged.
func ToScene(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Z, Z: -v.Y}
}

// mod computes the positive modulo (Go's math.Mod can return negative).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

package geometry

import (
	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/csg"
)

// Head builds the skull, beak and eyes, posed on the neck.
//
// The beak is a short cone pushed out along -X and hulled with the skull, so
// the head and beak share one smooth silhouette. Eyes are flattened spheres
// unioned onto that silhouette; the second eye is a reflection of the first.
func (g *Builder) Head(p bird.Params) *csg.Mesh {
	o := g.Options
	headSize := f64(p.HeadSize)

	skull := g.sphere(p.HeadSize / 2)
	beak := g.cone(p.BeakWidth).
		Scale(g.factor(f64(p.BeakRoundness)/100), 1, 1).
		Translate(-(f64(p.BeakLength) + headSize/2), 0, 0).
		Rotate(0, o.BeakTilt, 0)

	head := csg.Hull(skull, beak)
	beakSize := g.factor(f64(p.BeakSize) / 100)
	head = head.Scale(1, beakSize, beakSize)

	if p.EyeSize > 0 {
		eyeSize := f64(p.EyeSize)
		eye := csg.Sphere(g.radius(p.EyeSize/2), o.EyeSegments, o.EyeStacks).
			Scale(1, 1, 0.5).
			Translate(0, 0, headSize/2-eyeSize/8).
			Rotate(o.EyeRotation[0], o.EyeRotation[1], o.EyeRotation[2])
		head = head.Union(eye).Renormalize()
		head = head.Union(eye.Mirror(yPlane, 0)).Renormalize()
	}

	return head.
		Rotate(0, f64(p.HeadPitch), f64(p.HeadYaw)).
		Translate(0, f64(p.HeadLateralOffset), f64(p.HeadLevel)).
		Uniform(o.HeadScale).
		Renormalize().
		Subdivide(o.Subdivisions)
}

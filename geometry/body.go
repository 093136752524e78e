package geometry

import (
	"math"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/csg"
)

// Body builds the neck, chest, bottom and tail as a chain of hulls and
// optionally slices a flat base off it.
func (g *Builder) Body(p bird.Params) *csg.Mesh {
	body := g.uncutBody(p)
	if !p.CutEnabled() {
		return body
	}
	cut := body.Difference(g.cutter(p, body))
	if cut.IsEmpty() {
		return body
	}
	return cut.Renormalize()
}

// uncutBody hulls successive landmark pairs rather than all of them at once
// so the silhouette follows neck, chest, bottom and tail in turn.
func (g *Builder) uncutBody(p bird.Params) *csg.Mesh {
	headToBelly := f64(p.HeadToBelly)
	anchor := headToBelly + f64(p.BellyToBottom)
	bellySize := g.factor(f64(p.BellySize))

	neck := g.sphere(p.HeadSize/2).
		Translate(0, f64(p.HeadLateralOffset), f64(p.HeadLevel))
	chest := g.sphere(p.BellySize/2).
		Scale(g.factor(f64(p.BellyLength)/bellySize), g.factor(f64(p.BellyFat)/100), 1).
		Translate(headToBelly, 0, 0)
	body := csg.Hull(neck, chest)

	bottom := g.sphere(p.BottomSize/2).Translate(anchor, 0, 0)
	body = csg.Hull(body, bottom)

	tail := g.cone(p.TailWidth).
		Scale(g.factor(f64(p.TailRoundness)/100), 1, 1).
		Translate(f64(p.TailLength), 0, 0).
		Rotate(0, -f64(p.TailPitch), f64(p.TailYaw)).
		Translate(anchor, 0, 0)
	body = csg.Hull(body, tail)

	return body.Renormalize()
}

// CutHeight returns the Z of the flat base for p.
func CutHeight(p bird.Params) float64 {
	return f64(p.BellySize) * (-1.5 + f64(p.BaseFlat)/200)
}

// cutter is a box whose top face sits at the cut height and which covers
// the body on every other side.
func (g *Builder) cutter(p bird.Params, body *csg.Mesh) *csg.Mesh {
	totalLen := f64(p.BeakLength) + f64(p.HeadToBelly) + f64(p.BellyToBottom) + f64(p.TailLength)
	bounds := body.Bounds()
	extent := math.Max(bounds.Max.X-bounds.Min.X, math.Max(bounds.Max.Y-bounds.Min.Y, bounds.Max.Z-bounds.Min.Z))
	side := 4 * math.Max(math.Abs(totalLen), extent)

	cx := (bounds.Min.X + bounds.Max.X) / 2
	cy := (bounds.Min.Y + bounds.Max.Y) / 2
	top := CutHeight(p)
	return csg.Cuboid(side, side, side).Translate(cx-side/2, cy-side/2, top-side)
}

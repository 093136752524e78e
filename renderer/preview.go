package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/coolbirds/camera"
	"github.com/pthm-cable/coolbirds/components"
)

// Preview renders a model into an offscreen texture for a thumbnail.
type Preview struct {
	target rl.RenderTexture2D
	size   int32
	orbit  *camera.Orbit
}

// NewPreview allocates a square render target. It must be called after the window is created.
func NewPreview(size int32, radius float64) *Preview {
	return &Preview{
		target: rl.LoadRenderTexture(size, size),
		size:   size,
		orbit:  camera.NewOrbit(radius),
	}
}

// Render draws the model into the texture, framed to fit.
func (p *Preview) Render(mr *MeshRenderer, m *components.Model, spinDeg float32, bg rl.Color) {
	if m.Valid {
		p.orbit.Frame(m.Bounds)
	}
	rl.BeginTextureMode(p.target)
	rl.ClearBackground(bg)
	rl.BeginMode3D(Camera3D(p.orbit))
	mr.Draw(m, spinDeg)
	rl.EndMode3D()
	rl.EndTextureMode()
}

// Draw blits the texture at (x, y). Render textures are stored upside down.
func (p *Preview) Draw(x, y float32) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(p.size), Height: -float32(p.size)}
	rl.DrawTextureRec(p.target.Texture, src, rl.Vector2{X: x, Y: y}, rl.White)
}

// Unload frees the render target.
func (p *Preview) Unload() {
	rl.UnloadRenderTexture(p.target)
}

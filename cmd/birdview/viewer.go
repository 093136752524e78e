package main

import (
	"fmt"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/camera"
	"github.com/pthm-cable/coolbirds/components"
	"github.com/pthm-cable/coolbirds/genetics"
	"github.com/pthm-cable/coolbirds/renderer"
	"github.com/pthm-cable/coolbirds/studio"
	"github.com/pthm-cable/coolbirds/telemetry"
	"github.com/pthm-cable/coolbirds/ui"
)

// Layout constants
const (
	buttonWidth  = 110
	buttonHeight = 26
	previewSpin  = 30 // degrees per second
)

// viewer holds the window state around a studio session.
type viewer struct {
	studio *studio.Studio

	world     *ecs.World
	birdMap   *ecs.Map4[components.Specimen, components.Model, components.Viewport, components.Spin]
	birds     *ecs.Filter4[components.Specimen, components.Model, components.Viewport, components.Spin]
	modelMap  *ecs.Map1[components.Model]
	entities  map[components.Role]ecs.Entity
	framed    bool
	dragging  bool
	sceneView components.Viewport

	orbit    *camera.Orbit
	meshes   *renderer.MeshRenderer
	previews map[components.Role]*renderer.Preview
	panel    *ui.ParamPanel
	ui       *ui.Renderer
	perf     *telemetry.PerfCollector
}

func newViewer(s *studio.Studio) *viewer {
	cfg := s.Config()
	world := ecs.NewWorld()
	theme := ui.DefaultTheme()

	width, height := float32(cfg.Viewer.Width), float32(cfg.Viewer.Height)
	panelW := float32(cfg.Viewer.PanelWidth)
	preview := float32(cfg.Viewer.PreviewSize)

	v := &viewer{
		studio:   s,
		world:    world,
		birdMap:  ecs.NewMap4[components.Specimen, components.Model, components.Viewport, components.Spin](world),
		birds:    ecs.NewFilter4[components.Specimen, components.Model, components.Viewport, components.Spin](world),
		modelMap: ecs.NewMap1[components.Model](world),
		entities: make(map[components.Role]ecs.Entity),
		orbit:    camera.NewOrbit(cfg.Viewer.OrbitRadius),
		meshes:   renderer.NewMeshRenderer(theme.HeadColor, theme.BodyColor),
		previews: make(map[components.Role]*renderer.Preview),
		panel:    ui.NewParamPanel(0, 0, int32(panelW), int32(height)),
		ui:       &ui.Renderer{Theme: theme},
		perf:     telemetry.NewPerfCollector(cfg.Viewer.TargetFPS),
	}
	v.sceneView = components.Viewport{X: panelW, Y: 0, Width: width - panelW - preview - 20, Height: height}

	// Offspring previews stack down the right edge, each with a choose button below
	column := width - preview - 10
	v.spawn(components.RoleSeed, v.sceneView, 0)
	v.spawn(components.RoleLeft, components.Viewport{X: column, Y: 40, Width: preview, Height: preview}, previewSpin)
	v.spawn(components.RoleRight, components.Viewport{X: column, Y: 100 + 2*buttonHeight + preview, Width: preview, Height: preview}, previewSpin)
	for _, role := range []components.Role{components.RoleLeft, components.RoleRight} {
		v.previews[role] = renderer.NewPreview(int32(preview), cfg.Viewer.OrbitRadius)
	}
	v.syncSpecimens()
	return v
}

func (v *viewer) spawn(role components.Role, vp components.Viewport, spin float32) {
	spec := components.Specimen{Role: role}
	model := components.Model{}
	s := components.Spin{Speed: spin}
	v.entities[role] = v.birdMap.NewEntity(&spec, &model, &vp, &s)
}

func (v *viewer) unload() {
	for _, p := range v.previews {
		p.Unload()
	}
}

// syncSpecimens copies the session's birds into the ECS. Descriptions are
// redrawn only for birds that changed.
func (v *viewer) syncSpecimens() {
	pair := v.studio.Pair()
	want := map[components.Role]bird.Params{
		components.RoleSeed:  v.studio.Current(),
		components.RoleLeft:  pair.Left,
		components.RoleRight: pair.Right,
	}

	query := v.birds.Query()
	for query.Next() {
		spec, _, _, _ := query.Get()
		p := want[spec.Role]
		if spec.Params == p && spec.Description != "" {
			continue
		}
		spec.Params = p
		if spec.Role != components.RoleSeed {
			spec.Description = v.studio.Describe(p)
		} else {
			spec.Description = "bird of origin"
		}
	}
}

// rebuildModels rebuilds meshes whose parameters changed.
func (v *viewer) rebuildModels() {
	builder := v.studio.Builder()
	query := v.birds.Query()
	for query.Next() {
		spec, model, _, _ := query.Get()
		if !model.Stale(spec.Params) {
			continue
		}
		v.perf.StartPhase(telemetry.PhaseBuild)
		model.Set(spec.Params, builder.Build(spec.Params))
	}

	if seed := v.modelMap.Get(v.entities[components.RoleSeed]); !v.framed && seed.Valid {
		v.orbit.Frame(seed.Bounds)
		v.framed = true
	}
}

func (v *viewer) update() {
	v.perf.RecordFrame()
	v.perf.Start()
	dt := rl.GetFrameTime()

	v.handleInput()

	v.perf.StartPhase(telemetry.PhaseBreed)
	v.syncSpecimens()
	v.rebuildModels()

	query := v.birds.Query()
	for query.Next() {
		_, _, _, spin := query.Get()
		spin.Advance(dt)
	}
	v.perf.End()
}

func (v *viewer) handleInput() {
	mouse := rl.GetMousePosition()
	wheel := rl.GetMouseWheelMove()

	switch {
	case v.panel.Contains(mouse.X, mouse.Y):
		if wheel != 0 {
			v.panel.Scroll(wheel)
		}
	case v.sceneView.Contains(mouse.X, mouse.Y):
		if wheel != 0 {
			v.orbit.ZoomBy(1 - float64(wheel)*0.1)
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			v.dragging = true
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.dragging = false
	}
	if v.dragging {
		d := rl.GetMouseDelta()
		v.orbit.Rotate(-float64(d.X)*0.01, float64(d.Y)*0.01)
	}

	switch {
	case rl.IsKeyPressed(rl.KeyC):
		v.copySeed()
	case rl.IsKeyPressed(rl.KeyV):
		v.pasteSeed()
	case rl.IsKeyPressed(rl.KeyS):
		v.saveSTL()
	case rl.IsKeyPressed(rl.KeyR):
		v.act("randomize", v.studio.Randomize)
	case rl.IsKeyPressed(rl.KeyG):
		v.act("good bird", v.studio.Good)
	case rl.IsKeyPressed(rl.KeyB):
		v.act("breed", v.studio.Rebreed)
	case rl.IsKeyPressed(rl.KeyF):
		v.framed = false
	case rl.IsKeyPressed(rl.KeyLeft):
		v.choose(genetics.Left)
	case rl.IsKeyPressed(rl.KeyRight):
		v.choose(genetics.Right)
	}
}

// act runs a session action and reports failures as toasts.
func (v *viewer) act(name string, fn func() error) {
	if err := fn(); err != nil {
		slog.Error("action failed", "action", name, "error", err)
		v.studio.Toasts().Add(name + " failed")
	}
}

func (v *viewer) copySeed() {
	rl.SetClipboardText(v.studio.Copy())
}

func (v *viewer) pasteSeed() {
	// Paste reports its own outcome as a toast
	_ = v.studio.Paste(rl.GetClipboardText())
}

func (v *viewer) saveSTL() {
	if _, err := v.studio.SaveSTL(""); err != nil {
		slog.Error("failed to save stl", "error", err)
	}
}

func (v *viewer) choose(side genetics.Side) {
	record, err := v.studio.Choose(side)
	if err != nil {
		slog.Error("failed to choose offspring", "side", side.String(), "error", err)
		v.studio.Toasts().Add("couldn't keep that one")
		return
	}
	slog.Info("generation", "record", record)
	v.studio.Toasts().Add(fmt.Sprintf("kept the %s bird: %s", side, record.Description))
}

func (v *viewer) draw() {
	cfg := v.studio.Config()
	theme := v.ui.Theme

	// Offscreen previews first; texture mode cannot nest inside drawing
	query := v.birds.Query()
	for query.Next() {
		spec, model, _, spin := query.Get()
		if p, ok := v.previews[spec.Role]; ok {
			p.Render(v.meshes, model, spin.Angle, theme.PanelBg)
		}
	}

	rl.BeginDrawing()
	rl.ClearBackground(theme.Background)

	seed := v.modelMap.Get(v.entities[components.RoleSeed])
	rl.BeginMode3D(renderer.Camera3D(v.orbit))
	v.meshes.Draw(seed, 0)
	rl.EndMode3D()

	// Seed bird overlay
	x := int32(v.sceneView.X) + theme.Padding
	bottom := int32(v.sceneView.Height) - 3*theme.LineHeight - theme.Padding
	width := int32(v.sceneView.Width) - 2*theme.Padding
	v.ui.DrawWrapped(x, bottom, width, v.studio.Seed(), theme.FontSize, theme.ValueColor)
	stats := v.perf.Stats()
	v.ui.DrawLabel(x, bottom+2*theme.LineHeight, fmt.Sprintf("generation %d | %d triangles | %.0f fps",
		v.studio.Generation(), seed.TriangleCount(), stats.FPS))

	v.drawActions()
	v.drawPreviews()

	// Sliders edit the seed bird in place; offspring follow on breed
	p := v.studio.Current()
	for _, f := range v.panel.Draw(&p) {
		v.studio.SetField(f, p.Get(f))
	}

	v.ui.DrawToasts(x, theme.Padding+buttonHeight+theme.Padding, int32(cfg.Viewer.Width)/3, v.studio.Toasts())

	rl.EndDrawing()
}

func (v *viewer) drawActions() {
	x := v.sceneView.X + float32(v.ui.Theme.Padding)
	y := float32(v.ui.Theme.Padding)
	actions := []struct {
		label string
		run   func()
	}{
		{"copy", v.copySeed},
		{"paste", v.pasteSeed},
		{"save stl", v.saveSTL},
		{"randomize", func() { v.act("randomize", v.studio.Randomize) }},
		{"good bird", func() { v.act("good bird", v.studio.Good) }},
		{"breed", func() { v.act("breed", v.studio.Rebreed) }},
	}
	for _, a := range actions {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonWidth, Height: buttonHeight}, a.label) {
			a.run()
		}
		x += buttonWidth + 6
	}
}

func (v *viewer) drawPreviews() {
	theme := v.ui.Theme
	query := v.birds.Query()
	for query.Next() {
		spec, _, vp, _ := query.Get()
		p, ok := v.previews[spec.Role]
		if !ok {
			continue
		}
		p.Draw(vp.X, vp.Y)
		rl.DrawRectangleLines(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height), theme.PanelBorder)

		y := int32(vp.Y + vp.Height + 4)
		v.ui.DrawWrapped(int32(vp.X), y, int32(vp.Width), spec.Description, theme.FontSize, theme.ValueColor)

		side := genetics.Left
		if spec.Role == components.RoleRight {
			side = genetics.Right
		}
		bounds := rl.Rectangle{X: vp.X, Y: vp.Y - buttonHeight - 4, Width: vp.Width, Height: buttonHeight}
		if gui.Button(bounds, "keep "+side.String()) {
			v.choose(side)
		}
	}
}

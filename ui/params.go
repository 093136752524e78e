package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/coolbirds/bird"
)

// ParamPanel renders one slider per bird field, grouped by section.
type ParamPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	scroll   int32
}

// NewParamPanel creates a panel at (x, y) with the given size.
func NewParamPanel(x, y, width, height int32) *ParamPanel {
	return &ParamPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// Contains reports whether the screen point lies over the panel.
func (pp *ParamPanel) Contains(x, y float32) bool {
	return x >= float32(pp.x) && x < float32(pp.x+pp.width) &&
		y >= float32(pp.y) && y < float32(pp.y+pp.height)
}

// Scroll moves the panel content by wheel notches.
func (pp *ParamPanel) Scroll(wheel float32) {
	pp.scroll += int32(wheel * 24)
	if pp.scroll > 0 {
		pp.scroll = 0
	}
	if limit := pp.height - pp.contentHeight(); pp.scroll < limit {
		pp.scroll = min(limit, 0)
	}
}

func (pp *ParamPanel) contentHeight() int32 {
	t := pp.renderer.Theme
	rows := int32(len(bird.Fields))
	return int32(len(bird.Sections))*(t.HeaderSize+4) + rows*(t.LineHeight+t.SliderHeight+4) + 2*t.Padding
}

// Draw renders the sliders for p and writes slider changes back into it.
// It returns the fields that changed this frame.
func (pp *ParamPanel) Draw(p *bird.Params) []bird.Field {
	r := pp.renderer
	t := r.Theme
	r.DrawPanel(pp.x, pp.y, pp.width, pp.height)

	rl.BeginScissorMode(pp.x, pp.y, pp.width, pp.height)
	defer rl.EndScissorMode()

	var changed []bird.Field
	x := pp.x + t.Padding
	y := pp.y + t.Padding + pp.scroll
	sliderWidth := pp.width - 2*t.Padding - t.ValueWidth

	for _, section := range bird.Sections {
		y = r.DrawSectionHeader(x, y, strings.ToUpper(string(section)))
		for _, spec := range bird.SectionFields(section) {
			r.DrawLabel(x, y, spec.Label)
			y += t.LineHeight

			v := spec.Get(p)
			bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(sliderWidth), Height: float32(t.SliderHeight)}
			// Out-of-range values stay put until the slider is dragged
			nv := gui.SliderBar(bounds, "", "", spec.Clamp(v), spec.Min, spec.Max)
			if nv != spec.Clamp(v) {
				spec.Set(p, nv)
				changed = append(changed, spec.Field)
			}
			rl.DrawText(fmt.Sprintf("%.0f", spec.Get(p)), x+sliderWidth+6, y, t.FontSize, t.ValueColor)
			y += t.SliderHeight + 4
		}
	}
	return changed
}

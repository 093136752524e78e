// Package ui draws the viewer's panels, sliders and toasts with raylib and raygui.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background    rl.Color
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	ToastColor    rl.Color
	HeadColor     rl.Color
	BodyColor     rl.Color
	Padding       int32
	LineHeight    int32
	SliderHeight  int32
	ValueWidth    int32
	FontSize      int32
	HeaderSize    int32
	ToastSize     int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:    rl.Color{R: 120, G: 176, B: 122, A: 255},
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Color{R: 89, G: 191, B: 89, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		ToastColor:    rl.Color{R: 230, G: 230, B: 230, A: 255},
		HeadColor:     rl.Color{R: 235, G: 200, B: 90, A: 255},
		BodyColor:     rl.Color{R: 90, G: 150, B: 220, A: 255},
		Padding:       10,
		LineHeight:    16,
		SliderHeight:  14,
		ValueWidth:    44,
		FontSize:      12,
		HeaderSize:    16,
		ToastSize:     16,
	}
}

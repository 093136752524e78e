package ui

import (
	"github.com/pthm-cable/coolbirds/studio"
)

// DrawToasts draws active toasts stacked from (x, y), fading as they age.
func (r *Renderer) DrawToasts(x, y, width int32, toasts *studio.Toasts) {
	for _, toast := range toasts.Active() {
		c := r.Theme.ToastColor
		c.A = uint8(float32(c.A) * (1 - toasts.Fade(toast)))
		y = r.DrawWrapped(x, y, width, toast.Text, r.Theme.ToastSize, c) + 6
	}
}

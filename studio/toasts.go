package studio

import (
	"log/slog"
	"time"
)

// Toast is a short message shown on screen until it expires.
type Toast struct {
	Text    string
	Created time.Time
}

// Toasts keeps recent messages for the viewer. Every message is also logged.
type Toasts struct {
	lifetime time.Duration
	items    []Toast
	now      func() time.Time
}

// NewToasts creates a toast list whose messages live for lifetime.
func NewToasts(lifetime time.Duration) *Toasts {
	if lifetime <= 0 {
		lifetime = 5 * time.Second
	}
	return &Toasts{lifetime: lifetime, now: time.Now}
}

// Add records a message.
func (t *Toasts) Add(text string) {
	slog.Info("toast", "text", text)
	t.items = append(t.items, Toast{Text: text, Created: t.now()})
}

// Active drops expired messages and returns the rest, oldest first.
func (t *Toasts) Active() []Toast {
	now := t.now()
	kept := t.items[:0]
	for _, item := range t.items {
		if now.Sub(item.Created) < t.lifetime {
			kept = append(kept, item)
		}
	}
	t.items = kept
	return kept
}

// Fade returns how far a toast is through its life, in [0,1].
func (t *Toasts) Fade(item Toast) float32 {
	f := float32(t.now().Sub(item.Created)) / float32(t.lifetime)
	return min(max(f, 0), 1)
}

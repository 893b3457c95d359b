package orion

import (
	"log/slog"

	"github.com/oliverbestmann/vitrine/glimpse"
	"github.com/oliverbestmann/vitrine/orbit"
	"github.com/oliverbestmann/vitrine/viewport"
)

// windowPointer reads the orbit pointer from the window input.
type windowPointer struct {
	win glimpse.Window
}

func (p windowPointer) Pointer() orbit.Pointer {
	mouse := p.win.Input().Mouse
	_, height := p.win.GetSize()

	return orbit.Pointer{
		Dragging: mouse.Pressed[glimpse.MouseButtonLeft],
		DeltaX:   mouse.DeltaX,
		DeltaY:   mouse.DeltaY,
		Scroll:   mouse.ScrollY,
		Height:   float32(height),
	}
}

// keyControls handles the keyboard shortcuts of the viewer before
// running the orbit controls.
type keyControls struct {
	win    glimpse.Window
	orbit  *orbit.Controls
	driver *viewport.Driver

	// spin while paused
	paused *viewport.Spin
}

func (k *keyControls) Update() bool {
	keys := k.win.Input().Keys

	if keys.JustPressed[glimpse.KeyQ] {
		k.win.Close()
	}

	if keys.JustPressed[glimpse.KeyR] {
		slog.Info("Reset camera")
		k.orbit.Reset()
	}

	if keys.JustPressed[glimpse.KeySpace] {
		k.toggleSpin()
	}

	return k.orbit.Update()
}

func (k *keyControls) toggleSpin() {
	if k.paused != nil {
		k.driver.Transform.Spin = *k.paused
		k.paused = nil
		return
	}

	spin := k.driver.Transform.Spin
	k.paused = &spin
	k.driver.Transform.Spin = viewport.Spin{}
}

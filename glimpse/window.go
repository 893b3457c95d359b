// Package glimpse provides the native window or browser canvas a
// viewport renders into, together with its event loop and input.
package glimpse

import (
	"github.com/oliverbestmann/vitrine/tick"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type WindowOptions struct {
	Width, Height int
	Title         string

	// id of the element the canvas is placed into, browser only
	Container string

	// writes a cpu profile into the working directory, desktop only
	Profile bool
}

type Window interface {
	// GetSize returns the size of the drawable surface in pixels.
	GetSize() (uint32, uint32)

	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Host schedules callbacks onto the thread running Run.
	Host() *tick.Loop

	// Input returns the input accumulated since the last frame.
	Input() *InputState

	// OnResize registers fn to run on the loop thread whenever the
	// surface size changes.
	OnResize(fn func())

	// Run pumps the event loop until the window is closed.
	Run() error

	// Close makes Run return after the current iteration.
	Close()

	Terminate()
}

// pump runs one iteration of the loop. It returns true if a frame was
// run, in which case per frame input is reset.
func pump(loop *tick.Loop, input *InputState) bool {
	loop.RunPending()

	if loop.RunFrame() == 0 {
		return false
	}

	input.nextTick()
	return true
}

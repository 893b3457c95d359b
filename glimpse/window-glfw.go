//go:build !js

package glimpse

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/vitrine/tick"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
	"github.com/pkg/profile"
)

func init() {
	// glfw must only be called from the main thread
	runtime.LockOSThread()
}

type glfwWindow struct {
	win   *glfw.Window
	prof  interface{ Stop() }
	input InputState
	loop  *tick.Loop

	resize []func()
}

func NewWindow(opts WindowOptions) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	slog.Info("Window created",
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height),
	)

	w := &glfwWindow{
		win:  window,
		loop: tick.NewLoop(tick.SystemClock),
	}

	if opts.Profile {
		w.prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	}

	configureInput(window, &w.input)

	window.SetFramebufferSizeCallback(func(_win *glfw.Window, width, height int) {
		for _, fn := range w.resize {
			fn()
		}
	})

	return w, nil
}

func (g *glfwWindow) GetSize() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) Host() *tick.Loop {
	return g.loop
}

func (g *glfwWindow) Input() *InputState {
	return &g.input
}

func (g *glfwWindow) OnResize(fn func()) {
	g.resize = append(g.resize, fn)
}

func (g *glfwWindow) Close() {
	g.win.SetShouldClose(true)
}

func (g *glfwWindow) Terminate() {
	if g.prof != nil {
		g.prof.Stop()
	}

	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) Run() error {
	for !g.win.ShouldClose() {
		if g.loop.HasFrameRequests() {
			glfw.PollEvents()
		} else {
			// only timers are pending, do not spin
			glfw.WaitEventsTimeout(0.005)
		}

		if g.input.Keys.JustPressed[KeyEscape] {
			g.win.SetShouldClose(true)
		}

		if !pump(g.loop, &g.input) {
			g.input.Keys.nextTick()
		}
	}

	return nil
}

func configureInput(window *glfw.Window, input *InputState) {
	window.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey)
		if !ok {
			return
		}

		switch action {
		case glfw.Press:
			input.Keys.press(key)

		case glfw.Release:
			input.Keys.release(key)
		}
	})

	window.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		button := MouseButton(btn)

		switch action {
		case glfw.Press:
			input.Mouse.press(button)
		case glfw.Release:
			input.Mouse.release(button)
		}
	})

	window.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		input.Mouse.position(float32(xpos), float32(ypos))
	})

	window.SetScrollCallback(func(_win *glfw.Window, xoff float64, yoff float64) {
		input.Mouse.scroll(float32(yoff))
	})
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape: KeyEscape,
	glfw.KeySpace:  KeySpace,
	glfw.KeyR:      KeyR,
	glfw.KeyQ:      KeyQ,
}

func keyOf(glfwKey glfw.Key) (key Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Warn(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)
	}

	return
}

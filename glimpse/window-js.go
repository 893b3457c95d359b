//go:build js

package glimpse

import (
	"log/slog"
	"math"
	"syscall/js"

	"github.com/oliverbestmann/vitrine/tick"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// maxPixelRatio caps the device pixel ratio to keep fill rate
// reasonable on high density displays.
const maxPixelRatio = 2

type jsWindow struct {
	canvas    js.Value
	container js.Value

	input InputState
	loop  *tick.Loop

	resize []func()
	closed bool

	funcs []js.Func
}

func NewWindow(opts WindowOptions) (Window, error) {
	document := js.Global().Get("document")
	canvas := document.Call("createElement", "canvas")

	container := js.Null()
	if opts.Container != "" {
		container = document.Call("getElementById", opts.Container)
	}

	if container.IsNull() || container.IsUndefined() {
		slog.Warn("Canvas container not found, using body", slog.String("id", opts.Container))
		container = js.Null()
		document.Get("body").Call("appendChild", canvas)
		canvas.Set("style", "width:100vw; height:100vh; display:block")
	} else {
		container.Call("appendChild", canvas)
		canvas.Set("style", "width:100%; height:100%; display:block")
	}

	if opts.Title != "" {
		document.Set("title", opts.Title)
	}

	clock := newJSClock()

	win := &jsWindow{
		canvas:    canvas,
		container: container,
		loop:      tick.NewLoop(clock),
	}

	// timer callbacks only post into the loop, run them right away
	clock.afterFire = func() { win.loop.RunPending() }

	win.resizeCanvas()
	win.configureInput()

	win.listen(js.Global(), "resize", func(js.Value) {
		win.resizeCanvas()

		win.loop.Post(func() {
			for _, fn := range win.resize {
				fn()
			}
		})
	})

	return win, nil
}

func (g *jsWindow) listen(target js.Value, event string, handler func(event js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		handler(args[0])
		return nil
	})

	g.funcs = append(g.funcs, fn)
	target.Call("addEventListener", event, fn)
}

func (g *jsWindow) configureInput() {
	g.listen(g.canvas, "pointerdown", func(event js.Value) {
		g.input.Mouse.press(MouseButton(event.Get("button").Int()))
	})

	g.listen(js.Global(), "pointerup", func(event js.Value) {
		g.input.Mouse.release(MouseButton(event.Get("button").Int()))
	})

	g.listen(js.Global(), "pointermove", func(event js.Value) {
		g.input.Mouse.position(
			float32(event.Get("clientX").Float()),
			float32(event.Get("clientY").Float()),
		)
	})

	g.listen(g.canvas, "wheel", func(event js.Value) {
		// browsers report pixels, positive when scrolling down
		g.input.Mouse.scroll(float32(-event.Get("deltaY").Float() / 100))
	})

	g.listen(js.Global(), "keydown", func(event js.Value) {
		if event.Get("repeat").Bool() {
			return
		}

		if key, ok := jsToKey[event.Get("code").String()]; ok {
			g.input.Keys.press(key)
		}
	})

	g.listen(js.Global(), "keyup", func(event js.Value) {
		if key, ok := jsToKey[event.Get("code").String()]; ok {
			g.input.Keys.release(key)
		}
	})
}

var jsToKey = map[string]Key{
	"Escape": KeyEscape,
	"Space":  KeySpace,
	"KeyR":   KeyR,
	"KeyQ":   KeyQ,
}

// cssSize returns the size of the canvas container in css pixels,
// falling back to the visual viewport.
func (g *jsWindow) cssSize() (float64, float64) {
	if !g.container.IsNull() {
		width := g.container.Get("clientWidth").Float()
		height := g.container.Get("clientHeight").Float()
		if width > 0 && height > 0 {
			return width, height
		}
	}

	vv := js.Global().Get("visualViewport")
	return vv.Get("width").Float(), vv.Get("height").Float()
}

func pixelRatio() float64 {
	return math.Min(js.Global().Get("devicePixelRatio").Float(), maxPixelRatio)
}

func (g *jsWindow) GetSize() (uint32, uint32) {
	width, height := g.cssSize()
	ratio := pixelRatio()
	return uint32(width * ratio), uint32(height * ratio)
}

func (g *jsWindow) resizeCanvas() {
	width, height := g.GetSize()
	g.canvas.Set("width", width)
	g.canvas.Set("height", height)
}

func (g *jsWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{Canvas: g.canvas}
}

func (g *jsWindow) Host() *tick.Loop {
	return g.loop
}

func (g *jsWindow) Input() *InputState {
	return &g.input
}

func (g *jsWindow) OnResize(fn func()) {
	g.resize = append(g.resize, fn)
}

func (g *jsWindow) Close() {
	g.closed = true
}

func (g *jsWindow) Terminate() {
	for _, fn := range g.funcs {
		fn.Release()
	}

	g.funcs = nil
	g.canvas.Call("remove")
}

func (g *jsWindow) Run() error {
	helper := js.Global().Call("eval", `({
        async run(runOnce) {
            while (runOnce()) {
                await new Promise(resolve => requestAnimationFrame(resolve))
            }
        }
	})`)

	done := make(chan struct{})

	frame := js.FuncOf(func(this js.Value, args []js.Value) any {
		if g.closed {
			close(done)
			return false
		}

		pump(g.loop, &g.input)
		return true
	})

	defer frame.Release()

	helper.Call("run", frame)

	<-done
	return nil
}

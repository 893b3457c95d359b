package orion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/oliverbestmann/vitrine/glimpse"
	"github.com/oliverbestmann/vitrine/menu"
	"github.com/oliverbestmann/vitrine/orbit"
	"github.com/oliverbestmann/vitrine/pulse"
	"github.com/oliverbestmann/vitrine/tick"
	"github.com/oliverbestmann/vitrine/viewer"
	"github.com/oliverbestmann/vitrine/viewport"
)

type RunViewerOptions struct {
	// file path or http(s) url of a glTF or GLB model. A procedural
	// mesh is shown if empty.
	Model string

	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// id of the element hosting the canvas, browser only
	Container string

	// labels of the overlay menu, desktop only
	Menu []string

	// css selector of the menu items, browser only
	MenuSelector string

	// nil spins with viewport.DefaultSpin
	Spin *viewport.Spin

	// seed of the glitch scheduler, random if zero
	Seed uint64

	Profile bool

	HTTPClient *http.Client
}

func RunViewer(opts RunViewerOptions) error {
	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1000
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 600
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Vitrine"
	}

	if opts.Container == "" {
		opts.Container = "canvas-container"
	}

	if len(opts.Menu) == 0 {
		opts.Menu = menu.DefaultLabels
	}

	if opts.MenuSelector == "" {
		opts.MenuSelector = menu.Selector
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	// create a new window (or canvas)
	win, err := glimpse.NewWindow(glimpse.WindowOptions{
		Width:     opts.WindowWidth,
		Height:    opts.WindowHeight,
		Title:     opts.WindowTitle,
		Container: opts.Container,
		Profile:   opts.Profile,
	})

	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	// initialize the webgpu device
	ctx, err := pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer ctx.Release()

	// no msaa to keep mobile devices fast
	view := pulse.NewView(ctx, pulse.ViewOptions{Depth: true})

	highlighter, overlay := newMenu(opts)

	renderer, err := NewRenderer(view, RendererOptions{Overlay: overlay})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	width, height := win.GetSize()
	camera := viewer.NewCamera(aspectOf(width, height), orbit.DefaultOptions.Target)

	controls := &keyControls{
		win:   win,
		orbit: orbit.New(camera, windowPointer{win: win}, orbit.DefaultOptions),
	}

	vctx := &viewport.Context{
		Scene:     viewer.NewScene(),
		Camera:    camera,
		Renderer:  renderer,
		Controls:  controls,
		Clock:     tick.NewFrameClock(tick.SystemClock),
		Container: windowContainer{win: win},
	}

	defer vctx.Release()

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}

	host := win.Host()

	session, err := viewer.Start(host, vctx, highlighter, viewer.Options{Spin: opts.Spin, Rand: rng})
	if err != nil {
		return err
	}

	defer session.Stop()

	controls.driver = session.Driver
	win.OnResize(session.Resize.Resize)

	loadCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.Model == "" {
		slog.Info("No model configured, show procedural mesh")
		session.ShowMesh(viewer.FallbackMesh())
	} else {
		session.Loader(opts.HTTPClient).LoadAsync(loadCtx, host, opts.Model)
	}

	// a failed frame chain closes the window, the deferred session.Stop
	// then ends the glitch chain as well
	go func() {
		<-session.Frames().Done()
		host.Post(win.Close)
	}()

	if err := win.Run(); err != nil {
		return fmt.Errorf("run window: %w", err)
	}

	if err := session.Frames().Err(); err != nil && !errors.Is(err, tick.ErrStopped) {
		return fmt.Errorf("frame loop: %w", err)
	}

	return nil
}

type windowContainer struct {
	win glimpse.Window
}

func (c windowContainer) Size() (uint32, uint32) {
	return c.win.GetSize()
}

func aspectOf(width, height uint32) float32 {
	if width == 0 || height == 0 {
		return 1
	}

	return float32(width) / float32(height)
}

package orion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/vitrine/menu"
	"github.com/oliverbestmann/vitrine/pulse"
	"github.com/oliverbestmann/vitrine/pulse/commands"
	"github.com/oliverbestmann/vitrine/scene"
	"github.com/oliverbestmann/vitrine/viewport"
)

var _ viewport.Renderer = (*Renderer)(nil)

// Renderer draws the scene and the optional menu overlay to the
// surface of a view.
type Renderer struct {
	view   *pulse.View
	mesh3d *commands.Mesh3dCommand
	quads  *commands.OverlayCommand

	overlay *menu.Overlay
	layout  menu.LayoutOptions

	stats FrameTimes

	// error of the last surface configuration, returned by the next Render
	err error

	scratch []commands.Quad
}

type RendererOptions struct {
	// menu drawn on top of the scene, may be nil
	Overlay *menu.Overlay
	Layout  menu.LayoutOptions
}

func NewRenderer(view *pulse.View, opts RendererOptions) (r *Renderer, err error) {
	if opts.Layout == (menu.LayoutOptions{}) {
		opts.Layout = menu.DefaultLayout
	}

	r = &Renderer{
		view:    view,
		overlay: opts.Overlay,
		layout:  opts.Layout,
	}

	defer func() {
		if err != nil {
			r.Release()
			r = nil
		}
	}()

	r.mesh3d, err = commands.NewMesh3dCommand(view.Context)
	if err != nil {
		return r, fmt.Errorf("create mesh3d command: %w", err)
	}

	r.quads, err = commands.NewOverlayCommand(view.Context)
	if err != nil {
		return r, fmt.Errorf("create overlay command: %w", err)
	}

	return r, nil
}

func (r *Renderer) SetSize(width, height uint32) {
	slog.Debug("Configure surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	if err := r.view.Configure(width, height); err != nil {
		slog.Error("Failed to configure surface", slog.Any("err", err))
		r.err = fmt.Errorf("configure surface %dx%d: %w", width, height, err)
		return
	}

	r.err = nil
}

func (r *Renderer) Render(scn *scene.Scene, camera *scene.PerspectiveCamera) error {
	if r.err != nil {
		return r.err
	}

	if !r.view.Configured() {
		// nothing to draw into before the first resize
		return nil
	}

	// get the surface texture (the actual screen)
	surface, err := r.view.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}

	defer func() {
		if surface != nil {
			surface.Release()
		}
	}()

	surfaceView, err := surface.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}

	defer surfaceView.Release()

	target := r.view.SurfaceAsTexture(surface, surfaceView)

	err = r.mesh3d.DrawScene(target, r.view.DepthTexture(), commands.DrawSceneOptions{
		Scene:      scn,
		Camera:     camera,
		EncodeSRGB: r.view.EncodeSRGB(),
	})

	if err != nil {
		return fmt.Errorf("draw scene: %w", err)
	}

	if err := r.drawOverlay(target); err != nil {
		return fmt.Errorf("draw overlay: %w", err)
	}

	// present the rendered image
	r.view.Surface.Present()

	// we do not need to release the screen if present was successful
	surface = nil

	if r.stats.Tick(time.Now()) {
		r.stats.Log()
		r.mesh3d.Forget(scn)
	}

	return nil
}

func (r *Renderer) drawOverlay(target *pulse.Texture) error {
	if r.overlay == nil {
		return nil
	}

	bars := menu.Layout(r.overlay.Items(), float32(target.Height()), r.layout)
	r.scratch = overlayQuads(bars, r.view.EncodeSRGB(), r.scratch[:0])

	return r.quads.DrawQuads(target, BlendStateOverlay, r.scratch)
}

func (r *Renderer) Release() {
	if r.mesh3d != nil {
		r.mesh3d.Release()
		r.mesh3d = nil
	}

	if r.quads != nil {
		r.quads.Release()
		r.quads = nil
	}

	r.view.Release()
}

package viewport

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/vitrine/scene"
	"github.com/oliverbestmann/vitrine/tick"
)

// Driver is the per frame scene update. All methods must be called on
// the host thread.
type Driver struct {
	ctx *Context

	Transform ModelTransform
	Animation AnimationState

	model  *scene.Node
	frames uint64
}

func NewDriver(ctx *Context, spin Spin) *Driver {
	return &Driver{
		ctx:       ctx,
		Transform: ModelTransform{Spin: spin},
	}
}

// SetModel makes model the node to rotate and adds it to the scene.
// A nil playback means the model has no clips.
func (d *Driver) SetModel(model *scene.Node, playback Playback) {
	if d.model != nil {
		d.ctx.Scene.Remove(d.model)
	}

	d.model = model
	d.Transform.X, d.Transform.Y = 0, 0
	d.Animation.Set(playback)

	if model != nil && !d.ctx.Scene.Contains(model) {
		d.ctx.Scene.Add(model)
	}
}

func (d *Driver) HasModel() bool {
	return d.model != nil
}

// Frames returns the number of frames rendered so far.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Frame performs one update and render.
func (d *Driver) Frame() error {
	delta := d.ctx.Clock.Delta()

	d.Animation.Update(delta)

	if d.model != nil {
		d.Transform.Advance()
		d.model.Rotation = d.Transform.Rotation()
	}

	if d.ctx.Controls != nil {
		d.ctx.Controls.Update()
	}

	if err := d.ctx.Renderer.Render(d.ctx.Scene, d.ctx.Camera); err != nil {
		return fmt.Errorf("render frame %d: %w", d.frames, err)
	}

	d.frames += 1

	return nil
}

// Start runs Frame on every display refresh until the returned task
// is stopped or a frame fails.
func (d *Driver) Start(host tick.Host) *tick.Task {
	slog.Info("Start frame loop")
	return tick.EveryFrame(host, "frame-loop", d.Frame)
}

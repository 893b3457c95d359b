package viewport

import "log/slog"

// ResizeReactor keeps camera projection and render surface in sync
// with the container size.
type ResizeReactor struct {
	ctx *Context
}

func NewResizeReactor(ctx *Context) *ResizeReactor {
	return &ResizeReactor{ctx: ctx}
}

// Resize reads the current container size and applies it. A zero sized
// container keeps the previous projection.
func (r *ResizeReactor) Resize() {
	width, height := r.ctx.Container.Size()

	if width == 0 || height == 0 {
		slog.Debug("Ignore resize to empty container",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
		)

		return
	}

	slog.Debug("Resize viewport",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	r.ctx.Camera.SetAspect(float32(width) / float32(height))
	r.ctx.Camera.UpdateProjectionMatrix()
	r.ctx.Renderer.SetSize(width, height)
}

// Package viewport coordinates the per frame update of a single scene:
// clock, clip playback, model rotation, controls and rendering, plus
// the reaction to container size changes.
package viewport

import (
	"errors"

	"github.com/oliverbestmann/vitrine/scene"
	"github.com/oliverbestmann/vitrine/tick"
)

// Renderer draws a scene as seen by a camera into the viewport surface.
type Renderer interface {
	Render(scn *scene.Scene, camera *scene.PerspectiveCamera) error
	SetSize(width, height uint32)
}

// Controls integrates user input into the camera once per frame.
type Controls interface {
	Update() bool
}

// Container reports the current size of the element hosting the viewport.
type Container interface {
	Size() (width, height uint32)
}

// Context owns everything a viewport needs. It is created once per
// viewport and released with it.
type Context struct {
	Scene     *scene.Scene
	Camera    *scene.PerspectiveCamera
	Renderer  Renderer
	Controls  Controls
	Clock     *tick.FrameClock
	Container Container
}

var ErrIncompleteContext = errors.New("incomplete viewport context")

func (c *Context) Validate() error {
	switch {
	case c.Scene == nil:
		return errors.Join(ErrIncompleteContext, errors.New("missing scene"))
	case c.Camera == nil:
		return errors.Join(ErrIncompleteContext, errors.New("missing camera"))
	case c.Renderer == nil:
		return errors.Join(ErrIncompleteContext, errors.New("missing renderer"))
	case c.Container == nil:
		return errors.Join(ErrIncompleteContext, errors.New("missing container"))
	}

	return nil
}

type releaser interface{ Release() }

// Release frees the collaborators that hold resources.
func (c *Context) Release() {
	if r, ok := c.Renderer.(releaser); ok {
		r.Release()
	}
}

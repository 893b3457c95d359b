//go:build !js

package orion

import (
	"github.com/oliverbestmann/vitrine/glitch"
	"github.com/oliverbestmann/vitrine/menu"
)

// newMenu returns the menu glitched by the scheduler. On desktop it is
// drawn by the renderer on top of the scene.
func newMenu(opts RunViewerOptions) (glitch.Highlighter, *menu.Overlay) {
	overlay := menu.NewOverlay(opts.Menu...)
	return overlay, overlay
}

//go:build js

package orion

import (
	"github.com/oliverbestmann/vitrine/glitch"
	"github.com/oliverbestmann/vitrine/menu"
)

// newMenu returns the menu glitched by the scheduler. In the browser
// the page owns the menu, nothing is drawn by the renderer.
func newMenu(opts RunViewerOptions) (glitch.Highlighter, *menu.Overlay) {
	return menu.QueryDOM(opts.MenuSelector), nil
}

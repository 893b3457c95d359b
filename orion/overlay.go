package orion

import (
	"github.com/oliverbestmann/vitrine/glitch"
	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/menu"
	"github.com/oliverbestmann/vitrine/pulse"
	"github.com/oliverbestmann/vitrine/pulse/commands"
)

const (
	// alpha at the left edge of an active bar, fading to zero
	glowAlpha = 0.6

	// fraction of the bar width covered by the glow
	glowWidth = 0.7

	// alpha of an inactive bar
	idleAlpha = 0.08
)

// overlayQuads turns bars into quads. An active bar gets a horizontal
// gradient in its glitch color, inactive bars a faint white.
func overlayQuads(bars []menu.Bar, encodeSRGB bool, quads []commands.Quad) []commands.Quad {
	for _, bar := range bars {
		if !bar.Active {
			rect := pulse.RectangleFromXYWH(bar.X, bar.Y, bar.Width, bar.Height)
			quads = append(quads, commands.SolidQuad(rect, glm.Vec4f{1, 1, 1, idleAlpha}))
			continue
		}

		left := barColor(bar.Color, encodeSRGB)
		left[3] = glowAlpha

		right := left
		right[3] = 0

		quads = append(quads, commands.Quad{
			Rect:   pulse.RectangleFromXYWH(bar.X, bar.Y, bar.Width*glowWidth, bar.Height),
			Colors: [4]glm.Vec4f{left, right, right, left},
		})
	}

	return quads
}

// barColor converts the css color of a glitch into the color space of
// the render target.
func barColor(color glitch.Color, encodeSRGB bool) glm.Vec4f {
	if encodeSRGB {
		// the target stores the values as they are
		return glm.Vec4f{
			float32(color.R) / 255,
			float32(color.G) / 255,
			float32(color.B) / 255,
			1,
		}
	}

	return pulse.ColorSRGB8(color.R, color.G, color.B).ToVec()
}

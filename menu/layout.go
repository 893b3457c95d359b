package menu

import "github.com/oliverbestmann/vitrine/glitch"

// Bar is the on screen rectangle of one overlay item in pixels.
type Bar struct {
	X, Y, Width, Height float32

	Active bool
	Color  glitch.Color
}

// LayoutOptions describes the column of bars drawn by the overlay.
type LayoutOptions struct {
	// top left corner of the first bar
	MarginX, MarginY float32

	Width, Height float32
	Spacing       float32

	// physical pixels per logical pixel
	Scale float32
}

var DefaultLayout = LayoutOptions{
	MarginX: 32,
	MarginY: 32,
	Width:   240,
	Height:  36,
	Spacing: 8,
	Scale:   1,
}

// Layout places the items below each other. Bars that would not fit
// into a viewport of the given height are dropped.
func Layout(items []Item, viewportHeight float32, opts LayoutOptions) []Bar {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var bars []Bar
	for idx, item := range items {
		y := (opts.MarginY + float32(idx)*(opts.Height+opts.Spacing)) * scale
		height := opts.Height * scale

		if y+height > viewportHeight {
			break
		}

		bars = append(bars, Bar{
			X:      opts.MarginX * scale,
			Y:      y,
			Width:  opts.Width * scale,
			Height: height,
			Active: item.Active,
			Color:  item.Color,
		})
	}

	return bars
}

package glitch

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Color is the random tint of a highlighted menu item.
type Color struct {
	R, G, B uint8
}

const (
	channelMin  = 55
	channelSpan = 200

	MinDelay = 200 * time.Millisecond
	MaxDelay = 800 * time.Millisecond
)

// RandomColor draws every channel uniformly from [55, 254].
func RandomColor(rng *rand.Rand) Color {
	return Color{
		R: randomChannel(rng),
		G: randomChannel(rng),
		B: randomChannel(rng),
	}
}

func randomChannel(rng *rand.Rand) uint8 {
	return uint8(channelMin + int(rng.Float64()*channelSpan))
}

// NextDelay draws the time until the next firing uniformly from [200ms, 800ms).
func NextDelay(rng *rand.Rand) time.Duration {
	return MinDelay + time.Duration(rng.Float64()*float64(MaxDelay-MinDelay))
}

// Selection is the outcome of one firing.
type Selection struct {
	Index int
	Color Color
}

// Pick chooses the next active item uniformly among all n items and a
// fresh color for it. The prior active item may be chosen again. It
// returns false if there is nothing to choose from.
func Pick(rng *rand.Rand, n int, prior int) (Selection, bool) {
	if n <= 0 {
		return Selection{Index: -1}, false
	}

	return Selection{
		Index: rng.IntN(n),
		Color: RandomColor(rng),
	}, true
}

// Gradient renders the css background of an active item, fading the
// color from 60% opacity at the left edge to transparent at 70% width.
func (c Color) Gradient() string {
	return fmt.Sprintf(
		"linear-gradient(90deg, rgba(%d,%d,%d, 0.6) 0%%, rgba(%d,%d,%d, 0) 70%%)",
		c.R, c.G, c.B, c.R, c.G, c.B,
	)
}

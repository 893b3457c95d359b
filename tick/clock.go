package tick

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the source of time of loops and frame clocks. Tests use a
// clockwork.FakeClock.
type Clock = clockwork.Clock

type Timer = clockwork.Timer

var SystemClock Clock = clockwork.NewRealClock()

// FrameClock measures the time between two consecutive frames.
type FrameClock struct {
	clock Clock

	last    time.Time
	started bool
}

func NewFrameClock(clock Clock) *FrameClock {
	if clock == nil {
		clock = SystemClock
	}

	return &FrameClock{clock: clock}
}

// Delta returns the seconds elapsed since the previous call. The first
// call returns zero. A clock going backwards yields zero, never a
// negative delta.
func (c *FrameClock) Delta() float64 {
	now := c.clock.Now()

	if !c.started {
		c.started = true
		c.last = now
		return 0
	}

	dt := now.Sub(c.last)
	c.last = now

	if dt < 0 {
		return 0
	}

	return dt.Seconds()
}

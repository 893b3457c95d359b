package tick_test

import (
	"errors"
	"testing"
	"time"

	"github.com/oliverbestmann/vitrine/tick"
	"github.com/oliverbestmann/vitrine/tick/ticktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryFrameRunsOncePerFrame(t *testing.T) {
	host := ticktest.NewHost()

	var steps int
	task := tick.EveryFrame(host, "frames", func() error {
		steps += 1
		return nil
	})

	// nothing runs before the first display refresh
	require.Equal(t, 0, steps)
	require.Equal(t, 1, host.PendingFrames())

	for range 10 {
		host.Frame()
	}

	require.Equal(t, 10, steps)
	require.Equal(t, 1, host.PendingFrames())
	require.True(t, task.Running())
}

func TestEveryFrameStop(t *testing.T) {
	host := ticktest.NewHost()

	var steps int
	task := tick.EveryFrame(host, "frames", func() error {
		steps += 1
		return nil
	})

	host.Frame()
	task.Stop()

	require.Equal(t, 0, host.PendingFrames())
	require.Equal(t, 0, host.Frame())
	require.Equal(t, 1, steps)
	require.ErrorIs(t, task.Err(), tick.ErrStopped)

	select {
	case <-task.Done():
	default:
		t.Fatal("done channel not closed")
	}

	// stopping twice is fine
	task.Stop()
}

func TestStopFromInsideStepElidesReschedule(t *testing.T) {
	host := ticktest.NewHost()

	var task *tick.Task
	task = tick.EveryFrame(host, "frames", func() error {
		task.Stop()
		return nil
	})

	host.Frame()
	require.Equal(t, 0, host.PendingFrames())
}

func TestEveryFrameErrorEndsChain(t *testing.T) {
	host := ticktest.NewHost()
	errBoom := errors.New("boom")

	task := tick.EveryFrame(host, "frames", func() error {
		return errBoom
	})

	host.Frame()

	require.ErrorIs(t, task.Err(), errBoom)
	require.Equal(t, 0, host.PendingFrames())
}

func TestEveryFramePanicEndsChain(t *testing.T) {
	host := ticktest.NewHost()

	task := tick.EveryFrame(host, "frames", func() error {
		panic("renderer exploded")
	})

	require.NotPanics(t, func() { host.Frame() })
	require.ErrorContains(t, task.Err(), "renderer exploded")
	require.Equal(t, 0, host.PendingFrames())
}

func TestRepeatFiresImmediately(t *testing.T) {
	host := ticktest.NewHost()

	var fired int
	task := tick.Repeat(host, "timer", func() (time.Duration, error) {
		fired += 1
		return 250 * time.Millisecond, nil
	})

	require.Equal(t, 1, fired)
	require.Equal(t, 1, host.PendingTimers())

	delay, ok := host.NextTimer()
	require.True(t, ok)
	require.Equal(t, 250*time.Millisecond, delay)

	require.Equal(t, 0, host.Advance(249*time.Millisecond))
	require.Equal(t, 1, host.Advance(time.Millisecond))
	require.Equal(t, 2, fired)

	task.Stop()
	require.Equal(t, 0, host.PendingTimers())
	require.Equal(t, 0, host.Advance(time.Second))
}

func TestRepeatKeepsOneTimerPending(t *testing.T) {
	host := ticktest.NewHost()

	tick.Repeat(host, "timer", func() (time.Duration, error) {
		assert.Equal(t, 0, host.PendingTimers())
		return 10 * time.Millisecond, nil
	})

	for range 100 {
		require.True(t, host.FireNext())
		require.Equal(t, 1, host.PendingTimers())
	}
}

func TestFrameClock(t *testing.T) {
	clock := ticktest.NewClock()
	frameClock := tick.NewFrameClock(clock)

	require.Equal(t, 0.0, frameClock.Delta())

	clock.Advance(16 * time.Millisecond)
	require.InDelta(t, 0.016, frameClock.Delta(), 1e-9)

	// no time passed
	require.Equal(t, 0.0, frameClock.Delta())

	// clock going backwards never yields a negative delta
	clock.Advance(-time.Second)
	require.Equal(t, 0.0, frameClock.Delta())

	clock.Advance(500 * time.Millisecond)
	require.InDelta(t, 0.5, frameClock.Delta(), 1e-9)
}

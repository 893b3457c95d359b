package tick

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestLoopFramesRunOnNextFrame(t *testing.T) {
	loop := NewLoop(nil)

	var order []string

	loop.RequestFrame(func() {
		order = append(order, "a")

		// requested from inside a frame, runs on the next one
		loop.RequestFrame(func() {
			order = append(order, "c")
		})
	})

	loop.RequestFrame(func() {
		order = append(order, "b")
	})

	require.True(t, loop.HasFrameRequests())
	require.Equal(t, 2, loop.RunFrame())
	require.Equal(t, []string{"a", "b"}, order)

	require.Equal(t, 1, loop.RunFrame())
	require.Equal(t, []string{"a", "b", "c"}, order)
	require.False(t, loop.HasFrameRequests())
}

func TestLoopCancelFrame(t *testing.T) {
	loop := NewLoop(nil)

	var ran bool
	handle := loop.RequestFrame(func() { ran = true })
	handle.Cancel()

	require.False(t, loop.HasFrameRequests())
	require.Equal(t, 0, loop.RunFrame())
	require.False(t, ran)
}

func TestLoopTimerRunsOnLoopGoroutine(t *testing.T) {
	loop := NewLoop(nil)

	var ran bool
	loop.AfterFunc(5*time.Millisecond, func() { ran = true })

	// the timer only posts into the queue
	require.Eventually(t, func() bool {
		loop.Wait(10 * time.Millisecond)
		return loop.RunPending() > 0
	}, time.Second, time.Millisecond)

	require.True(t, ran)
}

func TestLoopCancelTimer(t *testing.T) {
	loop := NewLoop(nil)

	var ran bool
	handle := loop.AfterFunc(5*time.Millisecond, func() { ran = true })
	handle.Cancel()

	time.Sleep(20 * time.Millisecond)
	loop.RunPending()

	require.False(t, ran)
}

func TestLoopWithRepeat(t *testing.T) {
	loop := NewLoop(nil)

	var fired int
	task := Repeat(loop, "repeat", func() (time.Duration, error) {
		fired += 1
		return time.Millisecond, nil
	})

	require.Eventually(t, func() bool {
		loop.Wait(5 * time.Millisecond)
		loop.RunPending()
		return fired >= 3
	}, time.Second, time.Millisecond)

	task.Stop()

	count := fired
	time.Sleep(10 * time.Millisecond)
	loop.RunPending()

	require.Equal(t, count, fired)
}

func TestLoopTimerFollowsClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	loop := NewLoop(clock)

	fired := make(chan struct{})
	loop.AfterFunc(100*time.Millisecond, func() { close(fired) })

	clock.Advance(99 * time.Millisecond)
	require.Equal(t, 0, loop.RunPending())

	clock.Advance(time.Millisecond)

	// the timer only posts, the callback runs on the loop
	require.Eventually(t, func() bool { return loop.RunPending() == 1 }, time.Second, time.Millisecond)

	select {
	case <-fired:
	default:
		t.Fatal("timer callback did not run")
	}
}

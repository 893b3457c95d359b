package tick

import (
	"sync"
	"time"
)

// Loop is a cooperative Host. Frame requests and timer callbacks run on
// the goroutine that calls RunPending and RunFrame. Timers fire on their
// own goroutines but only enqueue their callback.
type Loop struct {
	clock Clock

	mu     sync.Mutex
	frames []*loopEntry
	queue  []func()

	// signals that the queue is not empty anymore
	wake chan struct{}
}

type loopEntry struct {
	fn        func()
	cancelled bool
	timer     Timer
	loop      *Loop
}

func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock
	}

	return &Loop{
		clock: clock,
		wake:  make(chan struct{}, 1),
	}
}

func (e *loopEntry) Cancel() {
	e.loop.mu.Lock()
	defer e.loop.mu.Unlock()

	e.cancelled = true

	if e.timer != nil {
		e.timer.Stop()
	}
}

func (l *Loop) RequestFrame(fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := &loopEntry{fn: fn, loop: l}
	l.frames = append(l.frames, entry)

	return entry
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	entry := &loopEntry{fn: fn, loop: l}

	timer := l.clock.AfterFunc(d, func() {
		l.Post(func() {
			l.mu.Lock()
			cancelled := entry.cancelled
			l.mu.Unlock()

			if !cancelled {
				entry.fn()
			}
		})
	})

	l.mu.Lock()
	entry.timer = timer
	l.mu.Unlock()

	return entry
}

// Post enqueues fn to run on the loop goroutine. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunPending runs all callbacks posted so far and returns their count.
// Callbacks posted while draining run on the next call.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range queue {
		fn()
	}

	return len(queue)
}

// RunFrame runs the frame requests made before this call. Requests made
// by the callbacks themselves are kept for the next frame.
func (l *Loop) RunFrame() int {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	var count int
	for _, entry := range frames {
		l.mu.Lock()
		cancelled := entry.cancelled
		l.mu.Unlock()

		if cancelled {
			continue
		}

		entry.fn()
		count += 1
	}

	return count
}

// HasFrameRequests reports whether any frame request is pending.
func (l *Loop) HasFrameRequests() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.frames {
		if !entry.cancelled {
			return true
		}
	}

	return false
}

// Wait blocks until a callback was posted or the timeout elapsed.
func (l *Loop) Wait(timeout time.Duration) {
	l.mu.Lock()
	pending := len(l.queue) > 0
	l.mu.Unlock()

	if pending {
		return
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-l.wake:
	case <-timer.C:
	}
}

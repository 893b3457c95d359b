// Package ticktest provides a manually driven tick.Host.
package ticktest

import (
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/oliverbestmann/vitrine/tick"
)

// NewClock returns a fake clock that only moves when advanced.
func NewClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
}

type entry struct {
	fn        func()
	due       time.Time
	delay     time.Duration
	seq       int
	cancelled bool
}

func (e *entry) Cancel() {
	e.cancelled = true
}

// Host records frame requests and timers and runs them on demand.
type Host struct {
	Clock *clockwork.FakeClock

	seq    int
	frames []*entry
	timers []*entry

	// delays of every timer ever armed, in order
	Delays []time.Duration

	mu     sync.Mutex
	posted []func()
}

func NewHost() *Host {
	return &Host{Clock: NewClock()}
}

func (h *Host) RequestFrame(fn func()) tick.Handle {
	h.seq += 1
	e := &entry{fn: fn, seq: h.seq}
	h.frames = append(h.frames, e)
	return e
}

func (h *Host) AfterFunc(d time.Duration, fn func()) tick.Handle {
	h.seq += 1
	e := &entry{fn: fn, due: h.Clock.Now().Add(d), delay: d, seq: h.seq}
	h.timers = append(h.timers, e)
	h.Delays = append(h.Delays, d)
	return e
}

// Post queues fn until Drain is called. Safe to call from any goroutine.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.posted = append(h.posted, fn)
}

// Drain runs all posted callbacks and returns their count.
func (h *Host) Drain() int {
	h.mu.Lock()
	posted := h.posted
	h.posted = nil
	h.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	return len(posted)
}

// Frame runs the pending frame requests and returns how many ran.
func (h *Host) Frame() int {
	frames := h.frames
	h.frames = nil

	var count int
	for _, e := range frames {
		if e.cancelled {
			continue
		}

		e.fn()
		count += 1
	}

	return count
}

// Frames runs n frames, advancing the clock by step before each one.
func (h *Host) Frames(n int, step time.Duration) {
	for range n {
		h.Clock.Advance(step)
		h.Frame()
	}
}

func (h *Host) PendingFrames() int {
	return countLive(h.frames)
}

func (h *Host) PendingTimers() int {
	return countLive(h.timers)
}

// NextTimer returns the delay of the earliest live timer, measured
// from the moment it was armed.
func (h *Host) NextTimer() (time.Duration, bool) {
	e := h.next()
	if e == nil {
		return 0, false
	}

	return e.delay, true
}

// FireNext advances the clock to the earliest live timer and runs it.
func (h *Host) FireNext() bool {
	e := h.next()
	if e == nil {
		return false
	}

	h.remove(e)

	if wait := e.due.Sub(h.Clock.Now()); wait > 0 {
		h.Clock.Advance(wait)
	}

	e.fn()
	return true
}

// Advance moves the clock by d, firing every timer that becomes due,
// and returns the number of fired timers.
func (h *Host) Advance(d time.Duration) int {
	deadline := h.Clock.Now().Add(d)

	var count int
	for {
		e := h.next()
		if e == nil || e.due.After(deadline) {
			break
		}

		h.FireNext()
		count += 1
	}

	if wait := deadline.Sub(h.Clock.Now()); wait > 0 {
		h.Clock.Advance(wait)
	}

	return count
}

func (h *Host) next() *entry {
	h.timers = live(h.timers)
	if len(h.timers) == 0 {
		return nil
	}

	sort.SliceStable(h.timers, func(i, j int) bool {
		a, b := h.timers[i], h.timers[j]
		if a.due.Equal(b.due) {
			return a.seq < b.seq
		}

		return a.due.Before(b.due)
	})

	return h.timers[0]
}

func (h *Host) remove(e *entry) {
	for idx, t := range h.timers {
		if t == e {
			h.timers = append(h.timers[:idx], h.timers[idx+1:]...)
			return
		}
	}
}

func live(entries []*entry) []*entry {
	result := entries[:0]
	for _, e := range entries {
		if !e.cancelled {
			result = append(result, e)
		}
	}

	return result
}

func countLive(entries []*entry) int {
	var count int
	for _, e := range entries {
		if !e.cancelled {
			count += 1
		}
	}

	return count
}

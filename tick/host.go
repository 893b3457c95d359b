package tick

import "time"

// Handle cancels a pending frame request or timer.
// Cancelling an already fired or cancelled handle does nothing.
type Handle interface {
	Cancel()
}

// Host schedules callbacks onto the single thread that owns a viewport.
// Callbacks never run concurrently with each other. Their relative order
// between frames and timers is not specified.
type Host interface {
	// RequestFrame runs fn once, aligned with the next display refresh.
	RequestFrame(fn func()) Handle

	// AfterFunc runs fn once after at least d has passed.
	AfterFunc(d time.Duration, fn func()) Handle
}

// Poster hands a callback from any goroutine to the thread owning
// the host.
type Poster interface {
	Post(fn func())
}

// HandleFunc adapts a function to the Handle interface.
type HandleFunc func()

func (fn HandleFunc) Cancel() {
	fn()
}

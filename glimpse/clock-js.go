//go:build js

package glimpse

import (
	"syscall/js"
	"time"

	"github.com/jonboulle/clockwork"
)

// jsClock runs timers with setTimeout, so they fire independent of
// animation frames and keep firing, throttled, in hidden tabs.
type jsClock struct {
	clockwork.Clock

	// called after every timer callback
	afterFire func()
}

func newJSClock() *jsClock {
	return &jsClock{Clock: clockwork.NewRealClock()}
}

func (c *jsClock) AfterFunc(d time.Duration, f func()) clockwork.Timer {
	t := &jsTimer{clock: c, f: f}
	t.arm(d)
	return t
}

type jsTimer struct {
	clock *jsClock
	f     func()

	id      js.Value
	fn      js.Func
	pending bool
}

func (t *jsTimer) arm(d time.Duration) {
	t.fn = js.FuncOf(func(js.Value, []js.Value) any {
		t.pending = false
		t.fn.Release()

		t.f()

		if t.clock.afterFire != nil {
			t.clock.afterFire()
		}

		return nil
	})

	t.pending = true
	t.id = js.Global().Call("setTimeout", t.fn, d.Milliseconds())
}

func (t *jsTimer) Chan() <-chan time.Time {
	return nil
}

func (t *jsTimer) Stop() bool {
	if !t.pending {
		return false
	}

	t.pending = false
	js.Global().Call("clearTimeout", t.id)
	t.fn.Release()

	return true
}

func (t *jsTimer) Reset(d time.Duration) bool {
	wasPending := t.Stop()
	t.arm(d)
	return wasPending
}

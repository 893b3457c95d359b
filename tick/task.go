package tick

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrStopped is returned by Task.Err after Stop was called.
var ErrStopped = errors.New("task stopped")

// Task is the handle to a self rescheduling callback chain.
// It holds the one pending frame request or timer of the chain.
type Task struct {
	name string

	mu      sync.Mutex
	pending Handle
	err     error
	done    chan struct{}
}

func newTask(name string) *Task {
	return &Task{name: name, done: make(chan struct{})}
}

func (t *Task) Name() string {
	return t.name
}

// Stop cancels the pending callback of the chain. No further callback
// runs after Stop returns. Calling Stop from inside the chain's own
// callback elides the reschedule. Stop is idempotent.
func (t *Task) Stop() {
	t.finish(ErrStopped)
}

// Done is closed once the chain has ended, either by Stop or
// because a step failed.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns nil while the chain is running, ErrStopped after Stop,
// or the error that ended the chain.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.err
}

func (t *Task) Running() bool {
	return t.Err() == nil
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return
	}

	t.err = err

	if t.pending != nil {
		t.pending.Cancel()
		t.pending = nil
	}

	close(t.done)
}

// arm stores the handle returned by schedule, unless the task has
// already ended. schedule is called with the lock held, so a concurrent
// Stop always sees the new handle.
func (t *Task) arm(schedule func() Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return
	}

	t.pending = schedule()
}

// run executes step, converting a panic into an error.
func (t *Task) run(step func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", t.name, r)
		}
	}()

	return step()
}

func (t *Task) fail(err error) {
	slog.Error("Callback chain terminated",
		slog.String("task", t.name),
		slog.String("error", err.Error()),
	)

	t.finish(err)
}

// EveryFrame runs step once per display refresh until the task is
// stopped or step fails. The first step runs on the next frame.
func EveryFrame(host Host, name string, step func() error) *Task {
	task := newTask(name)

	var frame func()
	frame = func() {
		if !task.Running() {
			return
		}

		if err := task.run(step); err != nil {
			task.fail(err)
			return
		}

		task.arm(func() Handle { return host.RequestFrame(frame) })
	}

	task.arm(func() Handle { return host.RequestFrame(frame) })

	return task
}

// Repeat runs step right away, then again after the delay step returned,
// until the task is stopped or step fails. The next timer is armed
// before the callback returns, so at most one timer is pending.
func Repeat(host Host, name string, step func() (time.Duration, error)) *Task {
	task := newTask(name)

	var fire func()
	fire = func() {
		if !task.Running() {
			return
		}

		var delay time.Duration
		err := task.run(func() (err error) {
			delay, err = step()
			return
		})

		if err != nil {
			task.fail(err)
			return
		}

		task.arm(func() Handle { return host.AfterFunc(delay, fire) })
	}

	fire()

	return task
}

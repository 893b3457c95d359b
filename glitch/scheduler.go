package glitch

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/oliverbestmann/vitrine/tick"
)

//go:generate stringer -type=State -trimprefix=State

type State uint8

const (
	// StateIdle means a timer is armed and the scheduler waits for it.
	StateIdle State = iota

	// StateFiring means the handler is running.
	StateFiring
)

// Highlighter applies the highlight to the actual menu elements.
type Highlighter interface {
	// Len returns the number of menu items. It must not change.
	Len() int

	// ClearAll removes the highlight from every item.
	ClearAll()

	// Activate highlights the item at index with color.
	Activate(index int, color Color)
}

// Scheduler moves the highlight to a random menu item after
// a random delay, independent of the frame loop.
type Scheduler struct {
	target Highlighter
	rng    *rand.Rand

	state   State
	active  int
	firings uint64
}

func NewScheduler(target Highlighter, rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Scheduler{target: target, rng: rng, active: -1}
}

func (s *Scheduler) State() State {
	return s.state
}

// Active returns the index of the highlighted item, or -1.
func (s *Scheduler) Active() int {
	return s.active
}

func (s *Scheduler) Firings() uint64 {
	return s.firings
}

// Fire runs one firing and returns the delay until the next one.
// An empty menu makes this a no-op that still returns a delay.
func (s *Scheduler) Fire() time.Duration {
	s.state = StateFiring
	defer func() { s.state = StateIdle }()

	s.firings += 1

	s.target.ClearAll()

	selection, ok := Pick(s.rng, s.target.Len(), s.active)
	if ok {
		s.target.Activate(selection.Index, selection.Color)
	}

	s.active = selection.Index

	delay := NextDelay(s.rng)

	slog.Debug("Glitch",
		slog.Int("index", selection.Index),
		slog.Any("color", selection.Color),
		slog.Duration("next", delay),
	)

	return delay
}

// Start fires once right away and then keeps rescheduling itself until
// the returned task is stopped.
func (s *Scheduler) Start(host tick.Host) *tick.Task {
	slog.Info("Start glitch scheduler", slog.Int("items", s.target.Len()))

	return tick.Repeat(host, "glitch", func() (time.Duration, error) {
		return s.Fire(), nil
	})
}

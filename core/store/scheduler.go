package store

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a cancellable scheduled action.
type Timer interface {
	// Stop prevents the action from running if it has not started yet.
	// It reports whether the call stopped the timer. Stopping a timer that
	// already fired or was already stopped is a no-op.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed. fn must be run on a goroutine
// other than the caller of AfterFunc. A d <= 0 means "as soon as possible".
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// clockScheduler schedules expirations on a clockwork.Clock, which is the
// runtime timer for clockwork.NewRealClock.
type clockScheduler struct {
	clock clockwork.Clock
}

func (s clockScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return s.clock.AfterFunc(d, fn)
}

// SchedulerFromClock returns a Scheduler backed by clock.
func SchedulerFromClock(clock clockwork.Clock) Scheduler {
	return clockScheduler{clock: clock}
}

var _ Scheduler = clockScheduler{}

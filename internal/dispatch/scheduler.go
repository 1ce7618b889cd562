package dispatch

import "time"

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the callback. Reports false if it already fired or was
	// already stopped.
	Stop() bool
}

// Scheduler schedules deferred callbacks. Injected so the offer window and
// the advance delay run without wall-clock waits in tests.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// RealScheduler is the default scheduler.
type RealScheduler struct{}

// Schedule runs fn after d on its own goroutine.
func (RealScheduler) Schedule(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct{ t *time.Timer }

func (rt realTimer) Stop() bool { return rt.t.Stop() }

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// RealClock is the default clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }

// Package clock provides the time capabilities injected into timer-driven
// components: a current-time source and a cancellable delayed-callback
// scheduler, with a system implementation and a deterministic fake.
package clock

import (
	"context"
	"time"
)

// Clock reads the current instant.
type Clock interface {
	Now() time.Time
}

// Timer is a pending callback registration.
type Timer interface {
	// Stop cancels the callback. It reports false when the callback already
	// ran or was stopped.
	Stop() bool
}

// Scheduler registers callbacks to run once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// System is the wall clock and runtime timer.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Sleep waits for d on scheduler, returning early with the context error when
// ctx ends first. Non-positive durations return immediately.
func Sleep(ctx context.Context, scheduler Scheduler, d time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	if scheduler == nil {
		scheduler = System{}
	}
	done := make(chan struct{})
	timer := scheduler.AfterFunc(d, func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
}

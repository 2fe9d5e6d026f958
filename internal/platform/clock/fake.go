package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a deterministic Clock and Scheduler. Time only moves through Set
// and Advance, which run due callbacks synchronously on the caller goroutine.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*fakeTimer
}

type fakeTimer struct {
	fake *Fake
	due  time.Time
	seq  uint64
	f    func()
	done bool
}

// NewFake returns a Fake starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake instant.
func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers f to run once the fake clock reaches now+d.
func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &fakeTimer{fake: c, due: c.now.Add(d), seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

// Pending reports how many callbacks are registered and not yet run or stopped.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Advance moves the clock forward by d, firing every callback due on the way
// in due-time order. Callbacks scheduled by callbacks fire too when they fall
// inside the window.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	c.Set(target)
}

// Set moves the clock to t, firing due callbacks like Advance. Moving
// backwards only changes Now.
func (c *Fake) Set(t time.Time) {
	for {
		c.mu.Lock()
		next := c.nextDueLocked(t)
		if next == nil {
			if !t.Equal(c.now) {
				c.now = t
			}
			c.mu.Unlock()
			return
		}
		if next.due.After(c.now) {
			c.now = next.due
		}
		next.done = true
		c.removeLocked(next)
		f := next.f
		c.mu.Unlock()
		f()
	}
}

func (c *Fake) nextDueLocked(limit time.Time) *fakeTimer {
	if len(c.pending) == 0 {
		return nil
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].due.Equal(c.pending[j].due) {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].due.Before(c.pending[j].due)
	})
	first := c.pending[0]
	if first.due.After(limit) {
		return nil
	}
	return first
}

func (c *Fake) removeLocked(t *fakeTimer) {
	for i, candidate := range c.pending {
		if candidate == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// Stop cancels the fake timer.
func (t *fakeTimer) Stop() bool {
	c := t.fake
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	c.removeLocked(t)
	return true
}

// Package scheduler gates simulation steps to a fixed frame interval.
package scheduler

import "time"

// DefaultTickRate is the simulation rate in frames per second.
const DefaultTickRate = 60

// Accumulator runs one step each time at least Interval has passed since
// the last step. The part of the delta beyond a whole interval is carried
// into the next frame rather than dropped, so the long-run rate does not
// drift with the host's callback jitter.
type Accumulator struct {
	Interval time.Duration
	last     time.Duration
	started  bool
}

// New creates an accumulator for a tick rate. Non-positive rates use
// DefaultTickRate.
func New(tickRate int) *Accumulator {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Accumulator{Interval: time.Second / time.Duration(tickRate)}
}

// Ready reports whether a step should run at now. The first call only
// records the start time.
func (a *Accumulator) Ready(now time.Duration) bool {
	if !a.started {
		a.started = true
		a.last = now
		return false
	}
	delta := now - a.last
	if delta < a.Interval {
		return false
	}
	a.last = now - delta%a.Interval
	return true
}

// Reset forgets the last step time. The next Ready call restarts the clock.
func (a *Accumulator) Reset() {
	a.started = false
	a.last = 0
}

// Clock measures monotonic time since it was created.
type Clock struct {
	start time.Time
	now   func() time.Time
}

// NewClock starts a clock at the current time.
func NewClock() *Clock {
	return NewClockFunc(time.Now)
}

// NewClockFunc starts a clock driven by now. Tests pass a fake.
func NewClockFunc(now func() time.Time) *Clock {
	return &Clock{start: now(), now: now}
}

// Since returns the time elapsed since the clock started.
func (c *Clock) Since() time.Duration {
	return c.now().Sub(c.start)
}

// At converts a wall-clock time into clock time.
func (c *Clock) At(t time.Time) time.Duration {
	return t.Sub(c.start)
}

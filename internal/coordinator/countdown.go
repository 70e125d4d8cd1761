package coordinator

import "time"

// HoldWindow is the hard seat-hold timeout. There is no extension
// mechanism: once the window elapses the whole selection is abandoned.
const HoldWindow = 600 * time.Second

// Countdown enforces the hold window from the first successful lock.
// Remaining time is always computed from the absolute start instant, not
// from accumulated ticks, so repeated reads never drift.
type Countdown struct {
	clock  Clock
	window time.Duration
	start  time.Time
}

// NewCountdown creates a stopped countdown over the given window.
func NewCountdown(clock Clock, window time.Duration) *Countdown {
	return &Countdown{clock: clock, window: window}
}

// Start records the deadline origin. It is idempotent: starting an
// already-running countdown does not extend the deadline.
func (c *Countdown) Start() {
	if c.start.IsZero() {
		c.start = c.clock.Now()
	}
}

// Stop clears the deadline. Called only when the selection becomes empty
// before expiry.
func (c *Countdown) Stop() {
	c.start = time.Time{}
}

// Running reports whether a deadline is active.
func (c *Countdown) Running() bool {
	return !c.start.IsZero()
}

// StartTime returns the deadline origin instant. Zero when stopped. This
// is the opaque value handed to the booking-confirmation step so both
// screens count down from the same origin.
func (c *Countdown) StartTime() time.Time {
	return c.start
}

// Remaining returns the whole seconds left in the hold window. A stopped
// countdown reports the full window.
func (c *Countdown) Remaining() int {
	if c.start.IsZero() {
		return int(c.window / time.Second)
	}
	left := c.window - c.clock.Now().Sub(c.start)
	if left < 0 {
		return 0
	}
	return int(left / time.Second)
}

// Expired reports whether a running countdown has reached zero.
func (c *Countdown) Expired() bool {
	return c.Running() && c.Remaining() == 0
}

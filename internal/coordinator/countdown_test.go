package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestCountdown_StartIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	cd := NewCountdown(clock, HoldWindow)

	cd.Start()
	origin := cd.StartTime()

	clock.Advance(30 * time.Second)
	cd.Start()

	assert.Equal(t, origin, cd.StartTime(), "second Start must not move the deadline")
	assert.Equal(t, 570, cd.Remaining())
}

func TestCountdown_RemainingFromOrigin(t *testing.T) {
	clock := newFakeClock()
	cd := NewCountdown(clock, HoldWindow)

	assert.Equal(t, 600, cd.Remaining(), "stopped countdown reports the full window")
	assert.False(t, cd.Running())

	cd.Start()
	assert.Equal(t, 600, cd.Remaining())

	clock.Advance(599 * time.Second)
	assert.Equal(t, 1, cd.Remaining())
	assert.False(t, cd.Expired())

	clock.Advance(time.Second)
	assert.Equal(t, 0, cd.Remaining())
	assert.True(t, cd.Expired())

	// Expiry is unconditional; more time changes nothing.
	clock.Advance(time.Hour)
	assert.Equal(t, 0, cd.Remaining())
}

func TestCountdown_StopResets(t *testing.T) {
	clock := newFakeClock()
	cd := NewCountdown(clock, HoldWindow)

	cd.Start()
	clock.Advance(100 * time.Second)
	cd.Stop()

	assert.False(t, cd.Running())
	assert.Equal(t, 600, cd.Remaining())
	assert.True(t, cd.StartTime().IsZero())
}

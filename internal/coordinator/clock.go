package coordinator

import "time"

// Clock abstracts wall-clock reads so tests can drive the countdown and
// lock-expiry checks with simulated time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}

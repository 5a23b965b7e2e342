package gc

import "time"

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() time.Time
}

// WallClock is a TimeTeller backed by the system monotonic clock.
type WallClock struct{}

// CurrentTime returns the current time. The returned value carries a
// monotonic reading, so differences between two values are immune to wall
// clock adjustments.
func (WallClock) CurrentTime() time.Time {
	return time.Now()
}

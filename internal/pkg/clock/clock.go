// Package clock provides the wall-clock adapter behind ports.Clock.
package clock

import "time"

// System reads the local wall clock.
type System struct{}

// New returns a System clock.
func New() System {
	return System{}
}

func (System) Now() time.Time {
	return time.Now()
}

// Today returns the current local date as an ISO date string.
func (s System) Today() string {
	return s.Now().Format("2006-01-02")
}

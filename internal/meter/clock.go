package meter

import "time"

// Clock abstracts wall-clock time so combat-time and fame-rate arithmetic
// can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock is the Clock used in production.
func RealClock() Clock { return realClock{} }

package service

import "time"

// SystemClock reads the wall clock on every call.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Package service defines the interfaces of domain collaborators implemented in infra.
package service

import "time"

// Clock supplies record timestamps.
type Clock func() time.Time

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return time.Now
}

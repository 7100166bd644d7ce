package service

import "time"

// Clock is injected so tests can control ordering.
type Clock func() time.Time

// SystemClock returns UTC truncated to microseconds, the precision Postgres keeps.
// Keyset cursors compare stored timestamps for equality, so the two must agree.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

package services

import "time"

// Clock supplies the current time. Its Location defines the local day.
type Clock func() time.Time

func NewSystemClock() Clock {
	return time.Now
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

package tracker

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day key format used for completion histories and daily logs.
const DayLayout = "2006-01-02"

// Clock returns the current time. The tracker never reads the wall clock directly.
type Clock func() time.Time

// SystemClock is the default Clock.
func SystemClock() time.Time { return time.Now() }

// DayKey formats t as a calendar-day key in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a day key. The result is midnight UTC of that day.
func ParseDay(key string) (time.Time, error) {
	t, err := time.Parse(DayLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", key, err)
	}
	return t, nil
}

// Yesterday returns the day key immediately before key.
func Yesterday(key string) (string, error) {
	return AddDays(key, -1)
}

// AddDays shifts a day key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDay(key)
	if err != nil {
		return "", err
	}
	return DayKey(t.AddDate(0, 0, n)), nil
}

// Today returns the day key for the clock's current time.
func Today(clock Clock) string {
	return DayKey(clock())
}

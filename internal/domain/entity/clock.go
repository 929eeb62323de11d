package entity

import (
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ClockLayout is the wire format of wall-clock times
const ClockLayout = "15:04"

// ShortClock trims a database TIME value ("14:00:00") to "14:00"
func ShortClock(value string) string {
	if len(value) >= 5 && strings.Count(value, ":") >= 1 {
		return value[:5]
	}
	return value
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseClock validates an HH:MM time and returns it normalized
func ParseClock(value string) (string, error) {
	t, err := time.Parse(ClockLayout, ShortClock(value))
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

// CombineDateClock returns the instant of a date and HH:MM time in loc
func CombineDateClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(ClockLayout, ShortClock(clock))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClockTime is returned when a wall-clock string is not HH:MM 24-hour.
var ErrInvalidClockTime = errors.New("invalid clock time, use HH:MM")

// ClockTime is a wall-clock time of day expressed as minutes since midnight.
// All schedule times are organization-local; no time-zone conversion happens here.
type ClockTime int

// ParseClockTime parses a zero-padded 24-hour "HH:MM" string. The padding is
// part of the contract: "7:30" is rejected, not normalized, so labels always
// round-trip byte for byte.
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClockTime
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidClockTime
	}
	return ClockTime(parsed.Hour()*60 + parsed.Minute()), nil
}

// String renders the time as zero-padded 24-hour "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock time shifted forward by the given number of minutes.
func (c ClockTime) Add(minutes int) ClockTime {
	return c + ClockTime(minutes)
}

// At anchors the clock time onto a calendar date, keeping the date's location.
func (c ClockTime) At(date time.Time) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, date.Location()).
		Add(time.Duration(c) * time.Minute)
}

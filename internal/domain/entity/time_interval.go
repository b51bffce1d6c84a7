package entity

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when an interval would be empty or inverted.
// Zero-duration appointments are rejected here, before any overlap check runs.
var ErrInvalidInterval = errors.New("interval end must be after start")

// TimeInterval is an immutable half-open time range [Start, End).
// The half-open convention is what allows back-to-back appointments:
// one ending at 10:30 and one starting at 10:30 do not overlap.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval builds a validated interval. End must be strictly after Start.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if !end.After(start) {
		return TimeInterval{}, ErrInvalidInterval
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains reports whether the instant falls inside the interval.
// The end instant itself is excluded.
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the interval length.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

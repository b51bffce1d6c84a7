package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) ClockTime {
	t.Helper()
	c, err := ParseClockTime(s)
	require.NoError(t, err)
	return c
}

func TestCoversNilReceiverIsAlwaysClosed(t *testing.T) {
	var hours *BusinessHours
	assert.False(t, hours.Covers(clock(t, "10:00")))
}

func TestCoversDisabledIsClosed(t *testing.T) {
	hours := &BusinessHours{
		Weekday:   time.Monday,
		StartTime: "09:00",
		EndTime:   "18:00",
		Enabled:   false,
	}
	assert.False(t, hours.Covers(clock(t, "10:00")))
}

func TestCoversHalfOpenWindow(t *testing.T) {
	hours := &BusinessHours{
		Weekday:   time.Monday,
		StartTime: "09:00",
		EndTime:   "18:00",
		Enabled:   true,
	}

	assert.False(t, hours.Covers(clock(t, "08:30")))
	assert.True(t, hours.Covers(clock(t, "09:00")))
	assert.True(t, hours.Covers(clock(t, "17:30")))
	// Closing time itself is outside: a slot starting then cannot be served.
	assert.False(t, hours.Covers(clock(t, "18:00")))
	assert.False(t, hours.Covers(clock(t, "18:30")))
}

func TestCoversMalformedWindowIsClosed(t *testing.T) {
	hours := &BusinessHours{StartTime: "nine", EndTime: "18:00", Enabled: true}
	assert.False(t, hours.Covers(clock(t, "10:00")))
}

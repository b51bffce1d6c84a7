package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("07:30")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(450), c)

	c, err = ParseClockTime("00:00")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(0), c)

	for _, bad := range []string{"24:00", "7:3", "1030", "", "10:60"} {
		_, err := ParseClockTime(bad)
		assert.ErrorIs(t, err, ErrInvalidClockTime, "input %q", bad)
	}
}

func TestParseClockTimeRequiresZeroPadding(t *testing.T) {
	// Unpadded inputs parse under time.Parse but are not valid labels; they
	// must be rejected, not normalized.
	for _, bad := range []string{"7:30", "07:5", "7:05", " 7:30", "07:30 "} {
		_, err := ParseClockTime(bad)
		assert.ErrorIs(t, err, ErrInvalidClockTime, "input %q", bad)
	}
}

func TestClockTimeStringIsZeroPadded(t *testing.T) {
	assert.Equal(t, "07:00", ClockTime(420).String())
	assert.Equal(t, "23:30", ClockTime(1410).String())
	assert.Equal(t, "00:05", ClockTime(5).String())
}

func TestClockTimeAt(t *testing.T) {
	date := time.Date(2026, 3, 2, 15, 45, 12, 0, time.UTC)
	at := ClockTime(630).At(date) // 10:30

	assert.Equal(t, time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC), at)
}

func TestClockTimeAdd(t *testing.T) {
	c, err := ParseClockTime("10:00")
	require.NoError(t, err)
	assert.Equal(t, "11:00", c.Add(60).String())
}

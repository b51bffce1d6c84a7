package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interval(t *testing.T, start, end string) TimeInterval {
	t.Helper()
	s, err := time.Parse("15:04", start)
	require.NoError(t, err)
	e, err := time.Parse("15:04", end)
	require.NoError(t, err)
	iv, err := NewTimeInterval(s, e)
	require.NoError(t, err)
	return iv
}

func TestNewTimeIntervalRejectsEmptyAndInverted(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := NewTimeInterval(at, at)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(at, at.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(at, at.Add(time.Minute))
	assert.NoError(t, err)
}

func TestOverlapsIsSymmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b TimeInterval
	}{
		{"partial", interval(t, "10:00", "11:00"), interval(t, "10:30", "11:30")},
		{"disjoint", interval(t, "10:00", "11:00"), interval(t, "12:00", "13:00")},
		{"back-to-back", interval(t, "10:00", "10:30"), interval(t, "10:30", "11:00")},
		{"contained", interval(t, "10:00", "12:00"), interval(t, "10:30", "11:00")},
		{"identical", interval(t, "10:00", "11:00"), interval(t, "10:00", "11:00")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.a.Overlaps(tc.b), tc.b.Overlaps(tc.a))
		})
	}
}

func TestBackToBackIntervalsDoNotOverlap(t *testing.T) {
	a := interval(t, "10:00", "10:30")
	b := interval(t, "10:30", "11:00")

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestStrictContainmentOverlaps(t *testing.T) {
	outer := interval(t, "09:00", "12:00")
	inner := interval(t, "10:00", "10:30")

	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
}

func TestPartialOverlap(t *testing.T) {
	a := interval(t, "10:30", "11:30")
	b := interval(t, "11:00", "12:00")

	assert.True(t, a.Overlaps(b))
}

func TestContainsExcludesEnd(t *testing.T) {
	iv := interval(t, "10:00", "11:00")

	assert.True(t, iv.Contains(iv.Start))
	assert.True(t, iv.Contains(iv.Start.Add(30*time.Minute)))
	assert.False(t, iv.Contains(iv.End))
	assert.False(t, iv.Contains(iv.Start.Add(-time.Minute)))
}

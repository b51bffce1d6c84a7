package service

import (
	"testing"

	"clinic-scheduler/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) entity.ClockTime {
	t.Helper()
	c, err := entity.ParseClockTime(s)
	require.NoError(t, err)
	return c
}

func collect(g *SlotGrid) []string {
	var out []string
	for t := range g.Times() {
		out = append(out, t.String())
	}
	return out
}

func TestNewSlotGridRejectsMalformedBounds(t *testing.T) {
	start, end := clock(t, "07:00"), clock(t, "23:00")

	_, err := NewSlotGrid(end, start, 30)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewSlotGrid(start, start, 30)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewSlotGrid(start, end, 0)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewSlotGrid(start, end, -15)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSlotGridCoversFullWindowExcludingEnd(t *testing.T) {
	grid, err := NewSlotGrid(clock(t, "07:00"), clock(t, "23:00"), 30)
	require.NoError(t, err)

	times := collect(grid)
	require.Len(t, times, 32)
	assert.Equal(t, 32, grid.Len())
	assert.Equal(t, "07:00", times[0])
	assert.Equal(t, "22:30", times[len(times)-1])
	assert.NotContains(t, times, "23:00")
}

func TestSlotGridIsAscending(t *testing.T) {
	grid, err := NewSlotGrid(clock(t, "09:00"), clock(t, "12:00"), 45)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:45", "10:30", "11:15"}, collect(grid))
}

func TestSlotGridIsRestartable(t *testing.T) {
	grid, err := NewSlotGrid(clock(t, "08:00"), clock(t, "10:00"), 30)
	require.NoError(t, err)

	first := collect(grid)
	second := collect(grid)
	assert.Equal(t, first, second)
}

func TestSlotGridStopsWhenConsumerBreaks(t *testing.T) {
	grid, err := NewSlotGrid(clock(t, "08:00"), clock(t, "20:00"), 30)
	require.NoError(t, err)

	var seen int
	for range grid.Times() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

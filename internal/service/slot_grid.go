package service

import (
	"errors"
	"iter"

	"clinic-scheduler/internal/domain/entity"
)

// ErrInvalidRange is returned when slot grid bounds are malformed. The grid is
// built from configuration at startup, so this never surfaces per-request.
var ErrInvalidRange = errors.New("slot grid end must be after start and step must be positive")

// SlotGrid enumerates candidate start times across a day window at a fixed
// step. It knows nothing about any organization's opening hours: the full grid
// is always produced and filtering is applied downstream, so callers can show
// out-of-hours slots with a status instead of silently omitting them.
type SlotGrid struct {
	dayStart    entity.ClockTime
	dayEnd      entity.ClockTime
	gridMinutes int
}

func NewSlotGrid(dayStart, dayEnd entity.ClockTime, gridMinutes int) (*SlotGrid, error) {
	if dayEnd <= dayStart || gridMinutes <= 0 {
		return nil, ErrInvalidRange
	}
	return &SlotGrid{dayStart: dayStart, dayEnd: dayEnd, gridMinutes: gridMinutes}, nil
}

// Times yields every grid start time in ascending order, dayEnd excluded.
// The sequence is restartable; ranging over it twice gives the same times.
func (g *SlotGrid) Times() iter.Seq[entity.ClockTime] {
	return func(yield func(entity.ClockTime) bool) {
		for t := g.dayStart; t < g.dayEnd; t = t.Add(g.gridMinutes) {
			if !yield(t) {
				return
			}
		}
	}
}

// Len returns the number of slots the grid produces.
func (g *SlotGrid) Len() int {
	span := int(g.dayEnd - g.dayStart)
	return (span + g.gridMinutes - 1) / g.gridMinutes
}

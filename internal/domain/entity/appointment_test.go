package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusNoShow, true},
		{AppointmentStatusPending, AppointmentStatusRescheduled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusNoShow, true},
		{AppointmentStatusConfirmed, AppointmentStatusRescheduled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusNoShow, AppointmentStatusConfirmed, false},
		{AppointmentStatusRescheduled, AppointmentStatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusNoShow.IsTerminal())
	assert.True(t, AppointmentStatusRescheduled.IsTerminal())
}

func TestIsActiveExcludesCancelledAndNoShow(t *testing.T) {
	for _, tc := range []struct {
		status AppointmentStatus
		active bool
	}{
		{AppointmentStatusPending, true},
		{AppointmentStatusConfirmed, true},
		{AppointmentStatusCompleted, true},
		{AppointmentStatusRescheduled, true},
		{AppointmentStatusCancelled, false},
		{AppointmentStatusNoShow, false},
	} {
		a := &Appointment{Status: tc.status}
		assert.Equal(t, tc.active, a.IsActive(), "status %s", tc.status)
	}
}

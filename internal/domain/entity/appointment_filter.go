package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a typed query spec for listing appointments.
// Repositories consume this instead of ad-hoc map filters so every
// supported predicate is visible in one place.
type AppointmentFilter struct {
	ProfessionalID uuid.UUID
	RangeStart     *time.Time // appointments ending after this instant
	RangeEnd       *time.Time // appointments starting before this instant
	ExcludeID      *uuid.UUID // skip this appointment, used on reschedule self-checks
}

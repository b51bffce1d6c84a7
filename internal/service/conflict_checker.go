package service

import (
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConflictChecker is the single place deciding whether a candidate interval
// collides with an existing active appointment for a professional. Every write
// that changes an appointment's time or professional goes through it, inside
// the same transaction as the write itself; the backing store's isolation is
// what makes check-then-persist safe under concurrent bookings.
type ConflictChecker struct {
	appointmentRepo repository.AppointmentRepository
}

func NewConflictChecker(appointmentRepo repository.AppointmentRepository) *ConflictChecker {
	return &ConflictChecker{appointmentRepo: appointmentRepo}
}

// FindConflict returns the first active appointment overlapping the candidate,
// or nil when the slot is free. excludeID skips the appointment being
// rescheduled so it does not conflict with itself. Which conflict is reported
// when several exist is unspecified; callers only need existence.
func (c *ConflictChecker) FindConflict(db *gorm.DB, professionalID uuid.UUID, candidate entity.TimeInterval, excludeID *uuid.UUID) (*entity.Appointment, error) {
	filter := &entity.AppointmentFilter{
		ProfessionalID: professionalID,
		RangeStart:     &candidate.Start,
		RangeEnd:       &candidate.End,
		ExcludeID:      excludeID,
	}

	existing, err := c.appointmentRepo.ListActiveForProfessional(db, filter)
	if err != nil {
		return nil, err
	}

	return FirstConflict(existing, candidate, excludeID), nil
}

// IsAvailable reports whether the candidate interval is free of conflicts.
func (c *ConflictChecker) IsAvailable(db *gorm.DB, professionalID uuid.UUID, candidate entity.TimeInterval, excludeID *uuid.UUID) (bool, error) {
	conflict, err := c.FindConflict(db, professionalID, candidate, excludeID)
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}

// FirstConflict scans a snapshot of active appointments for an overlap with
// the candidate. The availability aggregator uses it directly so one day's
// snapshot serves the whole grid without a query per slot.
func FirstConflict(active []entity.Appointment, candidate entity.TimeInterval, excludeID *uuid.UUID) *entity.Appointment {
	for i := range active {
		if excludeID != nil && active[i].ID == *excludeID {
			continue
		}
		if active[i].Interval().Overlaps(candidate) {
			return &active[i]
		}
	}
	return nil
}

package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	// ListActiveForProfessional returns non-cancelled, non-no-show, non-deleted
	// appointments matching the filter, ordered by start time.
	ListActiveForProfessional(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// UpdateStatus transitions the status, storing the cancellation reason when
	// given. Returns affected rows so double transitions can be detected.
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus, reason *string) (int64, error)
}

package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Professional.User").Preload("Service").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Professional.User").Preload("Service").
		Where("patient_id = ?", patientID).
		Order("start_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListActiveForProfessional fetches the snapshot the overlap check runs over.
// Soft-deleted rows are excluded by gorm's default scope on DeletedAt.
func (r *appointmentRepository) ListActiveForProfessional(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.
		Where("professional_id = ?", filter.ProfessionalID).
		Where("status NOT IN ?", []entity.AppointmentStatus{
			entity.AppointmentStatusCancelled,
			entity.AppointmentStatusNoShow,
		})

	if filter.RangeStart != nil {
		query = query.Where("end_at > ?", *filter.RangeStart)
	}
	if filter.RangeEnd != nil {
		query = query.Where("start_at < ?", *filter.RangeEnd)
	}
	if filter.ExcludeID != nil {
		query = query.Where("id != ?", *filter.ExcludeID)
	}

	var appointments []entity.Appointment
	err := query.Order("start_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Professional", "Patient", "Service").Save(appointment).Error
}

// UpdateStatus transitions atomically at the row level: the current status must
// still allow the move when the update lands, which guards against a racing
// double-cancel. Returns 0 affected rows when the guard fails.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus, reason *string) (int64, error) {
	updates := map[string]interface{}{"status": status}
	if reason != nil {
		updates["cancellation_reason"] = *reason
	}

	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, transitionSources(status)).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// transitionSources lists the statuses a row may hold for the target status to
// be a legal transition.
func transitionSources(target entity.AppointmentStatus) []entity.AppointmentStatus {
	sources := make([]entity.AppointmentStatus, 0, 2)
	for _, from := range []entity.AppointmentStatus{
		entity.AppointmentStatusPending,
		entity.AppointmentStatusConfirmed,
	} {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

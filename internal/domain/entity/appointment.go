package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusNoShow      AppointmentStatus = "no_show"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// statusTransitions holds every legal lifecycle move. Anything absent is rejected.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending: {
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled,
	},
}

// IsTerminal reports whether no further transitions are allowed from this status.
func (s AppointmentStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether moving to the target status is legal.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Appointment represents a booked time range for a professional and a patient.
// Rows are never physically destroyed by the application: cancellation is a
// status, and removal is the soft-delete flag, which are independent of each
// other.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrganizationID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProfessionalID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_professional_time" json:"professional_id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ServiceID          *uuid.UUID        `gorm:"type:uuid;index" json:"service_id,omitempty"`
	StartAt            time.Time         `gorm:"not null;index:idx_appointments_professional_time" json:"start_at"`
	EndAt              time.Time         `gorm:"not null" json:"end_at"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CancellationReason *string           `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Patient      PatientProfile      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Service      *ServiceOffering    `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Interval returns the appointment's booked time range.
func (a *Appointment) Interval() TimeInterval {
	return TimeInterval{Start: a.StartAt, End: a.EndAt}
}

// IsActive reports whether the appointment participates in overlap checks.
// Cancelled and no-show appointments release their slot.
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled && a.Status != AppointmentStatusNoShow
}

// IsPending checks if the appointment is awaiting confirmation
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsConfirmed checks if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

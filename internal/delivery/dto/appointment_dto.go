package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	ProfessionalID  uuid.UUID  `json:"professional_id" validate:"required"`
	ServiceID       *uuid.UUID `json:"service_id" validate:"omitempty"`
	Date            string     `json:"date" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	StartTime       string     `json:"start_time" validate:"required,clocktime"`      // Format: HH:MM
	DurationMinutes int        `json:"duration_minutes" validate:"omitempty,min=1"`
	// ReplacesAppointmentID marks an existing appointment as rescheduled once
	// the new one is booked, in the same transaction.
	ReplacesAppointmentID *uuid.UUID `json:"replaces_appointment_id" validate:"omitempty"`
}

type RescheduleAppointmentRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	StartTime       string `json:"start_time" validate:"required,clocktime"`      // Format: HH:MM
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=1"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID                    `json:"id"`
	OrganizationID     uuid.UUID                    `json:"organization_id"`
	ProfessionalID     uuid.UUID                    `json:"professional_id"`
	Professional       *ProfessionalProfileResponse `json:"professional,omitempty"`
	PatientID          uuid.UUID                    `json:"patient_id"`
	ServiceID          *uuid.UUID                   `json:"service_id,omitempty"`
	Service            *ServiceOfferingResponse     `json:"service,omitempty"`
	StartAt            time.Time                    `json:"start_at"`
	EndAt              time.Time                    `json:"end_at"`
	Status             string                       `json:"status"`
	CancellationReason *string                      `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time                    `json:"created_at"`
	UpdatedAt          time.Time                    `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

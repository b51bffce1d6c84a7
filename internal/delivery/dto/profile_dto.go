package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateProfessionalRequest struct {
	FullName  string `json:"full_name" validate:"omitempty,min=2"`
	Specialty string `json:"specialty" validate:"omitempty"`
	Biography string `json:"biography" validate:"omitempty"`
}

type UpdatePatientProfileRequest struct {
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Address     string `json:"address" validate:"omitempty"`
}

// Response DTOs

type ProfessionalProfileResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	FullName       string    `json:"full_name,omitempty"`
	Email          string    `json:"email,omitempty"`
	LicenseNumber  string    `json:"license_number"`
	Specialty      string    `json:"specialty"`
	Biography      string    `json:"biography,omitempty"`
}

type ProfessionalListResponse struct {
	Professionals []ProfessionalProfileResponse `json:"professionals"`
	Total         int                           `json:"total"`
}

type PatientProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Address     string    `json:"address,omitempty"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterPatientRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Password       string    `json:"password" validate:"required,min=6"`
	FullName       string    `json:"full_name" validate:"required,min=2"`
	PhoneNumber    string    `json:"phone_number" validate:"omitempty,min=10,max=20"`
	DateOfBirth    string    `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender         string    `json:"gender" validate:"required,oneof=M F"`
	Address        string    `json:"address" validate:"omitempty"`
}

type RegisterProfessionalRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Password       string    `json:"password" validate:"required,min=6"`
	FullName       string    `json:"full_name" validate:"required,min=2"`
	LicenseNumber  string    `json:"license_number" validate:"required"`
	Specialty      string    `json:"specialty" validate:"required"`
	Biography      string    `json:"biography" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID                  uuid.UUID                    `json:"id"`
	OrganizationID      uuid.UUID                    `json:"organization_id"`
	Email               string                       `json:"email"`
	FullName            string                       `json:"full_name"`
	Role                string                       `json:"role"`
	ProfessionalProfile *ProfessionalProfileResponse `json:"professional_profile,omitempty"`
	PatientProfile      *PatientProfileResponse      `json:"patient_profile,omitempty"`
	CreatedAt           time.Time                    `json:"created_at"`
	UpdatedAt           time.Time                    `json:"updated_at"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateServiceOfferingRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	Description     string `json:"description" validate:"omitempty"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=5"`
	Price           string `json:"price" validate:"required"`
}

type UpdateServiceOfferingRequest struct {
	Name            string `json:"name" validate:"omitempty,min=2"`
	Description     string `json:"description" validate:"omitempty"`
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,min=5"`
	Price           string `json:"price" validate:"omitempty"`
	Active          *bool  `json:"active" validate:"omitempty"`
}

// Response DTOs

type ServiceOfferingResponse struct {
	ID              uuid.UUID `json:"id"`
	OrganizationID  uuid.UUID `json:"organization_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           string    `json:"price"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ServiceOfferingListResponse struct {
	Services []ServiceOfferingResponse `json:"services"`
	Total    int                       `json:"total"`
}

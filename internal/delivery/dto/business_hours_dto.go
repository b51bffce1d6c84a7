package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBusinessHoursRequest struct {
	Weekday   *int   `json:"weekday" validate:"required,min=0,max=6"` // time.Weekday, Sunday = 0
	StartTime string `json:"start_time" validate:"required,clocktime"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required,clocktime"`   // Format: HH:MM
	Enabled   *bool  `json:"enabled" validate:"omitempty"`
}

type UpdateBusinessHoursRequest struct {
	StartTime string `json:"start_time" validate:"omitempty,clocktime"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"omitempty,clocktime"`   // Format: HH:MM
	Enabled   *bool  `json:"enabled" validate:"omitempty"`
}

// Response DTOs

type BusinessHoursResponse struct {
	ID             int       `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Weekday        int       `json:"weekday"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Enabled        bool      `json:"enabled"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BusinessHoursListResponse struct {
	Hours []BusinessHoursResponse `json:"hours"`
	Total int                     `json:"total"`
}

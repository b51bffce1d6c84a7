package dto

import (
	"github.com/google/uuid"
)

// SlotResponse is one grid entry in an availability response. Every grid
// point of the day window appears exactly once, whatever its status.
type SlotResponse struct {
	Time   string `json:"time"` // Format: HH:MM
	Status string `json:"status"`
}

type AvailabilityResponse struct {
	ProfessionalID  uuid.UUID      `json:"professional_id"`
	Date            string         `json:"date"` // Format: YYYY-MM-DD
	DurationMinutes int            `json:"duration_minutes"`
	Slots           []SlotResponse `json:"slots"`
	Total           int            `json:"total"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// BusinessHours represents an organization's opening window for one weekday.
// Weekday follows time.Weekday numbering (Sunday = 0).
type BusinessHours struct {
	ID             int          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrganizationID uuid.UUID    `gorm:"type:uuid;not null;index:idx_business_hours_org_weekday" json:"organization_id"`
	Weekday        time.Weekday `gorm:"not null;index:idx_business_hours_org_weekday" json:"weekday"`
	StartTime      string       `gorm:"type:time;not null" json:"start_time"` // Format: HH:MM
	EndTime        string       `gorm:"type:time;not null" json:"end_time"`   // Format: HH:MM
	Enabled        bool         `gorm:"not null;default:true" json:"enabled"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BusinessHours) TableName() string {
	return "business_hours"
}

// Covers reports whether the clock time falls inside the opening window.
// A nil receiver means no schedule is configured for the weekday, so nothing
// is in hours. The window is half-open: a slot starting exactly at closing
// time is outside.
func (h *BusinessHours) Covers(t ClockTime) bool {
	if h == nil || !h.Enabled {
		return false
	}
	start, err := ParseClockTime(h.StartTime)
	if err != nil {
		return false
	}
	end, err := ParseClockTime(h.EndTime)
	if err != nil {
		return false
	}
	return start <= t && t < end
}

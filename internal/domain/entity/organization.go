package entity

import (
	"time"

	"github.com/google/uuid"
)

// Organization owns business hours, service offerings and appointments.
// Organization management itself lives outside this service; the row exists
// so foreign keys have somewhere to point.
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	BusinessHours []BusinessHours   `gorm:"foreignKey:OrganizationID" json:"business_hours,omitempty"`
	Services      []ServiceOffering `gorm:"foreignKey:OrganizationID" json:"services,omitempty"`
}

func (Organization) TableName() string {
	return "organizations"
}

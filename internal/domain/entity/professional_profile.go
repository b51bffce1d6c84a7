package entity

import "github.com/google/uuid"

// ProfessionalProfile represents professional-specific profile data
type ProfessionalProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	LicenseNumber  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialty      string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Biography      string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:ProfessionalID" json:"appointments,omitempty"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}

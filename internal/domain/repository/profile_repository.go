package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalProfileRepository interface {
	Create(db *gorm.DB, profile *entity.ProfessionalProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error)
	FindAllByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.ProfessionalProfile, error)
	Update(db *gorm.DB, profile *entity.ProfessionalProfile) error
}

type PatientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	Update(db *gorm.DB, profile *entity.PatientProfile) error
}

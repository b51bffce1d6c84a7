package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceOfferingRepository interface {
	Create(db *gorm.DB, service *entity.ServiceOffering) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ServiceOffering, error)
	FindAllByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.ServiceOffering, error)
	// FindActiveByOrganization lists only offerings currently open for booking.
	FindActiveByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.ServiceOffering, error)
	Update(db *gorm.DB, service *entity.ServiceOffering) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

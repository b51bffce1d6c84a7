package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceOfferingRepository struct{}

func NewServiceOfferingRepository() domainRepo.ServiceOfferingRepository {
	return &serviceOfferingRepository{}
}

func (r *serviceOfferingRepository) Create(db *gorm.DB, service *entity.ServiceOffering) error {
	return db.Create(service).Error
}

func (r *serviceOfferingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ServiceOffering, error) {
	var service entity.ServiceOffering
	err := db.Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceOfferingRepository) FindAllByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.ServiceOffering, error) {
	var services []entity.ServiceOffering
	err := db.
		Where("organization_id = ?", organizationID).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceOfferingRepository) FindActiveByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.ServiceOffering, error) {
	var services []entity.ServiceOffering
	err := db.
		Where("organization_id = ? AND active = ?", organizationID, true).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceOfferingRepository) Update(db *gorm.DB, service *entity.ServiceOffering) error {
	return db.Save(service).Error
}

func (r *serviceOfferingRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.ServiceOffering{})
	return result.RowsAffected, result.Error
}

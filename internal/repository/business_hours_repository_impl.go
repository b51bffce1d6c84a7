package repository

import (
	"errors"
	"time"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type businessHoursRepository struct{}

func NewBusinessHoursRepository() domainRepo.BusinessHoursRepository {
	return &businessHoursRepository{}
}

func (r *businessHoursRepository) Create(db *gorm.DB, hours *entity.BusinessHours) error {
	return db.Create(hours).Error
}

func (r *businessHoursRepository) FindByID(db *gorm.DB, id int) (*entity.BusinessHours, error) {
	var hours entity.BusinessHours
	err := db.Where("id = ?", id).First(&hours).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hours, nil
}

// FindEnabledByWeekday picks the lowest-id enabled row so duplicate weekday
// configurations resolve deterministically.
func (r *businessHoursRepository) FindEnabledByWeekday(db *gorm.DB, organizationID uuid.UUID, weekday time.Weekday) (*entity.BusinessHours, error) {
	var hours entity.BusinessHours
	err := db.
		Where("organization_id = ? AND weekday = ? AND enabled = ?", organizationID, int(weekday), true).
		Order("id ASC").
		First(&hours).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hours, nil
}

func (r *businessHoursRepository) FindAllByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.BusinessHours, error) {
	var hours []entity.BusinessHours
	err := db.
		Where("organization_id = ?", organizationID).
		Order("weekday ASC, start_time ASC").
		Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *businessHoursRepository) Update(db *gorm.DB, hours *entity.BusinessHours) error {
	return db.Save(hours).Error
}

func (r *businessHoursRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.BusinessHours{})
	return result.RowsAffected, result.Error
}

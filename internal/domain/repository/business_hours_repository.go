package repository

import (
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessHoursRepository interface {
	Create(db *gorm.DB, hours *entity.BusinessHours) error
	FindByID(db *gorm.DB, id int) (*entity.BusinessHours, error)
	// FindEnabledByWeekday returns the enabled window for the weekday, or nil
	// when none is configured. If duplicates exist the lowest-id row wins.
	FindEnabledByWeekday(db *gorm.DB, organizationID uuid.UUID, weekday time.Weekday) (*entity.BusinessHours, error)
	FindAllByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.BusinessHours, error)
	Update(db *gorm.DB, hours *entity.BusinessHours) error
	Delete(db *gorm.DB, id int) (int64, error)
}

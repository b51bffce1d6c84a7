package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB) ([]entity.AuditLog, error)
	// FindByEntity returns the trail for one record, newest first, so an
	// appointment's full lifecycle history can be pulled in one call.
	FindByEntity(db *gorm.DB, entityName, entityID string) ([]entity.AuditLog, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
}

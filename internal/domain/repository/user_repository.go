package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
}

type RoleRepository interface {
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
}

type OrganizationRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Organization, error)
}

package usecase

import (
	"context"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProfessionalUsecase interface {
	GetProfessional(ctx context.Context, id uuid.UUID) (*dto.ProfessionalProfileResponse, error)
	GetAllProfessionals(ctx context.Context, organizationID uuid.UUID) (*dto.ProfessionalListResponse, error)
	// UpdateProfessional edits the profile. callerID must be the professional
	// themselves unless the caller is an admin, which the handler enforces via
	// role middleware before delegating here.
	UpdateProfessional(ctx context.Context, callerID uuid.UUID, id uuid.UUID, request *dto.UpdateProfessionalRequest) (*dto.ProfessionalProfileResponse, error)
}

type professionalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	professionalRepo repository.ProfessionalProfileRepository
	userRepo         repository.UserRepository
	auditService     service.AuditService
}

func NewProfessionalUsecase(db *gorm.DB, log *logrus.Logger, professionalRepo repository.ProfessionalProfileRepository, userRepo repository.UserRepository, auditService service.AuditService) ProfessionalUsecase {
	return &professionalUsecase{
		db:               db,
		log:              log,
		professionalRepo: professionalRepo,
		userRepo:         userRepo,
		auditService:     auditService,
	}
}

func (u *professionalUsecase) GetProfessional(ctx context.Context, id uuid.UUID) (*dto.ProfessionalProfileResponse, error) {
	db := u.db.WithContext(ctx)

	professional, err := u.professionalRepo.FindByUserID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional: %+v", err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	return converter.ProfessionalProfileToResponse(professional), nil
}

func (u *professionalUsecase) GetAllProfessionals(ctx context.Context, organizationID uuid.UUID) (*dto.ProfessionalListResponse, error) {
	db := u.db.WithContext(ctx)

	professionals, err := u.professionalRepo.FindAllByOrganization(db, organizationID)
	if err != nil {
		u.log.Warnf("Failed to list professionals: %+v", err)
		return nil, err
	}

	return &dto.ProfessionalListResponse{
		Professionals: converter.ProfessionalProfilesToResponses(professionals),
		Total:         len(professionals),
	}, nil
}

func (u *professionalUsecase) UpdateProfessional(ctx context.Context, callerID uuid.UUID, id uuid.UUID, request *dto.UpdateProfessionalRequest) (*dto.ProfessionalProfileResponse, error) {
	db := u.db.WithContext(ctx)

	professional, err := u.professionalRepo.FindByUserID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional: %+v", err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	previous := *professional
	if request.Specialty != "" {
		professional.Specialty = request.Specialty
	}
	if request.Biography != "" {
		professional.Biography = request.Biography
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.professionalRepo.Update(tx, professional); err != nil {
		u.log.Warnf("Failed to update professional: %+v", err)
		return nil, err
	}

	if request.FullName != "" {
		user, err := u.userRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find user: %+v", err)
			return nil, err
		}
		if user != nil {
			user.FullName = request.FullName
			if err := u.userRepo.Update(tx, user); err != nil {
				u.log.Warnf("Failed to update user name: %+v", err)
				return nil, err
			}
			professional.User = *user
		}
	}

	if err := u.auditService.LogUpdate(ctx, tx, &callerID, entity.AuditActionProfessionalUpdate, "professional_profile", id.String(), previous, professional); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit professional update: %+v", err)
		return nil, err
	}

	return converter.ProfessionalProfileToResponse(professional), nil
}

package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidPrice = errors.New("invalid price format")

type ServiceOfferingUsecase interface {
	CreateService(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, request *dto.CreateServiceOfferingRequest) (*dto.ServiceOfferingResponse, error)
	GetService(ctx context.Context, id uuid.UUID) (*dto.ServiceOfferingResponse, error)
	GetActiveServices(ctx context.Context, organizationID uuid.UUID) (*dto.ServiceOfferingListResponse, error)
	UpdateService(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, id uuid.UUID, request *dto.UpdateServiceOfferingRequest) (*dto.ServiceOfferingResponse, error)
	DeactivateService(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, id uuid.UUID) error
}

type serviceOfferingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceOfferingRepository
	auditService service.AuditService
}

func NewServiceOfferingUsecase(db *gorm.DB, log *logrus.Logger, serviceRepo repository.ServiceOfferingRepository, auditService service.AuditService) ServiceOfferingUsecase {
	return &serviceOfferingUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceOfferingUsecase) CreateService(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, request *dto.CreateServiceOfferingRequest) (*dto.ServiceOfferingResponse, error) {
	db := u.db.WithContext(ctx)

	price, err := decimal.NewFromString(request.Price)
	if err != nil {
		return nil, ErrInvalidPrice
	}

	offering := &entity.ServiceOffering{
		ID:              uuid.New(),
		OrganizationID:  organizationID,
		Name:            request.Name,
		Description:     request.Description,
		DurationMinutes: request.DurationMinutes,
		Price:           price,
		Active:          true,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.serviceRepo.Create(tx, offering); err != nil {
		u.log.Warnf("Failed to create service offering: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &callerID, entity.AuditActionServiceOfferingCreate, "service_offering", offering.ID.String(), offering); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit service offering creation: %+v", err)
		return nil, err
	}

	return converter.ServiceOfferingToResponse(offering), nil
}

func (u *serviceOfferingUsecase) GetService(ctx context.Context, id uuid.UUID) (*dto.ServiceOfferingResponse, error) {
	db := u.db.WithContext(ctx)

	offering, err := u.serviceRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find service offering: %+v", err)
		return nil, err
	}
	if offering == nil {
		return nil, ErrServiceNotFound
	}

	return converter.ServiceOfferingToResponse(offering), nil
}

func (u *serviceOfferingUsecase) GetActiveServices(ctx context.Context, organizationID uuid.UUID) (*dto.ServiceOfferingListResponse, error) {
	db := u.db.WithContext(ctx)

	offerings, err := u.serviceRepo.FindActiveByOrganization(db, organizationID)
	if err != nil {
		u.log.Warnf("Failed to list service offerings: %+v", err)
		return nil, err
	}

	return &dto.ServiceOfferingListResponse{
		Services: converter.ServiceOfferingsToResponses(offerings),
		Total:    len(offerings),
	}, nil
}

func (u *serviceOfferingUsecase) UpdateService(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, id uuid.UUID, request *dto.UpdateServiceOfferingRequest) (*dto.ServiceOfferingResponse, error) {
	db := u.db.WithContext(ctx)

	offering, err := u.serviceRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find service offering: %+v", err)
		return nil, err
	}
	if offering == nil || offering.OrganizationID != organizationID {
		return nil, ErrServiceNotFound
	}

	previous := *offering
	if request.Name != "" {
		offering.Name = request.Name
	}
	if request.Description != "" {
		offering.Description = request.Description
	}
	if request.DurationMinutes != nil {
		offering.DurationMinutes = *request.DurationMinutes
	}
	if request.Price != "" {
		price, err := decimal.NewFromString(request.Price)
		if err != nil {
			return nil, ErrInvalidPrice
		}
		offering.Price = price
	}
	if request.Active != nil {
		offering.Active = *request.Active
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.serviceRepo.Update(tx, offering); err != nil {
		u.log.Warnf("Failed to update service offering: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &callerID, entity.AuditActionServiceOfferingUpdate, "service_offering", id.String(), previous, offering); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit service offering update: %+v", err)
		return nil, err
	}

	return converter.ServiceOfferingToResponse(offering), nil
}

// DeactivateService retires an offering from booking without touching
// appointments that already reference it.
func (u *serviceOfferingUsecase) DeactivateService(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, id uuid.UUID) error {
	db := u.db.WithContext(ctx)

	offering, err := u.serviceRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find service offering: %+v", err)
		return err
	}
	if offering == nil || offering.OrganizationID != organizationID {
		return ErrServiceNotFound
	}

	offering.Active = false

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.serviceRepo.Update(tx, offering); err != nil {
		u.log.Warnf("Failed to deactivate service offering: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &callerID, entity.AuditActionServiceOfferingDelete, "service_offering", id.String(), offering); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit service offering deactivation: %+v", err)
		return err
	}

	return nil
}

package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBusinessHoursNotFound = errors.New("business hours not found")
	ErrInvalidHoursWindow    = errors.New("business hours window is invalid")
)

type BusinessHoursUsecase interface {
	CreateHours(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, request *dto.CreateBusinessHoursRequest) (*dto.BusinessHoursResponse, error)
	GetHours(ctx context.Context, organizationID uuid.UUID) (*dto.BusinessHoursListResponse, error)
	UpdateHours(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, id int, request *dto.UpdateBusinessHoursRequest) (*dto.BusinessHoursResponse, error)
	DeleteHours(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, id int) error
}

type businessHoursUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hoursRepo    repository.BusinessHoursRepository
	auditService service.AuditService
}

func NewBusinessHoursUsecase(db *gorm.DB, log *logrus.Logger, hoursRepo repository.BusinessHoursRepository, auditService service.AuditService) BusinessHoursUsecase {
	return &businessHoursUsecase{
		db:           db,
		log:          log,
		hoursRepo:    hoursRepo,
		auditService: auditService,
	}
}

func (u *businessHoursUsecase) CreateHours(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, request *dto.CreateBusinessHoursRequest) (*dto.BusinessHoursResponse, error) {
	db := u.db.WithContext(ctx)

	if err := validateWindow(request.StartTime, request.EndTime); err != nil {
		return nil, err
	}

	enabled := true
	if request.Enabled != nil {
		enabled = *request.Enabled
	}

	hours := &entity.BusinessHours{
		OrganizationID: organizationID,
		Weekday:        time.Weekday(*request.Weekday),
		StartTime:      request.StartTime,
		EndTime:        request.EndTime,
		Enabled:        enabled,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.hoursRepo.Create(tx, hours); err != nil {
		u.log.Warnf("Failed to create business hours: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &callerID, entity.AuditActionBusinessHoursCreate, "business_hours", strconv.Itoa(hours.ID), hours); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit business hours creation: %+v", err)
		return nil, err
	}

	return converter.BusinessHoursToResponse(hours), nil
}

func (u *businessHoursUsecase) GetHours(ctx context.Context, organizationID uuid.UUID) (*dto.BusinessHoursListResponse, error) {
	db := u.db.WithContext(ctx)

	hours, err := u.hoursRepo.FindAllByOrganization(db, organizationID)
	if err != nil {
		u.log.Warnf("Failed to list business hours: %+v", err)
		return nil, err
	}

	return &dto.BusinessHoursListResponse{
		Hours: converter.BusinessHoursListToResponses(hours),
		Total: len(hours),
	}, nil
}

func (u *businessHoursUsecase) UpdateHours(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, id int, request *dto.UpdateBusinessHoursRequest) (*dto.BusinessHoursResponse, error) {
	db := u.db.WithContext(ctx)

	hours, err := u.hoursRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find business hours: %+v", err)
		return nil, err
	}
	if hours == nil || hours.OrganizationID != organizationID {
		return nil, ErrBusinessHoursNotFound
	}

	previous := *hours
	if request.StartTime != "" {
		hours.StartTime = request.StartTime
	}
	if request.EndTime != "" {
		hours.EndTime = request.EndTime
	}
	if request.Enabled != nil {
		hours.Enabled = *request.Enabled
	}

	if err := validateWindow(hours.StartTime, hours.EndTime); err != nil {
		return nil, err
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.hoursRepo.Update(tx, hours); err != nil {
		u.log.Warnf("Failed to update business hours: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &callerID, entity.AuditActionBusinessHoursUpdate, "business_hours", strconv.Itoa(id), previous, hours); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit business hours update: %+v", err)
		return nil, err
	}

	return converter.BusinessHoursToResponse(hours), nil
}

func (u *businessHoursUsecase) DeleteHours(ctx context.Context, callerID uuid.UUID, organizationID uuid.UUID, id int) error {
	db := u.db.WithContext(ctx)

	hours, err := u.hoursRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find business hours: %+v", err)
		return err
	}
	if hours == nil || hours.OrganizationID != organizationID {
		return ErrBusinessHoursNotFound
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.hoursRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete business hours: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrBusinessHoursNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &callerID, entity.AuditActionBusinessHoursDelete, "business_hours", strconv.Itoa(id), hours); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit business hours deletion: %+v", err)
		return err
	}

	return nil
}

// validateWindow requires both bounds to parse as HH:MM with start strictly
// before end. Windows spanning midnight are not supported.
func validateWindow(startTime, endTime string) error {
	start, err := entity.ParseClockTime(startTime)
	if err != nil {
		return ErrInvalidHoursWindow
	}
	end, err := entity.ParseClockTime(endTime)
	if err != nil {
		return ErrInvalidHoursWindow
	}
	if end <= start {
		return ErrInvalidHoursWindow
	}
	return nil
}

package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientProfileNotFound = errors.New("patient profile not found")

type PatientProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, request *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
}

type patientProfileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientProfileRepository
}

func NewPatientProfileUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientProfileRepository) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientProfileUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.patientRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientProfileNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientProfileUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, request *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.patientRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientProfileNotFound
	}

	if request.PhoneNumber != "" {
		profile.PhoneNumber = request.PhoneNumber
	}
	if request.Address != "" {
		profile.Address = request.Address
	}

	if err := u.patientRepo.Update(db, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

package usecase

import (
	"context"
	"errors"
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
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrServiceNotFound      = errors.New("service not found")
)

// DefaultDurationMinutes applies when neither the caller nor a selected
// service supplies an appointment length.
const DefaultDurationMinutes = 60

type AvailabilityUsecase interface {
	// ComputeAvailability classifies every grid slot of the configured day
	// window for the professional and date. When serviceID is set the
	// service's configured duration wins over durationMinutes.
	ComputeAvailability(ctx context.Context, professionalID uuid.UUID, date time.Time, durationMinutes int, serviceID *uuid.UUID) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	grid             *service.SlotGrid
	professionalRepo repository.ProfessionalProfileRepository
	hoursRepo        repository.BusinessHoursRepository
	appointmentRepo  repository.AppointmentRepository
	serviceRepo      repository.ServiceOfferingRepository
	cache            *service.AvailabilityCache
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	grid *service.SlotGrid,
	professionalRepo repository.ProfessionalProfileRepository,
	hoursRepo repository.BusinessHoursRepository,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceOfferingRepository,
	cache *service.AvailabilityCache,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		grid:             grid,
		professionalRepo: professionalRepo,
		hoursRepo:        hoursRepo,
		appointmentRepo:  appointmentRepo,
		serviceRepo:      serviceRepo,
		cache:            cache,
	}
}

func (u *availabilityUsecase) ComputeAvailability(ctx context.Context, professionalID uuid.UUID, date time.Time, durationMinutes int, serviceID *uuid.UUID) (*dto.AvailabilityResponse, error) {
	db := u.db.WithContext(ctx)

	professional, err := u.professionalRepo.FindByUserID(db, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", professionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	duration, err := u.resolveDuration(db, professional.OrganizationID, serviceID, durationMinutes)
	if err != nil {
		return nil, err
	}

	day := startOfDay(date)

	if u.cache != nil {
		if slots, ok := u.cache.Get(ctx, professionalID, day, duration); ok {
			return availabilityResponse(professionalID, day, duration, slots), nil
		}
	}

	slots, err := u.computeSlots(db, professional, day, duration)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		u.cache.Set(ctx, professionalID, day, duration, slots)
	}

	return availabilityResponse(professionalID, day, duration, slots), nil
}

// computeSlots walks the full grid once over a single day snapshot of active
// appointments. Every grid point gets exactly one entry; nothing is omitted,
// so callers can render out-of-hours slots instead of guessing at gaps.
func (u *availabilityUsecase) computeSlots(db *gorm.DB, professional *entity.ProfessionalProfile, day time.Time, durationMinutes int) ([]entity.Slot, error) {
	hours, err := u.hoursRepo.FindEnabledByWeekday(db, professional.OrganizationID, day.Weekday())
	if err != nil {
		u.log.Warnf("Failed to load business hours: %+v", err)
		return nil, err
	}

	// One snapshot covers every candidate; the window is padded by the
	// duration because the last grid slot's interval can spill past midnight.
	rangeStart := day
	rangeEnd := day.AddDate(0, 0, 1).Add(time.Duration(durationMinutes) * time.Minute)
	active, err := u.appointmentRepo.ListActiveForProfessional(db, &entity.AppointmentFilter{
		ProfessionalID: professional.UserID,
		RangeStart:     &rangeStart,
		RangeEnd:       &rangeEnd,
	})
	if err != nil {
		u.log.Warnf("Failed to list active appointments: %+v", err)
		return nil, err
	}

	slots := make([]entity.Slot, 0, u.grid.Len())
	for t := range u.grid.Times() {
		start := t.At(day)
		candidate, err := entity.NewTimeInterval(start, start.Add(time.Duration(durationMinutes)*time.Minute))
		if err != nil {
			return nil, err
		}

		// Booked wins over hours: a slot taken by an out-of-hours exception
		// appointment is still not offerable and must read as booked.
		status := entity.SlotStatusOutsideHours
		switch {
		case service.FirstConflict(active, candidate, nil) != nil:
			status = entity.SlotStatusBooked
		case hours.Covers(t):
			status = entity.SlotStatusAvailable
		}

		slots = append(slots, entity.Slot{
			Time:   t,
			Label:  t.String(),
			Status: status,
		})
	}

	return slots, nil
}

// resolveDuration mirrors the booking path: an offering only drives the grid
// when it belongs to the professional's organization and is still active.
func (u *availabilityUsecase) resolveDuration(db *gorm.DB, organizationID uuid.UUID, serviceID *uuid.UUID, durationMinutes int) (int, error) {
	if serviceID != nil {
		offering, err := u.serviceRepo.FindByID(db, *serviceID)
		if err != nil {
			u.log.Warnf("Failed to find service %s: %+v", *serviceID, err)
			return 0, err
		}
		if offering == nil || offering.OrganizationID != organizationID || !offering.Active {
			return 0, ErrServiceNotFound
		}
		return offering.DurationMinutes, nil
	}
	if durationMinutes > 0 {
		return durationMinutes, nil
	}
	return DefaultDurationMinutes, nil
}

func availabilityResponse(professionalID uuid.UUID, day time.Time, durationMinutes int, slots []entity.Slot) *dto.AvailabilityResponse {
	return &dto.AvailabilityResponse{
		ProfessionalID:  professionalID,
		Date:            day.Format("2006-01-02"),
		DurationMinutes: durationMinutes,
		Slots:           converter.SlotsToResponses(slots),
		Total:           len(slots),
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

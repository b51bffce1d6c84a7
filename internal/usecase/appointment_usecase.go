package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotUnavailable     = errors.New("requested slot overlaps an existing appointment")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrNotAppointmentOwner = errors.New("appointment does not belong to this user")
	ErrInvalidSchedule     = errors.New("invalid appointment date or time")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, patientID uuid.UUID, request *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID, request *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	ConfirmAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID, request *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	professionalRepo repository.ProfessionalProfileRepository
	serviceRepo      repository.ServiceOfferingRepository
	conflictChecker  *service.ConflictChecker
	auditService     service.AuditService
	cache            *service.AvailabilityCache
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	professionalRepo repository.ProfessionalProfileRepository,
	serviceRepo repository.ServiceOfferingRepository,
	conflictChecker *service.ConflictChecker,
	auditService service.AuditService,
	cache *service.AvailabilityCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		serviceRepo:      serviceRepo,
		conflictChecker:  conflictChecker,
		auditService:     auditService,
		cache:            cache,
	}
}

// CreateAppointment books a new pending appointment. The overlap check and the
// insert run in one transaction, which gives a clean error for the common
// case; under READ COMMITTED that alone does not stop two concurrent requests
// from both passing the check, so the appointments_no_overlap exclusion
// constraint rejects the second insert and is mapped to the same
// ErrSlotUnavailable. When the request replaces an existing appointment, the
// old one is marked rescheduled in that same transaction and excluded from the
// overlap check, so booking the neighbouring slot of your own appointment works.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, request *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	professional, err := u.professionalRepo.FindByUserID(db, request.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional: %+v", err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	duration, err := u.resolveDuration(db, professional.OrganizationID, request.ServiceID, request.DurationMinutes)
	if err != nil {
		return nil, err
	}

	day, interval, err := buildInterval(request.Date, request.StartTime, duration)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	defer tx.Rollback()

	var previous *entity.Appointment
	if request.ReplacesAppointmentID != nil {
		previous, err = u.appointmentRepo.FindByID(tx, *request.ReplacesAppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment to replace: %+v", err)
			return nil, err
		}
		if previous == nil {
			return nil, ErrAppointmentNotFound
		}
		if previous.PatientID != patientID {
			return nil, ErrNotAppointmentOwner
		}
		if !previous.Status.CanTransitionTo(entity.AppointmentStatusRescheduled) {
			return nil, ErrInvalidTransition
		}
	}

	conflict, err := u.conflictChecker.FindConflict(tx, request.ProfessionalID, interval, request.ReplacesAppointmentID)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotUnavailable
	}

	// The old appointment leaves the exclusion constraint's active set before
	// the replacement is inserted, so a replacement overlapping the slot it
	// supersedes does not trip the constraint.
	if previous != nil {
		affected, err := u.appointmentRepo.UpdateStatus(tx, previous.ID, entity.AppointmentStatusRescheduled, nil)
		if err != nil {
			u.log.Warnf("Failed to supersede appointment: %+v", err)
			return nil, err
		}
		if affected == 0 {
			return nil, ErrInvalidTransition
		}
		if err := u.auditService.LogUpdate(ctx, tx, &patientID, entity.AuditActionAppointmentSupersede, "appointment", previous.ID.String(),
			string(previous.Status), string(entity.AppointmentStatusRescheduled)); err != nil {
			return nil, err
		}
	}

	appointment := &entity.Appointment{
		ID:             uuid.New(),
		OrganizationID: professional.OrganizationID,
		ProfessionalID: request.ProfessionalID,
		PatientID:      patientID,
		ServiceID:      request.ServiceID,
		StartAt:        interval.Start,
		EndAt:          interval.End,
		Status:         entity.AppointmentStatusPending,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isOverlapViolation(err) {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment creation: %+v", err)
		return nil, err
	}

	u.invalidateCache(ctx, request.ProfessionalID, day, previous)

	return u.respond(db, appointment.ID)
}

// RescheduleAppointment moves an appointment in place to a new interval. The
// appointment keeps its identity and status; only the time range changes. The
// conflict check excludes the appointment itself.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID, request *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !canModify(appointment, callerID, roleID) {
		return nil, ErrNotAppointmentOwner
	}
	if appointment.Status.IsTerminal() {
		return nil, ErrInvalidTransition
	}

	duration := request.DurationMinutes
	if duration <= 0 {
		duration = int(appointment.Interval().Duration().Minutes())
	}

	day, interval, err := buildInterval(request.Date, request.StartTime, duration)
	if err != nil {
		return nil, err
	}
	previousDay := startOfDay(appointment.StartAt)

	tx := db.Begin()
	defer tx.Rollback()

	conflict, err := u.conflictChecker.FindConflict(tx, appointment.ProfessionalID, interval, &appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotUnavailable
	}

	oldInterval := appointment.Interval()
	appointment.StartAt = interval.Start
	appointment.EndAt = interval.End
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isOverlapViolation(err) {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to reschedule appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &callerID, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID.String(), oldInterval, interval); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit reschedule: %+v", err)
		return nil, err
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, appointment.ProfessionalID, previousDay, day)
	}

	return u.respond(db, appointment.ID)
}

func (u *appointmentUsecase) ConfirmAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, callerID, roleID, id, entity.AppointmentStatusConfirmed, entity.AuditActionAppointmentConfirm, nil, false)
}

func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, callerID, roleID, id, entity.AppointmentStatusCompleted, entity.AuditActionAppointmentComplete, nil, false)
}

// CancelAppointment releases the slot. A reason is always recorded.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID, request *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, callerID, roleID, id, entity.AppointmentStatusCancelled, entity.AuditActionAppointmentCancel, &request.Reason, true)
}

// MarkNoShow releases the slot like a cancellation but records that the
// patient did not arrive.
func (u *appointmentUsecase) MarkNoShow(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, callerID, roleID, id, entity.AppointmentStatusNoShow, entity.AuditActionAppointmentNoShow, nil, true)
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !canModify(appointment, callerID, roleID) {
		return nil, ErrNotAppointmentOwner
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	appointments, err := u.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// transition applies one lifecycle move. The legality check runs twice: once
// on the loaded row for a clean error, and again inside the row-level guard of
// UpdateStatus, which catches a racing transition between the two.
func (u *appointmentUsecase) transition(ctx context.Context, callerID uuid.UUID, roleID int, id uuid.UUID, target entity.AppointmentStatus, auditAction string, reason *string, releasesSlot bool) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !canModify(appointment, callerID, roleID) {
		return nil, ErrNotAppointmentOwner
	}
	if !appointment.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatus(tx, id, target, reason)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, &callerID, auditAction, "appointment", id.String(), string(appointment.Status), string(target)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit status change: %+v", err)
		return nil, err
	}

	if releasesSlot && u.cache != nil {
		u.cache.Invalidate(ctx, appointment.ProfessionalID, startOfDay(appointment.StartAt))
	}

	return u.respond(db, id)
}

func (u *appointmentUsecase) resolveDuration(db *gorm.DB, organizationID uuid.UUID, serviceID *uuid.UUID, durationMinutes int) (int, error) {
	if serviceID != nil {
		offering, err := u.serviceRepo.FindByID(db, *serviceID)
		if err != nil {
			u.log.Warnf("Failed to find service: %+v", err)
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

func (u *appointmentUsecase) respond(db *gorm.DB, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) invalidateCache(ctx context.Context, professionalID uuid.UUID, day time.Time, previous *entity.Appointment) {
	if u.cache == nil {
		return
	}
	days := []time.Time{day}
	if previous != nil {
		previousDay := startOfDay(previous.StartAt)
		if !previousDay.Equal(day) {
			days = append(days, previousDay)
		}
	}
	u.cache.Invalidate(ctx, professionalID, days...)
}

// isOverlapViolation checks if the error is the appointments_no_overlap
// exclusion constraint rejecting a write. That constraint fires when a
// concurrent booking slipped between this transaction's overlap check and its
// insert; the caller reports it exactly like a conflict seen up front.
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23P01 = exclusion_violation
		return pgErr.Code == "23P01" && strings.EqualFold(pgErr.ConstraintName, "appointments_no_overlap")
	}
	return false
}

// canModify limits appointment access to its patient, its professional, and
// admins. Role gating on endpoints happens in middleware; this is the per-row
// ownership check.
func canModify(appointment *entity.Appointment, callerID uuid.UUID, roleID int) bool {
	if roleID == entity.RoleIDAdmin {
		return true
	}
	return appointment.PatientID == callerID || appointment.ProfessionalID == callerID
}

// buildInterval combines a calendar date and a wall-clock start time with a
// duration into a concrete half-open interval, plus the midnight anchor of the
// date for cache keying.
func buildInterval(date string, startTime string, durationMinutes int) (time.Time, entity.TimeInterval, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, entity.TimeInterval{}, ErrInvalidSchedule
	}

	clock, err := entity.ParseClockTime(startTime)
	if err != nil {
		return time.Time{}, entity.TimeInterval{}, ErrInvalidSchedule
	}

	start := clock.At(day)
	interval, err := entity.NewTimeInterval(start, start.Add(time.Duration(durationMinutes)*time.Minute))
	if err != nil {
		return time.Time{}, entity.TimeInterval{}, ErrInvalidSchedule
	}

	return day, interval, nil
}

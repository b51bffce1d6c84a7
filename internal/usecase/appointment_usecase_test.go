package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB returns a gorm handle over sqlmock. Repository fakes ignore the
// handle, so only transaction boundaries (Begin/Commit/Rollback) reach the
// mock driver.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

type statusUpdate struct {
	id     uuid.UUID
	status entity.AppointmentStatus
	reason *string
}

// stubAppointmentRepo keeps appointments in memory with the same active-set
// and transition-guard semantics as the real repository.
type stubAppointmentRepo struct {
	appointments  map[uuid.UUID]*entity.Appointment
	lastFilter    *entity.AppointmentFilter
	statusUpdates []statusUpdate
	// forceAffected simulates a racing transition losing the row-level guard.
	forceAffected *int64
	// createErr/updateErr simulate the database rejecting a write, such as
	// the overlap exclusion constraint firing on a concurrent booking.
	createErr error
	updateErr error
}

func newStubAppointmentRepo(appointments ...*entity.Appointment) *stubAppointmentRepo {
	repo := &stubAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (s *stubAppointmentRepo) Create(db *gorm.DB, a *entity.Appointment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.appointments[a.ID] = a
	return nil
}

func (s *stubAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return s.appointments[id], nil
}

func (s *stubAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) ListActiveForProfessional(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	s.lastFilter = filter
	var out []entity.Appointment
	for _, a := range s.appointments {
		if a.ProfessionalID != filter.ProfessionalID || !a.IsActive() {
			continue
		}
		if filter.ExcludeID != nil && a.ID == *filter.ExcludeID {
			continue
		}
		if filter.RangeStart != nil && !a.EndAt.After(*filter.RangeStart) {
			continue
		}
		if filter.RangeEnd != nil && !a.StartAt.Before(*filter.RangeEnd) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *stubAppointmentRepo) Update(db *gorm.DB, a *entity.Appointment) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.appointments[a.ID] = a
	return nil
}

func (s *stubAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus, reason *string) (int64, error) {
	if s.forceAffected != nil {
		return *s.forceAffected, nil
	}
	a, ok := s.appointments[id]
	if !ok || !a.Status.CanTransitionTo(status) {
		return 0, nil
	}
	a.Status = status
	if reason != nil {
		a.CancellationReason = reason
	}
	s.statusUpdates = append(s.statusUpdates, statusUpdate{id: id, status: status, reason: reason})
	return 1, nil
}

type stubProfessionalRepo struct {
	profiles map[uuid.UUID]*entity.ProfessionalProfile
}

func newStubProfessionalRepo(profiles ...*entity.ProfessionalProfile) *stubProfessionalRepo {
	repo := &stubProfessionalRepo{profiles: map[uuid.UUID]*entity.ProfessionalProfile{}}
	for _, p := range profiles {
		repo.profiles[p.UserID] = p
	}
	return repo
}

func (s *stubProfessionalRepo) Create(db *gorm.DB, p *entity.ProfessionalProfile) error {
	s.profiles[p.UserID] = p
	return nil
}

func (s *stubProfessionalRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	return s.profiles[userID], nil
}

func (s *stubProfessionalRepo) FindAllByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.ProfessionalProfile, error) {
	var out []entity.ProfessionalProfile
	for _, p := range s.profiles {
		if p.OrganizationID == organizationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProfessionalRepo) Update(db *gorm.DB, p *entity.ProfessionalProfile) error {
	s.profiles[p.UserID] = p
	return nil
}

type stubServiceRepo struct {
	offerings map[uuid.UUID]*entity.ServiceOffering
}

func newStubServiceRepo(offerings ...*entity.ServiceOffering) *stubServiceRepo {
	repo := &stubServiceRepo{offerings: map[uuid.UUID]*entity.ServiceOffering{}}
	for _, o := range offerings {
		repo.offerings[o.ID] = o
	}
	return repo
}

func (s *stubServiceRepo) Create(db *gorm.DB, o *entity.ServiceOffering) error {
	s.offerings[o.ID] = o
	return nil
}

func (s *stubServiceRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ServiceOffering, error) {
	return s.offerings[id], nil
}

func (s *stubServiceRepo) FindAllByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.ServiceOffering, error) {
	var out []entity.ServiceOffering
	for _, o := range s.offerings {
		if o.OrganizationID == organizationID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubServiceRepo) FindActiveByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.ServiceOffering, error) {
	var out []entity.ServiceOffering
	for _, o := range s.offerings {
		if o.OrganizationID == organizationID && o.Active {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubServiceRepo) Update(db *gorm.DB, o *entity.ServiceOffering) error {
	s.offerings[o.ID] = o
	return nil
}

func (s *stubServiceRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := s.offerings[id]; !ok {
		return 0, nil
	}
	delete(s.offerings, id)
	return 1, nil
}

// stubAuditService records which actions were logged.
type stubAuditService struct {
	actions []string
}

func (s *stubAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *stubAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *stubAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

type appointmentFixture struct {
	usecase        AppointmentUsecase
	mock           sqlmock.Sqlmock
	appointments   *stubAppointmentRepo
	audit          *stubAuditService
	professionalID uuid.UUID
	patientID      uuid.UUID
	organizationID uuid.UUID
}

func newAppointmentFixture(t *testing.T, existing ...*entity.Appointment) *appointmentFixture {
	t.Helper()
	db, mock := newTestDB(t)

	organizationID := uuid.New()
	professionalID := uuid.New()
	professionalRepo := newStubProfessionalRepo(&entity.ProfessionalProfile{
		UserID:         professionalID,
		OrganizationID: organizationID,
		LicenseNumber:  "LIC-1001",
		Specialty:      "dermatology",
	})

	appointmentRepo := newStubAppointmentRepo(existing...)
	audit := &stubAuditService{}

	uc := NewAppointmentUsecase(
		db,
		logrus.New(),
		appointmentRepo,
		professionalRepo,
		newStubServiceRepo(),
		service.NewConflictChecker(appointmentRepo),
		audit,
		nil,
	)

	return &appointmentFixture{
		usecase:        uc,
		mock:           mock,
		appointments:   appointmentRepo,
		audit:          audit,
		professionalID: professionalID,
		patientID:      uuid.New(),
		organizationID: organizationID,
	}
}

func (f *appointmentFixture) existingAppointment(t *testing.T, start, end string, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	iv := mustInterval(t, "2026-03-02", start, end)
	a := &entity.Appointment{
		ID:             uuid.New(),
		OrganizationID: f.organizationID,
		ProfessionalID: f.professionalID,
		PatientID:      f.patientID,
		StartAt:        iv.Start,
		EndAt:          iv.End,
		Status:         status,
	}
	f.appointments.appointments[a.ID] = a
	return a
}

func mustInterval(t *testing.T, date, start, end string) entity.TimeInterval {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	s, err := entity.ParseClockTime(start)
	require.NoError(t, err)
	e, err := entity.ParseClockTime(end)
	require.NoError(t, err)
	iv, err := entity.NewTimeInterval(s.At(day), e.At(day))
	require.NoError(t, err)
	return iv
}

func TestCreateAppointmentBooksFreeSlot(t *testing.T) {
	f := newAppointmentFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	got, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:  f.professionalID,
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, string(entity.AppointmentStatusPending), got.Status)
	want := mustInterval(t, "2026-03-02", "10:00", "11:00")
	assert.True(t, got.StartAt.Equal(want.Start))
	assert.True(t, got.EndAt.Equal(want.End))
	assert.Equal(t, f.organizationID, got.OrganizationID)
	assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentCreate)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	f := newAppointmentFixture(t)
	f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:  f.professionalID,
		Date:            "2026-03-02",
		StartTime:       "10:30",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, f.audit.actions)
}

// The in-transaction SELECT cannot see another transaction's uncommitted
// insert, so two concurrent bookings for one slot both pass the overlap
// check. The appointments_no_overlap exclusion constraint then rejects the
// later write, and the caller must see that as an ordinary slot conflict.
func TestCreateAppointmentConcurrentWriterLosesToConstraint(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.createErr = &pgconn.PgError{
		Code:           "23P01",
		ConstraintName: "appointments_no_overlap",
	}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:  f.professionalID,
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestRescheduleAppointmentConcurrentWriterLosesToConstraint(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	f.appointments.updateErr = &pgconn.PgError{
		Code:           "23P01",
		ConstraintName: "appointments_no_overlap",
	}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.RescheduleAppointment(context.Background(), f.patientID, entity.RoleIDPatient, appt.ID, &dto.RescheduleAppointmentRequest{
		Date:      "2026-03-02",
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

// Other database failures keep passing through unmapped.
func TestCreateAppointmentUnrelatedWriteErrorPassesThrough(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.createErr = &pgconn.PgError{Code: "53300"}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:  f.professionalID,
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateAppointmentAllowsBackToBack(t *testing.T) {
	f := newAppointmentFixture(t)
	f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	got, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:  f.professionalID,
		Date:            "2026-03-02",
		StartTime:       "11:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), got.Status)
}

func TestCreateAppointmentCancelledSlotIsFree(t *testing.T) {
	f := newAppointmentFixture(t)
	f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusCancelled)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:  f.professionalID,
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	assert.NoError(t, err)
}

func TestCreateAppointmentSupersedesReplacedOne(t *testing.T) {
	f := newAppointmentFixture(t)
	previous := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	// The adjacent-overlapping slot is only free because the replaced
	// appointment is excluded from the conflict check.
	got, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:        f.professionalID,
		Date:                  "2026-03-02",
		StartTime:             "10:30",
		DurationMinutes:       60,
		ReplacesAppointmentID: &previous.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, entity.AppointmentStatusRescheduled, f.appointments.appointments[previous.ID].Status)
	assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentSupersede)
	assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentCreate)
	require.NotNil(t, f.appointments.lastFilter)
	assert.Equal(t, &previous.ID, f.appointments.lastFilter.ExcludeID)
}

func TestCreateAppointmentCannotReplaceForeignAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	previous := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	previous.PatientID = uuid.New()
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:        f.professionalID,
		Date:                  "2026-03-02",
		StartTime:             "14:00",
		DurationMinutes:       30,
		ReplacesAppointmentID: &previous.ID,
	})
	assert.ErrorIs(t, err, ErrNotAppointmentOwner)
}

func TestCreateAppointmentCannotReplaceCompletedAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	previous := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusCompleted)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID:        f.professionalID,
		Date:                  "2026-03-02",
		StartTime:             "14:00",
		DurationMinutes:       30,
		ReplacesAppointmentID: &previous.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCreateAppointmentRejectsMalformedSchedule(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID: f.professionalID,
		Date:           "02-03-2026",
		StartTime:      "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		ProfessionalID: f.professionalID,
		Date:           "2026-03-02",
		StartTime:      "25:99",
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestRescheduleAppointmentMovesInterval(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	// A neighbouring booking that must not block the move.
	f.existingAppointment(t, "09:00", "10:00", entity.AppointmentStatusConfirmed)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	got, err := f.usecase.RescheduleAppointment(context.Background(), f.patientID, entity.RoleIDPatient, appt.ID, &dto.RescheduleAppointmentRequest{
		Date:      "2026-03-02",
		StartTime: "15:00",
	})
	require.NoError(t, err)

	// Duration carries over when the request leaves it unset.
	want := mustInterval(t, "2026-03-02", "15:00", "16:00")
	assert.True(t, got.StartAt.Equal(want.Start))
	assert.True(t, got.EndAt.Equal(want.End))
	assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentReschedule)
}

func TestRescheduleAppointmentExcludesItselfFromConflictCheck(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	// Shifting half a slot overlaps its own current interval; that must not
	// count as a conflict.
	_, err := f.usecase.RescheduleAppointment(context.Background(), f.patientID, entity.RoleIDPatient, appt.ID, &dto.RescheduleAppointmentRequest{
		Date:      "2026-03-02",
		StartTime: "10:30",
	})
	require.NoError(t, err)
	require.NotNil(t, f.appointments.lastFilter)
	assert.Equal(t, &appt.ID, f.appointments.lastFilter.ExcludeID)
}

func TestRescheduleAppointmentRejectsTerminalStatus(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusCompleted)

	_, err := f.usecase.RescheduleAppointment(context.Background(), f.patientID, entity.RoleIDPatient, appt.ID, &dto.RescheduleAppointmentRequest{
		Date:      "2026-03-02",
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRescheduleAppointmentRejectsForeignCaller(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)

	_, err := f.usecase.RescheduleAppointment(context.Background(), uuid.New(), entity.RoleIDPatient, appt.ID, &dto.RescheduleAppointmentRequest{
		Date:      "2026-03-02",
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrNotAppointmentOwner)
}

func TestConfirmThenCompleteAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusPending)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	got, err := f.usecase.ConfirmAppointment(context.Background(), f.professionalID, entity.RoleIDProfessional, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), got.Status)

	got, err = f.usecase.CompleteAppointment(context.Background(), f.professionalID, entity.RoleIDProfessional, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), got.Status)
}

func TestCompleteRequiresConfirmedFirst(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusPending)

	_, err := f.usecase.CompleteAppointment(context.Background(), f.professionalID, entity.RoleIDProfessional, appt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelAppointmentStoresReason(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	got, err := f.usecase.CancelAppointment(context.Background(), f.patientID, entity.RoleIDPatient, appt.ID, &dto.CancelAppointmentRequest{
		Reason: "patient recovered",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), got.Status)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "patient recovered", *got.CancellationReason)
	assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentCancel)
}

func TestCancelTwiceFails(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusCancelled)

	_, err := f.usecase.CancelAppointment(context.Background(), f.patientID, entity.RoleIDPatient, appt.ID, &dto.CancelAppointmentRequest{
		Reason: "duplicate request",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionLostRaceSurfacesAsInvalidTransition(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusPending)
	zero := int64(0)
	f.appointments.forceAffected = &zero
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	// The in-memory check passes but the row-level guard reports another
	// writer got there first.
	_, err := f.usecase.ConfirmAppointment(context.Background(), f.professionalID, entity.RoleIDProfessional, appt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkNoShowReleasesSlot(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusConfirmed)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	got, err := f.usecase.MarkNoShow(context.Background(), f.professionalID, entity.RoleIDProfessional, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusNoShow), got.Status)
	assert.False(t, f.appointments.appointments[appt.ID].IsActive())
}

func TestAdminMayActOnAnyAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	appt := f.existingAppointment(t, "10:00", "11:00", entity.AppointmentStatusPending)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.usecase.CancelAppointment(context.Background(), uuid.New(), entity.RoleIDAdmin, appt.ID, &dto.CancelAppointmentRequest{
		Reason: "clinic closure",
	})
	assert.NoError(t, err)
}

func TestGetAppointmentUnknownID(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.GetAppointment(context.Background(), f.patientID, entity.RoleIDPatient, uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubHoursRepo struct {
	hours map[time.Weekday]*entity.BusinessHours
}

func newStubHoursRepo(hours ...*entity.BusinessHours) *stubHoursRepo {
	repo := &stubHoursRepo{hours: map[time.Weekday]*entity.BusinessHours{}}
	for _, h := range hours {
		repo.hours[h.Weekday] = h
	}
	return repo
}

func (s *stubHoursRepo) Create(db *gorm.DB, h *entity.BusinessHours) error {
	s.hours[h.Weekday] = h
	return nil
}

func (s *stubHoursRepo) FindByID(db *gorm.DB, id int) (*entity.BusinessHours, error) {
	for _, h := range s.hours {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, nil
}

func (s *stubHoursRepo) FindEnabledByWeekday(db *gorm.DB, organizationID uuid.UUID, weekday time.Weekday) (*entity.BusinessHours, error) {
	h, ok := s.hours[weekday]
	if !ok || !h.Enabled || h.OrganizationID != organizationID {
		return nil, nil
	}
	return h, nil
}

func (s *stubHoursRepo) FindAllByOrganization(db *gorm.DB, organizationID uuid.UUID) ([]entity.BusinessHours, error) {
	var out []entity.BusinessHours
	for _, h := range s.hours {
		if h.OrganizationID == organizationID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (s *stubHoursRepo) Update(db *gorm.DB, h *entity.BusinessHours) error {
	s.hours[h.Weekday] = h
	return nil
}

func (s *stubHoursRepo) Delete(db *gorm.DB, id int) (int64, error) {
	for wd, h := range s.hours {
		if h.ID == id {
			delete(s.hours, wd)
			return 1, nil
		}
	}
	return 0, nil
}

type availabilityFixture struct {
	usecase        AvailabilityUsecase
	appointments   *stubAppointmentRepo
	hours          *stubHoursRepo
	services       *stubServiceRepo
	professionalID uuid.UUID
	organizationID uuid.UUID
	day            time.Time
}

// newAvailabilityFixture wires the usecase with a 07:00-23:00 day on a
// 30-minute grid and Monday opening hours 09:00-18:00.
func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()
	db, _ := newTestDB(t)

	organizationID := uuid.New()
	professionalID := uuid.New()

	dayStart, err := entity.ParseClockTime("07:00")
	require.NoError(t, err)
	dayEnd, err := entity.ParseClockTime("23:00")
	require.NoError(t, err)
	grid, err := service.NewSlotGrid(dayStart, dayEnd, 30)
	require.NoError(t, err)

	appointments := newStubAppointmentRepo()
	hours := newStubHoursRepo(&entity.BusinessHours{
		ID:             1,
		OrganizationID: organizationID,
		Weekday:        time.Monday,
		StartTime:      "09:00",
		EndTime:        "18:00",
		Enabled:        true,
	})
	services := newStubServiceRepo()

	uc := NewAvailabilityUsecase(
		db,
		logrus.New(),
		grid,
		newStubProfessionalRepo(&entity.ProfessionalProfile{
			UserID:         professionalID,
			OrganizationID: organizationID,
			LicenseNumber:  "LIC-2001",
			Specialty:      "cardiology",
		}),
		hours,
		appointments,
		services,
		nil,
	)

	return &availabilityFixture{
		usecase:        uc,
		appointments:   appointments,
		hours:          hours,
		services:       services,
		professionalID: professionalID,
		organizationID: organizationID,
		// A Monday.
		day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func (f *availabilityFixture) book(t *testing.T, start, end string, status entity.AppointmentStatus) {
	t.Helper()
	iv := mustInterval(t, "2026-03-02", start, end)
	a := &entity.Appointment{
		ID:             uuid.New(),
		OrganizationID: f.organizationID,
		ProfessionalID: f.professionalID,
		PatientID:      uuid.New(),
		StartAt:        iv.Start,
		EndAt:          iv.End,
		Status:         status,
	}
	f.appointments.appointments[a.ID] = a
}

func slotStatuses(resp *dto.AvailabilityResponse) map[string]string {
	out := make(map[string]string, len(resp.Slots))
	for _, s := range resp.Slots {
		out[s.Time] = s.Status
	}
	return out
}

func TestComputeAvailabilityEmptyCalendar(t *testing.T) {
	f := newAvailabilityFixture(t)

	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 60, nil)
	require.NoError(t, err)

	// Full grid: (23:00 - 07:00) / 30min slots, every one classified.
	require.Len(t, resp.Slots, 32)
	assert.Equal(t, 32, resp.Total)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, 60, resp.DurationMinutes)

	statuses := slotStatuses(resp)
	assert.Equal(t, "outside_hours", statuses["07:00"])
	assert.Equal(t, "outside_hours", statuses["08:30"])
	assert.Equal(t, "available", statuses["09:00"])
	assert.Equal(t, "available", statuses["17:30"])
	assert.Equal(t, "outside_hours", statuses["18:00"])
	assert.Equal(t, "outside_hours", statuses["22:30"])
}

func TestComputeAvailabilitySlotsAreAscendingAndGridAligned(t *testing.T) {
	f := newAvailabilityFixture(t)

	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, nil)
	require.NoError(t, err)

	prev, err := entity.ParseClockTime(resp.Slots[0].Time)
	require.NoError(t, err)
	assert.Equal(t, "07:00", prev.String())
	for _, s := range resp.Slots[1:] {
		cur, err := entity.ParseClockTime(s.Time)
		require.NoError(t, err)
		assert.Equal(t, prev.Add(30), cur)
		prev = cur
	}
	assert.Equal(t, "22:30", prev.String())
}

func TestComputeAvailabilityMarksOverlappingSlotsBooked(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.book(t, "11:00", "12:00", entity.AppointmentStatusConfirmed)

	// A 60-minute request starting 10:30 would run into the booking.
	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 60, nil)
	require.NoError(t, err)
	statuses := slotStatuses(resp)
	assert.Equal(t, "booked", statuses["10:30"])
	assert.Equal(t, "booked", statuses["11:00"])
	assert.Equal(t, "booked", statuses["11:30"])
	assert.Equal(t, "available", statuses["10:00"])
	assert.Equal(t, "available", statuses["12:00"])

	// With a 30-minute duration only the occupied interval itself blocks.
	resp, err = f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, nil)
	require.NoError(t, err)
	statuses = slotStatuses(resp)
	assert.Equal(t, "available", statuses["10:30"])
	assert.Equal(t, "booked", statuses["11:00"])
	assert.Equal(t, "booked", statuses["11:30"])
	assert.Equal(t, "available", statuses["12:00"])
}

func TestComputeAvailabilityBookedWinsOverOutsideHours(t *testing.T) {
	f := newAvailabilityFixture(t)
	// An exception booking before opening time still occupies the slot.
	f.book(t, "08:00", "09:00", entity.AppointmentStatusConfirmed)

	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, nil)
	require.NoError(t, err)
	statuses := slotStatuses(resp)
	assert.Equal(t, "booked", statuses["08:00"])
	assert.Equal(t, "booked", statuses["08:30"])
	assert.Equal(t, "outside_hours", statuses["07:30"])
}

func TestComputeAvailabilityCancelledAndNoShowReleaseSlots(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.book(t, "10:00", "11:00", entity.AppointmentStatusCancelled)
	f.book(t, "14:00", "15:00", entity.AppointmentStatusNoShow)
	f.book(t, "16:00", "17:00", entity.AppointmentStatusRescheduled)

	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, nil)
	require.NoError(t, err)
	statuses := slotStatuses(resp)
	assert.Equal(t, "available", statuses["10:00"])
	assert.Equal(t, "available", statuses["14:30"])
	// Rescheduled is not a released state; the old slot stays taken until the
	// replacement booking supersedes it.
	assert.Equal(t, "booked", statuses["16:00"])
}

func TestComputeAvailabilityNoHoursConfigured(t *testing.T) {
	f := newAvailabilityFixture(t)
	// Sunday has no configured window.
	sunday := f.day.AddDate(0, 0, -1)

	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, sunday, 30, nil)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 32)
	for _, s := range resp.Slots {
		assert.NotEqual(t, "available", s.Status)
	}
}

func TestComputeAvailabilityDisabledHoursCloseTheDay(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.hours.hours[time.Monday].Enabled = false

	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, nil)
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.Equal(t, "outside_hours", s.Status)
	}
}

func TestComputeAvailabilityServiceDurationWins(t *testing.T) {
	f := newAvailabilityFixture(t)
	offering := &entity.ServiceOffering{
		ID:              uuid.New(),
		OrganizationID:  f.organizationID,
		Name:            "Extended consultation",
		DurationMinutes: 90,
		Price:           decimal.NewFromInt(150),
		Active:          true,
	}
	f.services.offerings[offering.ID] = offering
	f.book(t, "11:00", "12:00", entity.AppointmentStatusConfirmed)

	// The explicit duration argument is overridden by the offering's 90.
	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, &offering.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)
	statuses := slotStatuses(resp)
	assert.Equal(t, "booked", statuses["10:30"])
	assert.Equal(t, "booked", statuses["10:00"])
	// A 90-minute visit starting 09:30 ends exactly at the booking's start.
	assert.Equal(t, "available", statuses["09:30"])
}

func TestComputeAvailabilityDefaultDuration(t *testing.T) {
	f := newAvailabilityFixture(t)

	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDurationMinutes, resp.DurationMinutes)
}

func TestComputeAvailabilityUnknownProfessional(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.usecase.ComputeAvailability(context.Background(), uuid.New(), f.day, 30, nil)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestComputeAvailabilityUnknownService(t *testing.T) {
	f := newAvailabilityFixture(t)
	serviceID := uuid.New()

	_, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, &serviceID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

// Offerings outside the professional's organization, or no longer active,
// must not drive the grid's duration; same rule as booking.
func TestComputeAvailabilityRejectsForeignOrInactiveService(t *testing.T) {
	f := newAvailabilityFixture(t)
	foreign := &entity.ServiceOffering{
		ID:              uuid.New(),
		OrganizationID:  uuid.New(),
		Name:            "Consultation",
		DurationMinutes: 45,
		Price:           decimal.NewFromInt(90),
		Active:          true,
	}
	inactive := &entity.ServiceOffering{
		ID:              uuid.New(),
		OrganizationID:  f.organizationID,
		Name:            "Retired consultation",
		DurationMinutes: 45,
		Price:           decimal.NewFromInt(90),
		Active:          false,
	}
	f.services.offerings[foreign.ID] = foreign
	f.services.offerings[inactive.ID] = inactive

	_, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, &foreign.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 30, &inactive.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestComputeAvailabilityLastSlotSpillsPastDayEnd(t *testing.T) {
	f := newAvailabilityFixture(t)
	// Booking that only a spilling candidate can touch.
	f.book(t, "22:45", "23:30", entity.AppointmentStatusConfirmed)

	resp, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 60, nil)
	require.NoError(t, err)
	statuses := slotStatuses(resp)
	assert.Equal(t, "booked", statuses["22:30"])
	assert.Equal(t, "booked", statuses["22:00"])
	assert.Equal(t, "outside_hours", statuses["21:30"])
}

func TestComputeAvailabilityQueriesOneDaySnapshot(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.usecase.ComputeAvailability(context.Background(), f.professionalID, f.day, 60, nil)
	require.NoError(t, err)

	filter := f.appointments.lastFilter
	require.NotNil(t, filter)
	assert.Equal(t, f.professionalID, filter.ProfessionalID)
	require.NotNil(t, filter.RangeStart)
	require.NotNil(t, filter.RangeEnd)
	assert.True(t, filter.RangeStart.Equal(f.day))
	assert.True(t, filter.RangeEnd.Equal(f.day.AddDate(0, 0, 1).Add(60*time.Minute)))
	assert.Nil(t, filter.ExcludeID)
}

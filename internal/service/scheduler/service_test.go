package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/logger"
	"github.com/jwalitptl/hms-api/pkg/metrics"
)

// 2026-03-02 is a Monday.
const (
	monday    = "2026-03-02"
	wednesday = "2026-03-04"
)

var testMetrics = metrics.NewMetrics("hms_test", "scheduler")

type fakeTheaterRepo struct {
	theaters []*model.OperatingTheater
}

func (r *fakeTheaterRepo) Create(ctx context.Context, theater *model.OperatingTheater) error {
	r.theaters = append(r.theaters, theater)
	return nil
}

func (r *fakeTheaterRepo) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.OperatingTheater, error) {
	for _, t := range r.theaters {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, apperrors.NotFound("theater", nil)
}

func (r *fakeTheaterRepo) Update(ctx context.Context, theater *model.OperatingTheater) error {
	return nil
}

func (r *fakeTheaterRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return nil
}

func (r *fakeTheaterRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error) {
	return r.theaters, nil
}

func (r *fakeTheaterRepo) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error) {
	var active []*model.OperatingTheater
	for _, t := range r.theaters {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	return active, nil
}

type fakeBookingRepo struct {
	taken map[string]bool
}

func slotKey(theater, date, timeOfDay string) string {
	return theater + "|" + date + "|" + timeOfDay
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *model.Booking) error { return nil }

func (r *fakeBookingRepo) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Booking, error) {
	return nil, apperrors.NotFound("booking", nil)
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *model.Booking) error { return nil }

func (r *fakeBookingRepo) List(ctx context.Context, tenantID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) IsSlotTaken(ctx context.Context, tenantID uuid.UUID, theater, date, timeOfDay string, excludeID *uuid.UUID) (bool, error) {
	return r.taken[slotKey(theater, date, timeOfDay)], nil
}

type fakeRequestRepo struct {
	requests map[uuid.UUID]*model.SurgeryRequest
	updates  int
}

func (r *fakeRequestRepo) Create(ctx context.Context, request *model.SurgeryRequest) error {
	request.ID = uuid.New()
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRequestRepo) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.SurgeryRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NotFound("surgery request", nil)
	}
	return request, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, request *model.SurgeryRequest) error {
	r.updates++
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRequestRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*model.SurgeryRequest, error) {
	return nil, nil
}

func (r *fakeRequestRepo) ListForClinician(ctx context.Context, tenantID, clinicianID uuid.UUID) ([]*model.SurgeryRequest, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})
}

func newTestService(theaters *fakeTheaterRepo, bookings *fakeBookingRepo, requests *fakeRequestRepo) *Service {
	return NewService(theaters, bookings, requests, testMetrics, testLogger())
}

func newTheater(name string, status model.TheaterStatus, windows model.WeeklyWindows) *model.OperatingTheater {
	t := &model.OperatingTheater{
		Name:          name,
		Status:        status,
		WeeklyWindows: windows,
	}
	t.ID = uuid.New()
	return t
}

func newRequest(requests *fakeRequestRepo, date, timeOfDay string) *model.SurgeryRequest {
	request := &model.SurgeryRequest{
		PreferredDate: date,
		PreferredTime: timeOfDay,
		Status:        model.SurgeryRequestStatusPending,
	}
	request.ID = uuid.New()
	requests.requests[request.ID] = request
	return request
}

func newFakes() (*fakeTheaterRepo, *fakeBookingRepo, *fakeRequestRepo) {
	return &fakeTheaterRepo{},
		&fakeBookingRepo{taken: map[string]bool{}},
		&fakeRequestRepo{requests: map[uuid.UUID]*model.SurgeryRequest{}}
}

func TestFindAvailabilityExactMatch(t *testing.T) {
	theaters, bookings, requests := newFakes()
	theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusActive, model.WeeklyWindows{
		"Monday": {Open: "08:00", Close: "16:00"},
	}))
	request := newRequest(requests, monday, "10:00")

	svc := newTestService(theaters, bookings, requests)
	tenantID := uuid.New()

	result, err := svc.FindAvailability(context.Background(), tenantID, request.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusExactMatch, result.Status)
	require.Len(t, result.AvailableOTs, 1)
	assert.Equal(t, "OT-1", result.AvailableOTs[0].Theater)
	assert.Equal(t, monday, result.AvailableOTs[0].Date)
	assert.Equal(t, "Monday", result.AvailableOTs[0].Weekday)
	assert.Empty(t, result.SameDayDifferentTimeOTs)
	assert.Empty(t, result.WeekAvailableOTs)

	// An exact match leaves the request untouched.
	assert.Equal(t, model.SurgeryRequestStatusPending, request.Status)
	assert.Zero(t, requests.updates)
}

func TestFindAvailabilityExactMatchSuppressesWeekAhead(t *testing.T) {
	theaters, bookings, requests := newFakes()
	theaters.theaters = append(theaters.theaters,
		newTheater("OT-1", model.TheaterStatusActive, model.WeeklyWindows{
			"Monday": {Open: "08:00", Close: "16:00"},
		}),
		// Closed on Monday but open later in the week: a fallback
		// candidate that must not leak into an exact-match result.
		newTheater("OT-2", model.TheaterStatusActive, model.WeeklyWindows{
			"Wednesday": {Open: "08:00", Close: "16:00"},
		}),
	)
	request := newRequest(requests, monday, "10:00")

	svc := newTestService(theaters, bookings, requests)

	result, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusExactMatch, result.Status)
	assert.Len(t, result.AvailableOTs, 1)
	assert.Empty(t, result.WeekAvailableOTs)
}

func TestFindAvailabilitySameDayAlternate(t *testing.T) {
	theaters, bookings, requests := newFakes()
	theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusActive, model.WeeklyWindows{
		"Monday": {Open: "12:00", Close: "16:00"},
	}))
	request := newRequest(requests, monday, "10:00")

	svc := newTestService(theaters, bookings, requests)

	result, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusNoExactMatch, result.Status)
	assert.Empty(t, result.AvailableOTs)
	require.Len(t, result.SameDayDifferentTimeOTs, 1)
	assert.Equal(t, "12:00", result.SameDayDifferentTimeOTs[0].WindowStart)
	assert.Equal(t, model.SurgeryRequestStatusTimeSuggested, request.Status)
}

func TestFindAvailabilityWeekAhead(t *testing.T) {
	theaters, bookings, requests := newFakes()
	theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusActive, model.WeeklyWindows{
		"Wednesday": {Open: "08:00", Close: "16:00"},
	}))
	request := newRequest(requests, monday, "10:00")

	svc := newTestService(theaters, bookings, requests)

	result, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusNoExactMatch, result.Status)
	assert.Empty(t, result.SameDayDifferentTimeOTs)
	require.Len(t, result.WeekAvailableOTs, 1)
	assert.Equal(t, wednesday, result.WeekAvailableOTs[0].Date)
	assert.Equal(t, "Wednesday", result.WeekAvailableOTs[0].Weekday)
	assert.Equal(t, model.SurgeryRequestStatusTimeSuggested, request.Status)
}

func TestFindAvailabilityNothingAvailable(t *testing.T) {
	theaters, bookings, requests := newFakes()
	theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusActive, model.WeeklyWindows{}))
	request := newRequest(requests, monday, "10:00")

	svc := newTestService(theaters, bookings, requests)

	result, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusNoExactMatch, result.Status)
	assert.Empty(t, result.SameDayDifferentTimeOTs)
	assert.Empty(t, result.WeekAvailableOTs)
	assert.Equal(t, model.SurgeryRequestStatusOTUnavailable, request.Status)
}

func TestFindAvailabilityWindowBoundaries(t *testing.T) {
	windows := model.WeeklyWindows{
		"Monday": {Open: "08:00", Close: "16:00"},
	}

	t.Run("open bound is inclusive", func(t *testing.T) {
		theaters, bookings, requests := newFakes()
		theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusActive, windows))
		request := newRequest(requests, monday, "08:00")

		svc := newTestService(theaters, bookings, requests)
		result, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusExactMatch, result.Status)
	})

	t.Run("close bound is exclusive", func(t *testing.T) {
		theaters, bookings, requests := newFakes()
		theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusActive, windows))
		request := newRequest(requests, monday, "16:00")

		svc := newTestService(theaters, bookings, requests)
		result, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusNoExactMatch, result.Status)
		assert.Len(t, result.SameDayDifferentTimeOTs, 1)
	})
}

func TestFindAvailabilitySkipsTakenSlots(t *testing.T) {
	theaters, bookings, requests := newFakes()
	theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusActive, model.WeeklyWindows{
		"Monday": {Open: "08:00", Close: "16:00"},
	}))
	request := newRequest(requests, monday, "10:00")

	// Preferred slot is taken; the same time next Monday is free.
	bookings.taken[slotKey("OT-1", monday, "10:00")] = true

	svc := newTestService(theaters, bookings, requests)

	result, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusNoExactMatch, result.Status)
	assert.Empty(t, result.AvailableOTs)
	assert.Empty(t, result.SameDayDifferentTimeOTs)
	require.Len(t, result.WeekAvailableOTs, 1)
	assert.Equal(t, "2026-03-09", result.WeekAvailableOTs[0].Date)
}

func TestFindAvailabilityIgnoresInactiveTheaters(t *testing.T) {
	theaters, bookings, requests := newFakes()
	theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusInactive, model.WeeklyWindows{
		"Monday": {Open: "08:00", Close: "16:00"},
	}))
	request := newRequest(requests, monday, "10:00")

	svc := newTestService(theaters, bookings, requests)

	result, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusNoExactMatch, result.Status)
	assert.Empty(t, result.AvailableOTs)
	assert.Empty(t, result.WeekAvailableOTs)
}

func TestFindAvailabilityRequestNotFound(t *testing.T) {
	theaters, bookings, requests := newFakes()
	svc := newTestService(theaters, bookings, requests)

	_, err := svc.FindAvailability(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestFindAvailabilityRepeatedSearchIsIdempotent(t *testing.T) {
	theaters, bookings, requests := newFakes()
	theaters.theaters = append(theaters.theaters, newTheater("OT-1", model.TheaterStatusActive, model.WeeklyWindows{
		"Monday": {Open: "12:00", Close: "16:00"},
	}))
	request := newRequest(requests, monday, "10:00")

	svc := newTestService(theaters, bookings, requests)

	_, err := svc.FindAvailability(context.Background(), uuid.New(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, requests.updates)

	// The status is already time_suggested; a second search must not
	// write again.
	_, err = svc.FindAvailability(context.Background(), uuid.New(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, requests.updates)
}

package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
	"github.com/jwalitptl/hms-api/internal/service/event"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/logger"
	"github.com/jwalitptl/hms-api/pkg/metrics"
)

// Service is the booking ledger plus the case lifecycle rules layered on
// top of it: one non-cancelled booking per (theater, date, time) within a
// tenant, and a one-way scheduled -> completed transition.
type Service struct {
	repo     repository.BookingRepository
	requests repository.SurgeryRequestRepository
	events   *event.Service
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewService(
	repo repository.BookingRepository,
	requests repository.SurgeryRequestRepository,
	events *event.Service,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		requests: requests,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *Service) CreateBooking(ctx context.Context, tenantID, bookedBy uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error) {
	taken, err := s.repo.IsSlotTaken(ctx, tenantID, req.Theater, req.Date, req.Time, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if taken {
		s.metrics.BookingConflicts.Inc()
		return nil, apperrors.Conflict("slot already booked", nil)
	}

	booking := &model.Booking{
		TenantID:           tenantID,
		Theater:            req.Theater,
		Date:               req.Date,
		Time:               req.Time,
		BookedBy:           bookedBy,
		PatientName:        req.PatientName,
		Procedure:          req.Procedure,
		SurgicalAssistants: req.SurgicalAssistants,
		ScrubNurses:        req.ScrubNurses,
		CirculatingNurses:  req.CirculatingNurses,
		Anesthetists:       req.Anesthetists,
		Technicians:        req.Technicians,
		Status:             model.BookingStatusScheduled,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if apperrors.IsCode(err, apperrors.ErrConflict) {
			s.metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	if req.RequestID != nil {
		if err := s.fulfillRequest(ctx, tenantID, *req.RequestID, booking.Theater); err != nil {
			s.logger.Error(err, "failed to mark surgery request in progress",
				"request_id", req.RequestID.String())
		}
	}

	s.metrics.BookingsCreated.Inc()
	s.events.Record(ctx, tenantID, "booking.created", booking)
	return booking, nil
}

func (s *Service) fulfillRequest(ctx context.Context, tenantID, requestID uuid.UUID, theater string) error {
	request, err := s.requests.Get(ctx, tenantID, requestID)
	if err != nil {
		return err
	}
	request.Theater = &theater
	request.Status = model.SurgeryRequestStatusInProgress
	return s.requests.Update(ctx, request)
}

func (s *Service) GetBooking(ctx context.Context, tenantID, id uuid.UUID) (*model.Booking, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) ListBookings(ctx context.Context, tenantID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error) {
	return s.repo.List(ctx, tenantID, filters)
}

// UpdateBooking applies a patch. If the patch moves the booking to a
// different slot, the target slot is re-validated excluding the booking's
// own id.
func (s *Service) UpdateBooking(ctx context.Context, tenantID, id uuid.UUID, req *model.UpdateBookingRequest) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	slotChanged := false
	if req.Theater != nil && *req.Theater != booking.Theater {
		booking.Theater = *req.Theater
		slotChanged = true
	}
	if req.Date != nil && *req.Date != booking.Date {
		booking.Date = *req.Date
		slotChanged = true
	}
	if req.Time != nil && *req.Time != booking.Time {
		booking.Time = *req.Time
		slotChanged = true
	}
	if req.PatientName != nil {
		booking.PatientName = *req.PatientName
	}
	if req.Procedure != nil {
		booking.Procedure = *req.Procedure
	}
	if req.SurgicalAssistants != nil {
		booking.SurgicalAssistants = *req.SurgicalAssistants
	}
	if req.ScrubNurses != nil {
		booking.ScrubNurses = *req.ScrubNurses
	}
	if req.CirculatingNurses != nil {
		booking.CirculatingNurses = *req.CirculatingNurses
	}
	if req.Anesthetists != nil {
		booking.Anesthetists = *req.Anesthetists
	}
	if req.Technicians != nil {
		booking.Technicians = *req.Technicians
	}

	if slotChanged {
		taken, err := s.repo.IsSlotTaken(ctx, tenantID, booking.Theater, booking.Date, booking.Time, &booking.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check slot: %w", err)
		}
		if taken {
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.Conflict("slot already booked", nil)
		}
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		if apperrors.IsCode(err, apperrors.ErrConflict) {
			s.metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	s.events.Record(ctx, tenantID, "booking.updated", booking)
	return booking, nil
}

// CompleteCase closes out a scheduled booking with its completion facts.
// Completing twice is rejected so facts are never silently overwritten.
func (s *Service) CompleteCase(ctx context.Context, tenantID, id uuid.UUID, req *model.CompleteBookingRequest) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == model.BookingStatusCompleted {
		return nil, apperrors.InvalidState("case is already completed", nil)
	}
	if booking.Status == model.BookingStatusCancelled {
		return nil, apperrors.InvalidState("cannot complete a cancelled booking", nil)
	}

	booking.Status = model.BookingStatusCompleted
	booking.Completion = &model.CompletionDetails{
		InTime:        req.InTime,
		OutTime:       req.OutTime,
		CompletedOn:   req.CompletedOn,
		Outcome:       req.Outcome,
		Note:          req.Note,
		PatientStatus: req.PatientStatus,
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.metrics.CasesCompleted.Inc()
	s.events.Record(ctx, tenantID, "case.completed", booking)
	return booking, nil
}

// CancelBooking retracts a scheduled booking. Cancelled bookings free
// their slot: they are excluded from the uniqueness constraint and from
// slot checks.
func (s *Service) CancelBooking(ctx context.Context, tenantID, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == model.BookingStatusCompleted {
		return nil, apperrors.InvalidState("cannot cancel a completed booking", nil)
	}
	if booking.Status == model.BookingStatusCancelled {
		return nil, apperrors.InvalidState("booking is already cancelled", nil)
	}

	booking.Status = model.BookingStatusCancelled
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.events.Record(ctx, tenantID, "booking.cancelled", booking)
	return booking, nil
}

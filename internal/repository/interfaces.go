package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
)

// All repository interfaces in one file
type (
	// TheaterRepository handles operating theater records
	TheaterRepository interface {
		Create(ctx context.Context, theater *model.OperatingTheater) error
		Get(ctx context.Context, tenantID, id uuid.UUID) (*model.OperatingTheater, error)
		Update(ctx context.Context, theater *model.OperatingTheater) error
		Delete(ctx context.Context, tenantID, id uuid.UUID) error
		List(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error)
		ListActive(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error)
	}

	// BookingRepository is the booking ledger. IsSlotTaken and the
	// conflict errors returned by Create/Update together enforce the
	// one-booking-per-slot invariant.
	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, booking *model.Booking) error
		List(ctx context.Context, tenantID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error)
		IsSlotTaken(ctx context.Context, tenantID uuid.UUID, theater, date, timeOfDay string, excludeID *uuid.UUID) (bool, error)
	}

	SurgeryRequestRepository interface {
		Create(ctx context.Context, request *model.SurgeryRequest) error
		Get(ctx context.Context, tenantID, id uuid.UUID) (*model.SurgeryRequest, error)
		Update(ctx context.Context, request *model.SurgeryRequest) error
		List(ctx context.Context, tenantID uuid.UUID) ([]*model.SurgeryRequest, error)
		ListForClinician(ctx context.Context, tenantID, clinicianID uuid.UUID) ([]*model.SurgeryRequest, error)
	}

	PatientRepository interface {
		Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Patient, error)
	}

	ClinicianRepository interface {
		Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Clinician, error)
		GetByEmail(ctx context.Context, email string) (*model.Clinician, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
	}
)

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

const bookingColumns = `
	id, tenant_id, theater, date, time, booked_by, patient_name, procedure_name,
	surgical_assistants, scrub_nurses, circulating_nurses, anesthetists,
	technicians, status, completion, created_at, updated_at
`

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, tenant_id, theater, date, time, booked_by, patient_name,
			procedure_name, surgical_assistants, scrub_nurses, circulating_nurses,
			anesthetists, technicians, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.TenantID,
		booking.Theater,
		booking.Date,
		booking.Time,
		booking.BookedBy,
		booking.PatientName,
		booking.Procedure,
		booking.SurgicalAssistants,
		booking.ScrubNurses,
		booking.CirculatingNurses,
		booking.Anesthetists,
		booking.Technicians,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		// The partial unique index on (tenant_id, theater, date, time)
		// closes the check-then-write race across service instances.
		if isUniqueViolation(err) {
			return apperrors.Conflict("slot already booked", err)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1 AND id = $2
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET theater = $1, date = $2, time = $3, patient_name = $4,
			procedure_name = $5, surgical_assistants = $6, scrub_nurses = $7,
			circulating_nurses = $8, anesthetists = $9, technicians = $10,
			status = $11, completion = $12, updated_at = $13
		WHERE tenant_id = $14 AND id = $15
	`
	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		booking.Theater,
		booking.Date,
		booking.Time,
		booking.PatientName,
		booking.Procedure,
		booking.SurgicalAssistants,
		booking.ScrubNurses,
		booking.CirculatingNurses,
		booking.Anesthetists,
		booking.Technicians,
		booking.Status,
		booking.Completion,
		booking.UpdatedAt,
		booking.TenantID,
		booking.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("slot already booked", err)
		}
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("booking", nil)
	}

	return nil
}

func (r *bookingRepository) List(ctx context.Context, tenantID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1
	`
	args := []interface{}{tenantID}
	argCount := 2

	if filters != nil {
		if filters.Theater != "" {
			query += fmt.Sprintf(" AND theater = $%d", argCount)
			args = append(args, filters.Theater)
			argCount++
		}
		if filters.Date != "" {
			query += fmt.Sprintf(" AND date = $%d", argCount)
			args = append(args, filters.Date)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
	}

	query += " ORDER BY date ASC, time ASC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) IsSlotTaken(ctx context.Context, tenantID uuid.UUID, theater, date, timeOfDay string, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE tenant_id = $1
			AND theater = $2
			AND date = $3
			AND time = $4
			AND status != $5
	`
	args := []interface{}{tenantID, theater, date, timeOfDay, model.BookingStatusCancelled}

	if excludeID != nil {
		query += " AND id != $6"
		args = append(args, *excludeID)
	}

	query += ")"

	var taken bool
	err := r.db.GetContext(ctx, &taken, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return taken, nil
}

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

const surgeryRequestColumns = `
	id, tenant_id, theater, patient_id, patient_name, patient_age,
	patient_gender, preferred_date, preferred_time, procedure_name,
	requested_by, status, created_at, updated_at
`

func (r *surgeryRequestRepository) Create(ctx context.Context, request *model.SurgeryRequest) error {
	query := `
		INSERT INTO surgery_requests (
			id, tenant_id, patient_id, patient_name, patient_age,
			patient_gender, preferred_date, preferred_time, procedure_name,
			requested_by, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	request.ID = uuid.New()
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		request.ID,
		request.TenantID,
		request.PatientID,
		request.PatientName,
		request.PatientAge,
		request.PatientGender,
		request.PreferredDate,
		request.PreferredTime,
		request.Procedure,
		request.RequestedBy,
		request.Status,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create surgery request: %w", err)
	}
	return nil
}

func (r *surgeryRequestRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.SurgeryRequest, error) {
	query := `SELECT ` + surgeryRequestColumns + `
		FROM surgery_requests
		WHERE tenant_id = $1 AND id = $2
	`
	var request model.SurgeryRequest
	err := r.db.GetContext(ctx, &request, query, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("surgery request", err)
		}
		return nil, fmt.Errorf("failed to get surgery request: %w", err)
	}
	return &request, nil
}

func (r *surgeryRequestRepository) Update(ctx context.Context, request *model.SurgeryRequest) error {
	query := `
		UPDATE surgery_requests
		SET theater = $1, status = $2, updated_at = $3
		WHERE tenant_id = $4 AND id = $5
	`
	request.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		request.Theater,
		request.Status,
		request.UpdatedAt,
		request.TenantID,
		request.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update surgery request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("surgery request", nil)
	}

	return nil
}

func (r *surgeryRequestRepository) List(ctx context.Context, tenantID uuid.UUID) ([]*model.SurgeryRequest, error) {
	query := `SELECT ` + surgeryRequestColumns + `
		FROM surgery_requests
		WHERE tenant_id = $1
		ORDER BY preferred_date ASC, preferred_time ASC
	`
	var requests []*model.SurgeryRequest
	err := r.db.SelectContext(ctx, &requests, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list surgery requests: %w", err)
	}
	return requests, nil
}

func (r *surgeryRequestRepository) ListForClinician(ctx context.Context, tenantID, clinicianID uuid.UUID) ([]*model.SurgeryRequest, error) {
	query := `SELECT ` + surgeryRequestColumns + `
		FROM surgery_requests
		WHERE tenant_id = $1 AND requested_by = $2
		ORDER BY preferred_date ASC, preferred_time ASC
	`
	var requests []*model.SurgeryRequest
	err := r.db.SelectContext(ctx, &requests, query, tenantID, clinicianID)
	if err != nil {
		return nil, fmt.Errorf("failed to list surgery requests: %w", err)
	}
	return requests, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

func (r *patientRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, tenant_id, name, age, gender, status,
			   attending_clinician, created_at, updated_at
		FROM patients
		WHERE tenant_id = $1 AND id = $2
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

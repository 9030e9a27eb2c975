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

func (r *clinicianRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Clinician, error) {
	query := `
		SELECT id, tenant_id, name, email, password_hash, role,
			   created_at, updated_at
		FROM clinicians
		WHERE tenant_id = $1 AND id = $2
	`
	var clinician model.Clinician
	err := r.db.GetContext(ctx, &clinician, query, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("clinician", err)
		}
		return nil, fmt.Errorf("failed to get clinician: %w", err)
	}
	return &clinician, nil
}

func (r *clinicianRepository) GetByEmail(ctx context.Context, email string) (*model.Clinician, error) {
	query := `
		SELECT id, tenant_id, name, email, password_hash, role,
			   created_at, updated_at
		FROM clinicians
		WHERE email = $1
	`
	var clinician model.Clinician
	err := r.db.GetContext(ctx, &clinician, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("clinician", err)
		}
		return nil, fmt.Errorf("failed to get clinician: %w", err)
	}
	return &clinician, nil
}

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

func (r *theaterRepository) Create(ctx context.Context, theater *model.OperatingTheater) error {
	query := `
		INSERT INTO operating_theaters (
			id, tenant_id, name, capacity, status,
			equipment, weekly_windows, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	theater.ID = uuid.New()
	theater.CreatedAt = time.Now()
	theater.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		theater.ID,
		theater.TenantID,
		theater.Name,
		theater.Capacity,
		theater.Status,
		theater.Equipment,
		theater.WeeklyWindows,
		theater.CreatedAt,
		theater.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create theater: %w", err)
	}
	return nil
}

func (r *theaterRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.OperatingTheater, error) {
	query := `
		SELECT id, tenant_id, name, capacity, status,
			   equipment, weekly_windows, created_at, updated_at
		FROM operating_theaters
		WHERE tenant_id = $1 AND id = $2
	`
	var theater model.OperatingTheater
	err := r.db.GetContext(ctx, &theater, query, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("theater", err)
		}
		return nil, fmt.Errorf("failed to get theater: %w", err)
	}
	return &theater, nil
}

func (r *theaterRepository) Update(ctx context.Context, theater *model.OperatingTheater) error {
	query := `
		UPDATE operating_theaters
		SET name = $1, capacity = $2, status = $3, equipment = $4,
			weekly_windows = $5, updated_at = $6
		WHERE tenant_id = $7 AND id = $8
	`
	theater.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		theater.Name,
		theater.Capacity,
		theater.Status,
		theater.Equipment,
		theater.WeeklyWindows,
		theater.UpdatedAt,
		theater.TenantID,
		theater.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update theater: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("theater", nil)
	}

	return nil
}

func (r *theaterRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		DELETE FROM operating_theaters
		WHERE tenant_id = $1 AND id = $2
	`
	result, err := r.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete theater: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("theater", nil)
	}

	return nil
}

func (r *theaterRepository) List(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error) {
	query := `
		SELECT id, tenant_id, name, capacity, status,
			   equipment, weekly_windows, created_at, updated_at
		FROM operating_theaters
		WHERE tenant_id = $1
		ORDER BY name ASC
	`
	var theaters []*model.OperatingTheater
	err := r.db.SelectContext(ctx, &theaters, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list theaters: %w", err)
	}
	return theaters, nil
}

func (r *theaterRepository) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error) {
	query := `
		SELECT id, tenant_id, name, capacity, status,
			   equipment, weekly_windows, created_at, updated_at
		FROM operating_theaters
		WHERE tenant_id = $1 AND status = $2
		ORDER BY name ASC
	`
	var theaters []*model.OperatingTheater
	err := r.db.SelectContext(ctx, &theaters, query, tenantID, model.TheaterStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active theaters: %w", err)
	}
	return theaters, nil
}

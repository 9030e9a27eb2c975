package theater

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
)

type Service struct {
	repo repository.TheaterRepository
}

func NewService(repo repository.TheaterRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateTheater(ctx context.Context, tenantID uuid.UUID, req *model.CreateTheaterRequest) (*model.OperatingTheater, error) {
	status := req.Status
	if status == "" {
		status = model.TheaterStatusActive
	}

	theater := &model.OperatingTheater{
		TenantID:      tenantID,
		Name:          req.Name,
		Capacity:      req.Capacity,
		Status:        status,
		Equipment:     req.Equipment,
		WeeklyWindows: req.WeeklyWindows,
	}

	if err := s.repo.Create(ctx, theater); err != nil {
		return nil, fmt.Errorf("failed to create theater: %w", err)
	}
	return theater, nil
}

func (s *Service) GetTheater(ctx context.Context, tenantID, id uuid.UUID) (*model.OperatingTheater, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) ListTheaters(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *Service) UpdateTheater(ctx context.Context, tenantID, id uuid.UUID, req *model.UpdateTheaterRequest) (*model.OperatingTheater, error) {
	theater, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		theater.Name = *req.Name
	}
	if req.Capacity != nil {
		theater.Capacity = *req.Capacity
	}
	if req.Status != nil {
		theater.Status = *req.Status
	}
	if req.Equipment != nil {
		theater.Equipment = *req.Equipment
	}
	if req.WeeklyWindows != nil {
		theater.WeeklyWindows = *req.WeeklyWindows
	}

	if err := s.repo.Update(ctx, theater); err != nil {
		return nil, err
	}
	return theater, nil
}

func (s *Service) DeleteTheater(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

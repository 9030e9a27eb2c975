package event

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
	"github.com/jwalitptl/hms-api/pkg/logger"
)

// Service records domain events in the outbox table; the worker publishes
// them asynchronously. Recording failures are logged, never propagated —
// an event must not fail the mutation it describes.
type Service struct {
	repo   repository.OutboxRepository
	logger *logger.Logger
}

func NewService(repo repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Record(ctx context.Context, tenantID uuid.UUID, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "failed to marshal event payload", "event_type", eventType)
		return
	}

	event := &model.OutboxEvent{
		TenantID:  tenantID,
		EventType: eventType,
		Payload:   data,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to record event", "event_type", eventType)
	}
}

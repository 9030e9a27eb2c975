package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/pkg/logger"
	"github.com/jwalitptl/hms-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("hms_test", "worker")

type fakeOutboxRepo struct {
	pending  []*model.OutboxEvent
	statuses map[uuid.UUID]model.OutboxStatus
	errs     map[uuid.UUID]string
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{
		statuses: map[uuid.UUID]model.OutboxStatus{},
		errs:     map[uuid.UUID]string{},
	}
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	event.ID = uuid.New()
	r.pending = append(r.pending, event)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}
	return r.pending, nil
}

func (r *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error {
	r.statuses[id] = status
	if errorMessage != nil {
		r.errs[id] = *errorMessage
	}
	return nil
}

type fakeBroker struct {
	published []string
	fail      bool
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	if b.fail {
		return errors.New("broker down")
	}
	b.published = append(b.published, channel)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *fakeBroker) Close() error { return nil }

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})
}

func newProcessor(repo *fakeOutboxRepo, broker *fakeBroker) *OutboxProcessor {
	return NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Millisecond,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	}, testLogger(), testMetrics)
}

func pendingEvent(repo *fakeOutboxRepo, eventType string) *model.OutboxEvent {
	event := &model.OutboxEvent{
		TenantID:  uuid.New(),
		EventType: eventType,
		Payload:   []byte(`{}`),
		Status:    model.OutboxStatusPending,
	}
	event.ID = uuid.New()
	repo.pending = append(repo.pending, event)
	return event
}

func TestProcessEventsPublishesAndMarksProcessed(t *testing.T) {
	repo := newFakeOutboxRepo()
	broker := &fakeBroker{}

	first := pendingEvent(repo, "booking.created")
	second := pendingEvent(repo, "case.completed")

	p := newProcessor(repo, broker)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Equal(t, []string{"booking.created", "case.completed"}, broker.published)
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[first.ID])
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[second.ID])
}

func TestProcessEventsMarksFailedAfterRetries(t *testing.T) {
	repo := newFakeOutboxRepo()
	broker := &fakeBroker{fail: true}

	event := pendingEvent(repo, "booking.created")

	p := newProcessor(repo, broker)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Equal(t, model.OutboxStatusFailed, repo.statuses[event.ID])
	assert.Contains(t, repo.errs[event.ID], "broker down")
}

func TestNewOutboxProcessorRejectsZeroConfig(t *testing.T) {
	repo := newFakeOutboxRepo()
	assert.Panics(t, func() {
		NewOutboxProcessor(repo, &fakeBroker{}, OutboxProcessorConfig{}, testLogger(), testMetrics)
	})
}

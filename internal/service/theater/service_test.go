package theater

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type fakeTheaterRepo struct {
	theaters map[uuid.UUID]*model.OperatingTheater
}

func newFakeTheaterRepo() *fakeTheaterRepo {
	return &fakeTheaterRepo{theaters: map[uuid.UUID]*model.OperatingTheater{}}
}

func (r *fakeTheaterRepo) Create(ctx context.Context, theater *model.OperatingTheater) error {
	theater.ID = uuid.New()
	r.theaters[theater.ID] = theater
	return nil
}

func (r *fakeTheaterRepo) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.OperatingTheater, error) {
	theater, ok := r.theaters[id]
	if !ok {
		return nil, apperrors.NotFound("theater", nil)
	}
	return theater, nil
}

func (r *fakeTheaterRepo) Update(ctx context.Context, theater *model.OperatingTheater) error {
	r.theaters[theater.ID] = theater
	return nil
}

func (r *fakeTheaterRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, ok := r.theaters[id]; !ok {
		return apperrors.NotFound("theater", nil)
	}
	delete(r.theaters, id)
	return nil
}

func (r *fakeTheaterRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error) {
	var all []*model.OperatingTheater
	for _, t := range r.theaters {
		all = append(all, t)
	}
	return all, nil
}

func (r *fakeTheaterRepo) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*model.OperatingTheater, error) {
	var active []*model.OperatingTheater
	for _, t := range r.theaters {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	return active, nil
}

func TestCreateTheaterDefaultsToActive(t *testing.T) {
	svc := NewService(newFakeTheaterRepo())

	theater, err := svc.CreateTheater(context.Background(), uuid.New(), &model.CreateTheaterRequest{
		Name:     "OT-1",
		Capacity: 6,
		WeeklyWindows: model.WeeklyWindows{
			"Monday": {Open: "08:00", Close: "16:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.TheaterStatusActive, theater.Status)
	assert.True(t, theater.IsActive())
}

func TestUpdateTheaterPatchesFields(t *testing.T) {
	repo := newFakeTheaterRepo()
	svc := NewService(repo)
	tenantID := uuid.New()

	theater, err := svc.CreateTheater(context.Background(), tenantID, &model.CreateTheaterRequest{
		Name:     "OT-1",
		Capacity: 6,
	})
	require.NoError(t, err)

	status := model.TheaterStatusInactive
	updated, err := svc.UpdateTheater(context.Background(), tenantID, theater.ID, &model.UpdateTheaterRequest{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TheaterStatusInactive, updated.Status)
	assert.Equal(t, "OT-1", updated.Name, "unpatched fields are preserved")

	active, err := repo.ListActive(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestGetTheaterNotFound(t *testing.T) {
	svc := NewService(newFakeTheaterRepo())

	_, err := svc.GetTheater(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

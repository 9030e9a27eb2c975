package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
	"github.com/jwalitptl/hms-api/pkg/auth"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/security"
)

type fakeClinicianRepo struct {
	byEmail map[string]*model.Clinician
}

var _ repository.ClinicianRepository = (*fakeClinicianRepo)(nil)

func (r *fakeClinicianRepo) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Clinician, error) {
	return nil, apperrors.NotFound("clinician", nil)
}

func (r *fakeClinicianRepo) GetByEmail(ctx context.Context, email string) (*model.Clinician, error) {
	clinician, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("clinician", nil)
	}
	return clinician, nil
}

func newTestService(t *testing.T) (*Service, *model.Clinician) {
	t.Helper()

	hash, err := security.HashPassword("s3cret")
	require.NoError(t, err)

	clinician := &model.Clinician{
		TenantID:     uuid.New(),
		Name:         "Dr. Roe",
		Email:        "roe@example.com",
		PasswordHash: hash,
	}
	clinician.ID = uuid.New()

	repo := &fakeClinicianRepo{byEmail: map[string]*model.Clinician{clinician.Email: clinician}}
	return NewService(repo, auth.NewJWTService("test-secret", 1)), clinician
}

func TestLogin(t *testing.T) {
	svc, clinician := newTestService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "roe@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, clinician.TenantID, claims.TenantID)
	assert.Equal(t, clinician.ID, claims.ClinicianID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "roe@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

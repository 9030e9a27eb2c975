package surgeryrequest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type fakeRequestRepo struct {
	created []*model.SurgeryRequest
}

func (r *fakeRequestRepo) Create(ctx context.Context, request *model.SurgeryRequest) error {
	request.ID = uuid.New()
	r.created = append(r.created, request)
	return nil
}

func (r *fakeRequestRepo) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.SurgeryRequest, error) {
	return nil, apperrors.NotFound("surgery request", nil)
}

func (r *fakeRequestRepo) Update(ctx context.Context, request *model.SurgeryRequest) error {
	return nil
}

func (r *fakeRequestRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*model.SurgeryRequest, error) {
	return nil, nil
}

func (r *fakeRequestRepo) ListForClinician(ctx context.Context, tenantID, clinicianID uuid.UUID) ([]*model.SurgeryRequest, error) {
	return nil, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (r *fakePatientRepo) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Patient, error) {
	patient, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return patient, nil
}

func newPatient(clinicianID uuid.UUID, status model.PatientStatus) *model.Patient {
	patient := &model.Patient{
		Name:               "Jane Roe",
		Age:                52,
		Gender:             "female",
		Status:             status,
		AttendingClinician: clinicianID,
	}
	patient.ID = uuid.New()
	return patient
}

func createReq(patientID uuid.UUID) *model.CreateSurgeryRequestRequest {
	return &model.CreateSurgeryRequestRequest{
		PatientID:     patientID,
		PreferredDate: "2026-03-02",
		PreferredTime: "10:00",
		Procedure:     "Appendectomy",
	}
}

func TestCreateRequest(t *testing.T) {
	clinicianID := uuid.New()
	patient := newPatient(clinicianID, model.PatientStatusAdmitted)

	repo := &fakeRequestRepo{}
	svc := NewService(repo, &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}})

	request, err := svc.CreateRequest(context.Background(), uuid.New(), clinicianID, createReq(patient.ID))
	require.NoError(t, err)

	assert.Equal(t, model.SurgeryRequestStatusPending, request.Status)
	assert.Equal(t, clinicianID, request.RequestedBy)

	// Patient details are snapshotted onto the request.
	assert.Equal(t, patient.ID, request.PatientID)
	assert.Equal(t, "Jane Roe", request.PatientName)
	assert.Equal(t, 52, request.PatientAge)
	assert.Equal(t, "female", request.PatientGender)
	assert.Len(t, repo.created, 1)
}

func TestCreateRequestPatientNotAdmitted(t *testing.T) {
	clinicianID := uuid.New()
	patient := newPatient(clinicianID, model.PatientStatusDischarged)

	svc := NewService(&fakeRequestRepo{}, &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}})

	_, err := svc.CreateRequest(context.Background(), uuid.New(), clinicianID, createReq(patient.ID))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestCreateRequestWrongClinician(t *testing.T) {
	patient := newPatient(uuid.New(), model.PatientStatusAdmitted)

	svc := NewService(&fakeRequestRepo{}, &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}})

	_, err := svc.CreateRequest(context.Background(), uuid.New(), uuid.New(), createReq(patient.ID))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestCreateRequestPatientMissing(t *testing.T) {
	svc := NewService(&fakeRequestRepo{}, &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{}})

	_, err := svc.CreateRequest(context.Background(), uuid.New(), uuid.New(), createReq(uuid.New()))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

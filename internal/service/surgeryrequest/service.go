package surgeryrequest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo     repository.SurgeryRequestRepository
	patients repository.PatientRepository
}

func NewService(repo repository.SurgeryRequestRepository, patients repository.PatientRepository) *Service {
	return &Service{repo: repo, patients: patients}
}

// CreateRequest accepts a surgery request from a clinician. The patient
// must be actively admitted under that clinician within the tenant; the
// request stores a snapshot of the patient, not a live reference.
func (s *Service) CreateRequest(ctx context.Context, tenantID, clinicianID uuid.UUID, req *model.CreateSurgeryRequestRequest) (*model.SurgeryRequest, error) {
	patient, err := s.patients.Get(ctx, tenantID, req.PatientID)
	if err != nil {
		return nil, err
	}

	if patient.Status != model.PatientStatusAdmitted || patient.AttendingClinician != clinicianID {
		return nil, apperrors.NotFound("admitted patient under requesting clinician", nil)
	}

	request := &model.SurgeryRequest{
		TenantID:      tenantID,
		PatientID:     patient.ID,
		PatientName:   patient.Name,
		PatientAge:    patient.Age,
		PatientGender: patient.Gender,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Procedure:     req.Procedure,
		RequestedBy:   clinicianID,
		Status:        model.SurgeryRequestStatusPending,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create surgery request: %w", err)
	}
	return request, nil
}

func (s *Service) GetRequest(ctx context.Context, tenantID, id uuid.UUID) (*model.SurgeryRequest, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) ListRequests(ctx context.Context, tenantID uuid.UUID) ([]*model.SurgeryRequest, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *Service) ListRequestsForClinician(ctx context.Context, tenantID, clinicianID uuid.UUID) ([]*model.SurgeryRequest, error) {
	return s.repo.ListForClinician(ctx, tenantID, clinicianID)
}

package auth

import (
	"context"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
	"github.com/jwalitptl/hms-api/pkg/auth"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/security"
)

type Service struct {
	clinicians repository.ClinicianRepository
	jwt        *auth.JWTService
}

func NewService(clinicians repository.ClinicianRepository, jwt *auth.JWTService) *Service {
	return &Service{clinicians: clinicians, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	clinician, err := s.clinicians.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not leak whether the account exists.
		return nil, apperrors.Unauthorized(err)
	}

	if err := security.VerifyPassword(clinician.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.jwt.GenerateAccessToken(clinician.TenantID, clinician.ID, clinician.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.LoginResponse{
		Token:     token,
		Clinician: clinician,
	}, nil
}

func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

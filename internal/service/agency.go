package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/repo"
)

// AgencyService implements business logic for Agency operations.
type AgencyService struct {
	agencies repo.AgencyRepo
}

// NewAgencyService constructs an AgencyService backed by the provided repo.
func NewAgencyService(agencies repo.AgencyRepo) *AgencyService {
	return &AgencyService{agencies: agencies}
}

// Create validates and persists a new agency. Duplicate names surface as
// domain.ErrConflict from the repo's unique constraint.
func (s *AgencyService) Create(ctx context.Context, agency domain.Agency) (domain.Agency, error) {
	if err := agency.Validate(); err != nil {
		return domain.Agency{}, err
	}
	created, err := s.agencies.Create(ctx, agency)
	if err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single agency by ID.
func (s *AgencyService) GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error) {
	agency, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		return domain.Agency{}, fmt.Errorf("service.AgencyService.GetByID: %w", err)
	}
	return agency, nil
}

// List returns all agencies.
// Always returns a non-nil slice so callers can safely range over it.
func (s *AgencyService) List(ctx context.Context) ([]domain.Agency, error) {
	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.AgencyService.List: %w", err)
	}
	if agencies == nil {
		return []domain.Agency{}, nil
	}
	return agencies, nil
}

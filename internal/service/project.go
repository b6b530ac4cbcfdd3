package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/repo"
)

// ProjectService implements business logic for Project operations,
// including the CSV bulk import managers use to load budget envelopes.
type ProjectService struct {
	projects repo.ProjectRepo
}

// NewProjectService constructs a ProjectService backed by the provided repo.
func NewProjectService(projects repo.ProjectRepo) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create validates and persists a new project.
func (s *ProjectService) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	if err := project.Validate(); err != nil {
		return domain.Project{}, err
	}
	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("service.ProjectService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single project by ID.
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("service.ProjectService.GetByID: %w", err)
	}
	return project, nil
}

// List returns all projects.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ProjectService.List: %w", err)
	}
	if projects == nil {
		return []domain.Project{}, nil
	}
	return projects, nil
}

// Update validates and persists changes to an existing project.
// The path and payload IDs must agree.
func (s *ProjectService) Update(ctx context.Context, pathID uuid.UUID, project domain.Project) (domain.Project, error) {
	if pathID != project.ID {
		return domain.Project{}, fmt.Errorf("service.ProjectService.Update: project ID in URL does not match ID in payload: %w", domain.ErrConflict)
	}
	if err := project.Validate(); err != nil {
		return domain.Project{}, err
	}
	updated, err := s.projects.Update(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("service.ProjectService.Update: %w", err)
	}
	return updated, nil
}

// ImportCSV parses code,name,budget rows (header skipped) and persists all
// of them in one transaction. A malformed row fails the whole import so a
// partial budget file is never loaded.
func (s *ProjectService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	if _, err := cr.Read(); err != nil { // header
		var errs domain.FieldErrors
		errs.Add("file", "file is empty or has no header row")
		return 0, errs
	}

	var projects []domain.Project
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var errs domain.FieldErrors
			errs.Add("file", fmt.Sprintf("line %d: malformed row", line))
			return 0, errs
		}

		budget, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			var errs domain.FieldErrors
			errs.Add("file", fmt.Sprintf("line %d: invalid budget %q", line, rec[2]))
			return 0, errs
		}

		p := domain.Project{
			Code:   strings.TrimSpace(rec[0]),
			Name:   strings.TrimSpace(rec[1]),
			Budget: budget,
		}
		if err := p.Validate(); err != nil {
			var errs domain.FieldErrors
			errs.Add("file", fmt.Sprintf("line %d: %v", line, err))
			return 0, errs
		}
		projects = append(projects, p)
	}

	if len(projects) == 0 {
		return 0, nil
	}

	count, err := s.projects.CreateBatch(ctx, projects)
	if err != nil {
		return 0, fmt.Errorf("service.ProjectService.ImportCSV: %w", err)
	}
	return count, nil
}

package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// ProjectRepo defines the persistence operations for Projects.
type ProjectRepo interface {
	// Create inserts a new project and returns the persisted record.
	Create(ctx context.Context, project domain.Project) (domain.Project, error)

	// CreateBatch inserts all projects in a single transaction.
	// Used by CSV import; either every row is persisted or none are.
	CreateBatch(ctx context.Context, projects []domain.Project) (int, error)

	// GetByID retrieves a single project by primary key.
	// Returns domain.ErrNotFound if no project with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)

	// List returns all projects ordered by code.
	List(ctx context.Context) ([]domain.Project, error)

	// Update overwrites the mutable fields of an existing project.
	// Returns domain.ErrNotFound if no project with that ID exists.
	Update(ctx context.Context, project domain.Project) (domain.Project, error)
}

// pgProjectRepo is the Postgres implementation of ProjectRepo.
type pgProjectRepo struct {
	db db
}

// NewProjectRepo constructs a ProjectRepo backed by the provided db connection.
func NewProjectRepo(db db) ProjectRepo {
	return &pgProjectRepo{db: db}
}

func (r *pgProjectRepo) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	const q = `
		INSERT INTO projects (code, name, budget)
		VALUES (@code, @name, @budget::numeric)
		RETURNING id, code, name, budget::text, created_at, updated_at`

	args := pgx.NamedArgs{
		"code":   project.Code,
		"name":   project.Name,
		"budget": project.Budget.String(),
	}

	result, err := scanProject(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgProjectRepo) CreateBatch(ctx context.Context, projects []domain.Project) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.ProjectRepo.CreateBatch: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		INSERT INTO projects (code, name, budget)
		VALUES (@code, @name, @budget::numeric)`

	for _, p := range projects {
		args := pgx.NamedArgs{
			"code":   p.Code,
			"name":   p.Name,
			"budget": p.Budget.String(),
		}
		if _, err := tx.Exec(ctx, q, args); err != nil {
			return 0, fmt.Errorf("repo.ProjectRepo.CreateBatch: insert %q: %w", p.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repo.ProjectRepo.CreateBatch: commit: %w", err)
	}
	return len(projects), nil
}

func (r *pgProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	const q = `
		SELECT id, code, name, budget::text, created_at, updated_at
		FROM projects
		WHERE id = @id`

	result, err := scanProject(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
		SELECT id, code, name, budget::text, created_at, updated_at
		FROM projects
		ORDER BY code`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ProjectRepo.List: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ProjectRepo.List: scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ProjectRepo.List: rows: %w", err)
	}

	return projects, nil
}

func (r *pgProjectRepo) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	const q = `
		UPDATE projects
		SET code       = @code,
		    name       = @name,
		    budget     = @budget::numeric,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, code, name, budget::text, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":     project.ID,
		"code":   project.Code,
		"name":   project.Name,
		"budget": project.Budget.String(),
	}

	result, err := scanProject(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Update: %w", err)
	}
	return result, nil
}

// scanProject maps a single database row into a domain.Project.
// The budget column is selected as text and parsed into a decimal to avoid
// float rounding on monetary values.
func scanProject(s scanner) (domain.Project, error) {
	var (
		p      domain.Project
		id     pgtype.UUID
		budget string
	)

	err := s.Scan(&id, &p.Code, &p.Name, &budget, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.Budget, err = decimal.NewFromString(budget)
	if err != nil {
		return domain.Project{}, fmt.Errorf("parse budget: %w", err)
	}
	return p, nil
}

package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// AgencyRepo defines the persistence operations for Agencies.
type AgencyRepo interface {
	// Create inserts a new agency and returns the persisted record.
	// Agency names carry a unique constraint; violations surface as
	// domain.ErrConflict.
	Create(ctx context.Context, agency domain.Agency) (domain.Agency, error)

	// GetByID retrieves a single agency by primary key.
	// Returns domain.ErrNotFound if no agency with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error)

	// List returns all agencies ordered by name.
	List(ctx context.Context) ([]domain.Agency, error)
}

// pgAgencyRepo is the Postgres implementation of AgencyRepo.
type pgAgencyRepo struct {
	db db
}

// NewAgencyRepo constructs an AgencyRepo backed by the provided db connection.
func NewAgencyRepo(db db) AgencyRepo {
	return &pgAgencyRepo{db: db}
}

func (r *pgAgencyRepo) Create(ctx context.Context, agency domain.Agency) (domain.Agency, error) {
	const q = `
		INSERT INTO agencies (name, contact_email, phone_number)
		VALUES (@name, @contact_email, @phone_number)
		RETURNING id, name, contact_email, phone_number, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":          agency.Name,
		"contact_email": agency.ContactEmail,
		"phone_number":  agency.PhoneNumber,
	}

	result, err := scanAgency(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Agency{}, fmt.Errorf("repo.AgencyRepo.Create: name already taken: %w", domain.ErrConflict)
		}
		return domain.Agency{}, fmt.Errorf("repo.AgencyRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgAgencyRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error) {
	const q = `
		SELECT id, name, contact_email, phone_number, created_at, updated_at
		FROM agencies
		WHERE id = @id`

	result, err := scanAgency(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Agency{}, fmt.Errorf("repo.AgencyRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgAgencyRepo) List(ctx context.Context) ([]domain.Agency, error) {
	const q = `
		SELECT id, name, contact_email, phone_number, created_at, updated_at
		FROM agencies
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AgencyRepo.List: %w", err)
	}
	defer rows.Close()

	var agencies []domain.Agency
	for rows.Next() {
		a, err := scanAgency(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AgencyRepo.List: scan: %w", err)
		}
		agencies = append(agencies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AgencyRepo.List: rows: %w", err)
	}

	return agencies, nil
}

// scanAgency maps a single database row into a domain.Agency.
func scanAgency(s scanner) (domain.Agency, error) {
	var (
		a  domain.Agency
		id pgtype.UUID
	)

	err := s.Scan(&id, &a.Name, &a.ContactEmail, &a.PhoneNumber, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Agency{}, domain.ErrNotFound
		}
		return domain.Agency{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	return a, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

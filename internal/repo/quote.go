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

// QuoteRepo defines the persistence operations for Quotes and their line
// items as one aggregate: a quote is always written together with its
// flights and hotels in a single transaction.
type QuoteRepo interface {
	// Create inserts a quote with its line items in one transaction and
	// returns the persisted aggregate.
	Create(ctx context.Context, quote domain.Quote) (domain.Quote, error)

	// GetByID retrieves a quote with its line items.
	// Returns domain.ErrNotFound if no quote with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error)

	// GetDetails retrieves a quote with agency summary, line items, and the
	// total recomputed from the line items.
	GetDetails(ctx context.Context, id uuid.UUID) (domain.QuoteDetails, error)

	// ListByRequest returns all quotes for a request, oldest first, each
	// with agency, line items, and recomputed total.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.QuoteDetails, error)

	// CountByRequest returns how many quotes exist for a request.
	CountByRequest(ctx context.Context, requestID uuid.UUID) (int, error)

	// BelongsToRequest reports whether the quote exists and references the
	// given request.
	BelongsToRequest(ctx context.Context, quoteID, requestID uuid.UUID) (bool, error)

	// Replace updates the quote's cached cost and, when the corresponding
	// slice pointer is non-nil, replaces the child collection wholesale.
	// All writes happen in one transaction.
	Replace(ctx context.Context, id uuid.UUID, cost decimal.Decimal, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error

	// UpdateCost refreshes the cached cost column. Called after any
	// line-item mutation so the cache never drifts silently.
	UpdateCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error

	// Delete removes a quote; line items go with it via cascade.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgQuoteRepo is the Postgres implementation of QuoteRepo.
type pgQuoteRepo struct {
	db db
}

// NewQuoteRepo constructs a QuoteRepo backed by the provided db connection.
func NewQuoteRepo(db db) QuoteRepo {
	return &pgQuoteRepo{db: db}
}

func (r *pgQuoteRepo) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		INSERT INTO quotes (request_id, agency_id, cost)
		VALUES (@request_id, @agency_id, @cost::numeric)
		RETURNING id, request_id, agency_id, cost::text, created_at, updated_at`

	args := pgx.NamedArgs{
		"request_id": quote.RequestID,
		"agency_id":  quote.AgencyID,
		"cost":       quote.Cost.String(),
	}

	created, err := scanQuote(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Create: %w", err)
	}

	created.Flights, err = insertFlights(ctx, tx, created.ID, quote.Flights)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Create: %w", err)
	}
	created.Hotels, err = insertHotels(ctx, tx, created.ID, quote.Hotels)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Create: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Create: commit: %w", err)
	}
	return created, nil
}

func (r *pgQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	const q = `
		SELECT id, request_id, agency_id, cost::text, created_at, updated_at
		FROM quotes
		WHERE id = @id`

	quote, err := scanQuote(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.GetByID: %w", err)
	}

	args := pgx.NamedArgs{"quote_id": id}
	quote.Flights, err = loadFlights(ctx, r.db, `quote_id = @quote_id`, args)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.GetByID: %w", err)
	}
	quote.Hotels, err = loadHotels(ctx, r.db, `quote_id = @quote_id`, args)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.GetByID: %w", err)
	}

	return quote, nil
}

func (r *pgQuoteRepo) GetDetails(ctx context.Context, id uuid.UUID) (domain.QuoteDetails, error) {
	byID, err := loadQuoteDetails(ctx, r.db, []uuid.UUID{id})
	if err != nil {
		return domain.QuoteDetails{}, fmt.Errorf("repo.QuoteRepo.GetDetails: %w", err)
	}
	details, ok := byID[id]
	if !ok {
		return domain.QuoteDetails{}, fmt.Errorf("repo.QuoteRepo.GetDetails: %w", domain.ErrNotFound)
	}
	return details, nil
}

func (r *pgQuoteRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.QuoteDetails, error) {
	const q = `SELECT id FROM quotes WHERE request_id = @request_id ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"request_id": requestID})
	if err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.ListByRequest: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.QuoteRepo.ListByRequest: scan: %w", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.ListByRequest: rows: %w", err)
	}

	if len(ids) == 0 {
		return []domain.QuoteDetails{}, nil
	}

	byID, err := loadQuoteDetails(ctx, r.db, ids)
	if err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.ListByRequest: %w", err)
	}

	out := make([]domain.QuoteDetails, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *pgQuoteRepo) CountByRequest(ctx context.Context, requestID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM quotes WHERE request_id = @request_id`

	var count int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"request_id": requestID}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.QuoteRepo.CountByRequest: %w", err)
	}
	return count, nil
}

func (r *pgQuoteRepo) BelongsToRequest(ctx context.Context, quoteID, requestID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM quotes WHERE id = @id AND request_id = @request_id)`

	var ok bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": quoteID, "request_id": requestID}).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("repo.QuoteRepo.BelongsToRequest: %w", err)
	}
	return ok, nil
}

func (r *pgQuoteRepo) Replace(ctx context.Context, id uuid.UUID, cost decimal.Decimal, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.QuoteRepo.Replace: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		UPDATE quotes
		SET cost = @cost::numeric, updated_at = now()
		WHERE id = @id`

	tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"id": id, "cost": cost.String()})
	if err != nil {
		return fmt.Errorf("repo.QuoteRepo.Replace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.QuoteRepo.Replace: %w", domain.ErrNotFound)
	}

	if flights != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM quote_flights WHERE quote_id = @id`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("repo.QuoteRepo.Replace: clear flights: %w", err)
		}
		if _, err := insertFlights(ctx, tx, id, *flights); err != nil {
			return fmt.Errorf("repo.QuoteRepo.Replace: %w", err)
		}
	}

	if hotels != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM quote_hotels WHERE quote_id = @id`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("repo.QuoteRepo.Replace: clear hotels: %w", err)
		}
		if _, err := insertHotels(ctx, tx, id, *hotels); err != nil {
			return fmt.Errorf("repo.QuoteRepo.Replace: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.QuoteRepo.Replace: commit: %w", err)
	}
	return nil
}

func (r *pgQuoteRepo) UpdateCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error {
	const q = `
		UPDATE quotes
		SET cost = @cost::numeric, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "cost": cost.String()})
	if err != nil {
		return fmt.Errorf("repo.QuoteRepo.UpdateCost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.QuoteRepo.UpdateCost: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgQuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM quotes WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.QuoteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.QuoteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// loadQuoteDetails loads quotes with agency and line items for the given IDs
// and recomputes each total from the line items. The stored cost column is a
// cache and is deliberately not read here.
func loadQuoteDetails(ctx context.Context, d db, ids []uuid.UUID) (map[uuid.UUID]domain.QuoteDetails, error) {
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}
	args := pgx.NamedArgs{"ids": idStrs}

	const quoteQ = `
		SELECT q.id, a.id, a.name
		FROM quotes q
		JOIN agencies a ON a.id = q.agency_id
		WHERE q.id = ANY(@ids::uuid[])`

	rows, err := d.Query(ctx, quoteQ, args)
	if err != nil {
		return nil, fmt.Errorf("load quotes: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]domain.QuoteDetails)
	for rows.Next() {
		var quoteID, agencyID pgtype.UUID
		var agencyName string
		if err := rows.Scan(&quoteID, &agencyID, &agencyName); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		qid := uuid.UUID(quoteID.Bytes)
		out[qid] = domain.QuoteDetails{
			ID: qid,
			Agency: domain.AgencySummary{
				ID:   uuid.UUID(agencyID.Bytes),
				Name: agencyName,
			},
			Flights: []domain.QuoteFlight{},
			Hotels:  []domain.QuoteHotel{},
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quote rows: %w", err)
	}

	flights, err := loadFlights(ctx, d, `quote_id = ANY(@ids::uuid[])`, args)
	if err != nil {
		return nil, err
	}
	for _, f := range flights {
		det := out[f.QuoteID]
		det.Flights = append(det.Flights, f)
		out[f.QuoteID] = det
	}

	hotels, err := loadHotels(ctx, d, `quote_id = ANY(@ids::uuid[])`, args)
	if err != nil {
		return nil, err
	}
	for _, h := range hotels {
		det := out[h.QuoteID]
		det.Hotels = append(det.Hotels, h)
		out[h.QuoteID] = det
	}

	for id, det := range out {
		det.Total = domain.QuoteTotal(det.Flights, det.Hotels)
		out[id] = det
	}

	return out, nil
}

// scanQuote maps a quote row (no line items) into a domain.Quote.
func scanQuote(s scanner) (domain.Quote, error) {
	var (
		q         domain.Quote
		id        pgtype.UUID
		requestID pgtype.UUID
		agencyID  pgtype.UUID
		cost      string
	)

	err := s.Scan(&id, &requestID, &agencyID, &cost, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Quote{}, domain.ErrNotFound
		}
		return domain.Quote{}, err
	}

	q.ID = uuid.UUID(id.Bytes)
	q.RequestID = uuid.UUID(requestID.Bytes)
	q.AgencyID = uuid.UUID(agencyID.Bytes)
	q.Cost, err = parseDecimal(cost)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("parse cost: %w", err)
	}
	q.Flights = []domain.QuoteFlight{}
	q.Hotels = []domain.QuoteHotel{}
	return q, nil
}

// parseDecimal converts a numeric column selected as text into a decimal.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

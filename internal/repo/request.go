package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// RequestRepo defines the persistence operations for Requests.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type RequestRepo interface {
	// Create inserts a new request and returns the persisted record.
	Create(ctx context.Context, request domain.Request) (domain.Request, error)

	// GetByID retrieves a single request row (no graph) by primary key.
	// Returns domain.ErrNotFound if no request with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error)

	// CountByStartYear returns how many requests have a start date in the
	// given calendar year. Used for request-code sequencing.
	CountByStartYear(ctx context.Context, year int) (int, error)

	// List returns all requests with project and selected-quote summaries,
	// optionally filtered to the given statuses (no filter when empty).
	List(ctx context.Context, statuses ...domain.Status) ([]domain.RequestSummary, error)

	// ListByTraveler returns the given traveler's requests with project and
	// selected-quote summaries.
	ListByTraveler(ctx context.Context, travelerID uuid.UUID) ([]domain.RequestSummary, error)

	// GetDetails assembles the full read model for the detail view:
	// request, project name, and every quote with agency and line items.
	// Returns domain.ErrNotFound if the request does not exist.
	GetDetails(ctx context.Context, id uuid.UUID) (domain.RequestDetails, error)

	// TransitionStatus moves a request from one status to another in a
	// single guarded UPDATE. Returns domain.ErrNotFound if the request does
	// not exist, domain.ErrConflict if its current status is not `from`,
	// concurrent conflicting transitions lose cleanly instead of
	// double-applying.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error

	// SetStatusAndSelection is TransitionStatus plus an update of the
	// selected quote reference, used by the quote-selection transition and
	// by cancellation (which clears the selection).
	SetStatusAndSelection(ctx context.Context, id uuid.UUID, from, to domain.Status, selectedQuoteID *uuid.UUID) error
}

// pgRequestRepo is the Postgres implementation of RequestRepo.
type pgRequestRepo struct {
	db db
}

// NewRequestRepo constructs a RequestRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRequestRepo(db db) RequestRepo {
	return &pgRequestRepo{db: db}
}

const requestColumns = `
	id, request_code, traveler_id, project_id, description, origin_city,
	destination_city, start_date, is_round, end_date, need_hotel,
	check_in_date, check_out_date, status, selected_quote_id,
	created_at, updated_at`

func (r *pgRequestRepo) Create(ctx context.Context, request domain.Request) (domain.Request, error) {
	const q = `
		INSERT INTO requests (
			request_code, traveler_id, project_id, description, origin_city,
			destination_city, start_date, is_round, end_date, need_hotel,
			check_in_date, check_out_date, status)
		VALUES (
			@request_code, @traveler_id, @project_id, @description, @origin_city,
			@destination_city, @start_date, @is_round, @end_date, @need_hotel,
			@check_in_date, @check_out_date, @status)
		RETURNING` + requestColumns

	args := pgx.NamedArgs{
		"request_code":     request.RequestCode,
		"traveler_id":      request.TravelerID,
		"project_id":       request.ProjectID,
		"description":      request.Description,
		"origin_city":      request.OriginCity,
		"destination_city": request.DestinationCity,
		"start_date":       request.StartDate,
		"is_round":         request.IsRound,
		"end_date":         request.EndDate, // nil becomes NULL
		"need_hotel":       request.NeedHotel,
		"check_in_date":    request.CheckInDate,
		"check_out_date":   request.CheckOutDate,
		"status":           string(request.Status),
	}

	result, err := scanRequest(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error) {
	const q = `SELECT` + requestColumns + ` FROM requests WHERE id = @id`

	result, err := scanRequest(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgRequestRepo) CountByStartYear(ctx context.Context, year int) (int, error) {
	const q = `SELECT count(*) FROM requests WHERE date_part('year', start_date) = @year`

	var count int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"year": year}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.RequestRepo.CountByStartYear: %w", err)
	}
	return count, nil
}

func (r *pgRequestRepo) List(ctx context.Context, statuses ...domain.Status) ([]domain.RequestSummary, error) {
	q := `
		SELECT r.id, r.request_code, r.traveler_id, r.project_id, r.description,
		       r.origin_city, r.destination_city, r.start_date, r.is_round,
		       r.end_date, r.need_hotel, r.check_in_date, r.check_out_date,
		       r.status, r.selected_quote_id, r.created_at, r.updated_at,
		       p.name, p.budget::text
		FROM requests r
		JOIN projects p ON p.id = r.project_id`

	args := pgx.NamedArgs{}
	if len(statuses) > 0 {
		q += ` WHERE r.status = ANY(@statuses)`
		ss := make([]string, len(statuses))
		for i, s := range statuses {
			ss[i] = string(s)
		}
		args["statuses"] = ss
	}
	q += ` ORDER BY r.created_at DESC`

	return r.listSummaries(ctx, q, args)
}

func (r *pgRequestRepo) ListByTraveler(ctx context.Context, travelerID uuid.UUID) ([]domain.RequestSummary, error) {
	const q = `
		SELECT r.id, r.request_code, r.traveler_id, r.project_id, r.description,
		       r.origin_city, r.destination_city, r.start_date, r.is_round,
		       r.end_date, r.need_hotel, r.check_in_date, r.check_out_date,
		       r.status, r.selected_quote_id, r.created_at, r.updated_at,
		       p.name, p.budget::text
		FROM requests r
		JOIN projects p ON p.id = r.project_id
		WHERE r.traveler_id = @traveler_id
		ORDER BY r.created_at DESC`

	return r.listSummaries(ctx, q, pgx.NamedArgs{"traveler_id": travelerID})
}

// listSummaries runs a summary query and attaches selected-quote details.
func (r *pgRequestRepo) listSummaries(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.RequestSummary, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.RequestRepo.listSummaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.RequestSummary
	var selectedIDs []uuid.UUID
	for rows.Next() {
		s, err := scanRequestSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RequestRepo.listSummaries: scan: %w", err)
		}
		if s.SelectedQuoteID != nil {
			selectedIDs = append(selectedIDs, *s.SelectedQuoteID)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RequestRepo.listSummaries: rows: %w", err)
	}

	if len(selectedIDs) > 0 {
		details, err := loadQuoteDetails(ctx, r.db, selectedIDs)
		if err != nil {
			return nil, fmt.Errorf("repo.RequestRepo.listSummaries: %w", err)
		}
		for i := range summaries {
			if id := summaries[i].SelectedQuoteID; id != nil {
				if d, ok := details[*id]; ok {
					summaries[i].SelectedQuote = &d
				}
			}
		}
	}

	return summaries, nil
}

func (r *pgRequestRepo) GetDetails(ctx context.Context, id uuid.UUID) (domain.RequestDetails, error) {
	const q = `
		SELECT r.id, r.request_code, r.traveler_id, r.project_id, r.description,
		       r.origin_city, r.destination_city, r.start_date, r.is_round,
		       r.end_date, r.need_hotel, r.check_in_date, r.check_out_date,
		       r.status, r.selected_quote_id, r.created_at, r.updated_at,
		       p.name
		FROM requests r
		JOIN projects p ON p.id = r.project_id
		WHERE r.id = @id`

	var details domain.RequestDetails
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})

	req, projectName, err := scanRequestWithProject(row)
	if err != nil {
		return domain.RequestDetails{}, fmt.Errorf("repo.RequestRepo.GetDetails: %w", err)
	}
	details.Request = req
	details.ProjectName = projectName

	quoteIDs, err := r.quoteIDsByRequest(ctx, id)
	if err != nil {
		return domain.RequestDetails{}, fmt.Errorf("repo.RequestRepo.GetDetails: %w", err)
	}

	details.Quotes = []domain.QuoteDetails{}
	if len(quoteIDs) > 0 {
		byID, err := loadQuoteDetails(ctx, r.db, quoteIDs)
		if err != nil {
			return domain.RequestDetails{}, fmt.Errorf("repo.RequestRepo.GetDetails: %w", err)
		}
		for _, qid := range quoteIDs {
			if d, ok := byID[qid]; ok {
				details.Quotes = append(details.Quotes, d)
			}
		}
	}

	if details.SelectedQuoteID != nil {
		for i := range details.Quotes {
			if details.Quotes[i].ID == *details.SelectedQuoteID {
				details.SelectedQuote = &details.Quotes[i]
				break
			}
		}
	}

	return details, nil
}

func (r *pgRequestRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error {
	return r.guardedUpdate(ctx, id, from, `
		UPDATE requests
		SET status = @to, updated_at = now()
		WHERE id = @id AND status = @from`,
		pgx.NamedArgs{"id": id, "from": string(from), "to": string(to)})
}

func (r *pgRequestRepo) SetStatusAndSelection(ctx context.Context, id uuid.UUID, from, to domain.Status, selectedQuoteID *uuid.UUID) error {
	return r.guardedUpdate(ctx, id, from, `
		UPDATE requests
		SET status = @to, selected_quote_id = @selected_quote_id, updated_at = now()
		WHERE id = @id AND status = @from`,
		pgx.NamedArgs{"id": id, "from": string(from), "to": string(to), "selected_quote_id": selectedQuoteID})
}

// guardedUpdate executes a status-guarded UPDATE and distinguishes a missing
// request (ErrNotFound) from a lost transition race (ErrConflict).
func (r *pgRequestRepo) guardedUpdate(ctx context.Context, id uuid.UUID, from domain.Status, q string, args pgx.NamedArgs) error {
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.RequestRepo.guardedUpdate: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	const existsQ = `SELECT EXISTS (SELECT 1 FROM requests WHERE id = @id)`
	if err := r.db.QueryRow(ctx, existsQ, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return fmt.Errorf("repo.RequestRepo.guardedUpdate: exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("repo.RequestRepo.guardedUpdate: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("repo.RequestRepo.guardedUpdate: status is no longer %q: %w", from, domain.ErrConflict)
}

// quoteIDsByRequest returns the IDs of all quotes attached to a request,
// oldest first.
func (r *pgRequestRepo) quoteIDsByRequest(ctx context.Context, requestID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT id FROM quotes WHERE request_id = @request_id ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"request_id": requestID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	return ids, rows.Err()
}

// scanRequest maps a single database row into a domain.Request.
// It handles the UUID and nullable date/selection conversions.
func scanRequest(s scanner) (domain.Request, error) {
	var (
		req           domain.Request
		id            pgtype.UUID
		travelerID    pgtype.UUID
		projectID     pgtype.UUID
		endDate       pgtype.Timestamptz
		checkIn       pgtype.Timestamptz
		checkOut      pgtype.Timestamptz
		status        string
		selectedQuote pgtype.UUID
	)

	err := s.Scan(
		&id, &req.RequestCode, &travelerID, &projectID, &req.Description,
		&req.OriginCity, &req.DestinationCity, &req.StartDate, &req.IsRound,
		&endDate, &req.NeedHotel, &checkIn, &checkOut, &status,
		&selectedQuote, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Request{}, domain.ErrNotFound
		}
		return domain.Request{}, err
	}

	req.ID = uuid.UUID(id.Bytes)
	req.TravelerID = uuid.UUID(travelerID.Bytes)
	req.ProjectID = uuid.UUID(projectID.Bytes)
	req.Status = domain.Status(status)
	if endDate.Valid {
		t := endDate.Time
		req.EndDate = &t
	}
	if checkIn.Valid {
		t := checkIn.Time
		req.CheckInDate = &t
	}
	if checkOut.Valid {
		t := checkOut.Time
		req.CheckOutDate = &t
	}
	if selectedQuote.Valid {
		u := uuid.UUID(selectedQuote.Bytes)
		req.SelectedQuoteID = &u
	}

	return req, nil
}

// scanRequestSummary maps a request row joined with its project name and
// budget into a domain.RequestSummary.
func scanRequestSummary(s scanner) (domain.RequestSummary, error) {
	var (
		sum           domain.RequestSummary
		id            pgtype.UUID
		travelerID    pgtype.UUID
		projectID     pgtype.UUID
		endDate       pgtype.Timestamptz
		checkIn       pgtype.Timestamptz
		checkOut      pgtype.Timestamptz
		status        string
		selectedQuote pgtype.UUID
		budget        string
	)

	err := s.Scan(
		&id, &sum.RequestCode, &travelerID, &projectID, &sum.Description,
		&sum.OriginCity, &sum.DestinationCity, &sum.StartDate, &sum.IsRound,
		&endDate, &sum.NeedHotel, &checkIn, &checkOut, &status,
		&selectedQuote, &sum.CreatedAt, &sum.UpdatedAt,
		&sum.ProjectName, &budget,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RequestSummary{}, domain.ErrNotFound
		}
		return domain.RequestSummary{}, err
	}

	sum.ID = uuid.UUID(id.Bytes)
	sum.TravelerID = uuid.UUID(travelerID.Bytes)
	sum.ProjectID = uuid.UUID(projectID.Bytes)
	sum.Status = domain.Status(status)
	if endDate.Valid {
		t := endDate.Time
		sum.EndDate = &t
	}
	if checkIn.Valid {
		t := checkIn.Time
		sum.CheckInDate = &t
	}
	if checkOut.Valid {
		t := checkOut.Time
		sum.CheckOutDate = &t
	}
	if selectedQuote.Valid {
		u := uuid.UUID(selectedQuote.Bytes)
		sum.SelectedQuoteID = &u
	}
	if b, err := parseDecimal(budget); err == nil {
		sum.ProjectBudget = &b
	}

	return sum, nil
}

// scanRequestWithProject maps a request row joined with its project name.
func scanRequestWithProject(s scanner) (domain.Request, string, error) {
	var (
		req           domain.Request
		id            pgtype.UUID
		travelerID    pgtype.UUID
		projectID     pgtype.UUID
		endDate       pgtype.Timestamptz
		checkIn       pgtype.Timestamptz
		checkOut      pgtype.Timestamptz
		status        string
		selectedQuote pgtype.UUID
		projectName   string
	)

	err := s.Scan(
		&id, &req.RequestCode, &travelerID, &projectID, &req.Description,
		&req.OriginCity, &req.DestinationCity, &req.StartDate, &req.IsRound,
		&endDate, &req.NeedHotel, &checkIn, &checkOut, &status,
		&selectedQuote, &req.CreatedAt, &req.UpdatedAt,
		&projectName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Request{}, "", domain.ErrNotFound
		}
		return domain.Request{}, "", err
	}

	req.ID = uuid.UUID(id.Bytes)
	req.TravelerID = uuid.UUID(travelerID.Bytes)
	req.ProjectID = uuid.UUID(projectID.Bytes)
	req.Status = domain.Status(status)
	if endDate.Valid {
		t := endDate.Time
		req.EndDate = &t
	}
	if checkIn.Valid {
		t := checkIn.Time
		req.CheckInDate = &t
	}
	if checkOut.Valid {
		t := checkOut.Time
		req.CheckOutDate = &t
	}
	if selectedQuote.Valid {
		u := uuid.UUID(selectedQuote.Bytes)
		req.SelectedQuoteID = &u
	}

	return req, projectName, nil
}

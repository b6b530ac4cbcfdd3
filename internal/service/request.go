// Package service contains the business logic for the Travel Desk API.
// Services validate inputs, enforce the request lifecycle rules, and
// orchestrate repo calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/repo"
)

// Decision is a manager's verdict on a request waiting for approval.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// RequestService implements the request lifecycle: creation with code
// generation, the quoting/selection/approval transitions, and the role-gated
// read models.
type RequestService struct {
	requests repo.RequestRepo
	quotes   repo.QuoteRepo
	projects repo.ProjectRepo

	// enforceBudget turns on the approval budget check: approving a request
	// whose selected quote total exceeds the project budget is rejected.
	// Off by default; the decision is then left entirely to the manager.
	enforceBudget bool

	// now is replaceable in tests so request-code years are deterministic.
	now func() time.Time
}

// NewRequestService constructs a RequestService backed by the provided repos.
func NewRequestService(requests repo.RequestRepo, quotes repo.QuoteRepo, projects repo.ProjectRepo, enforceBudget bool) *RequestService {
	return &RequestService{
		requests:      requests,
		quotes:        quotes,
		projects:      projects,
		enforceBudget: enforceBudget,
		now:           time.Now,
	}
}

// Create validates and persists a new request on behalf of the caller.
// The traveler reference always comes from the verified identity, never from
// the payload. The initial status is Submitted when the caller submits
// directly, Draft otherwise. The request code is CD-<year>-<seq> where seq
// continues the count of requests starting in the current year.
func (s *RequestService) Create(ctx context.Context, ident domain.Identity, request domain.Request) (domain.Request, error) {
	request.TravelerID = ident.UserID
	if request.Status != domain.StatusSubmitted {
		request.Status = domain.StatusDraft
	}

	if err := request.ValidateNew(); err != nil {
		return domain.Request{}, err
	}

	if _, err := s.projects.GetByID(ctx, request.ProjectID); err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Create: project: %w", err)
	}

	year := s.now().Year()
	count, err := s.requests.CountByStartYear(ctx, year)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Create: %w", err)
	}
	request.RequestCode = domain.NextRequestCode(year, count)

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Create: %w", err)
	}
	return created, nil
}

// GetDetails assembles the full request graph for the detail view, with
// quote totals recomputed and the display status worded for the caller's role.
func (s *RequestService) GetDetails(ctx context.Context, ident domain.Identity, id uuid.UUID) (domain.RequestDetails, error) {
	details, err := s.requests.GetDetails(ctx, id)
	if err != nil {
		return domain.RequestDetails{}, fmt.Errorf("service.RequestService.GetDetails: %w", err)
	}
	details.DisplayStatus = domain.StatusForViewer(details.Status, ident.Role)
	return details, nil
}

// List returns all requests with project and selected-quote summaries.
func (s *RequestService) List(ctx context.Context, ident domain.Identity) ([]domain.RequestSummary, error) {
	summaries, err := s.requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RequestService.List: %w", err)
	}
	return s.decorate(summaries, ident), nil
}

// ManagerView returns the requests waiting for a manager decision.
func (s *RequestService) ManagerView(ctx context.Context, ident domain.Identity) ([]domain.RequestSummary, error) {
	summaries, err := s.requests.List(ctx, domain.StatusWaitingApproval)
	if err != nil {
		return nil, fmt.Errorf("service.RequestService.ManagerView: %w", err)
	}
	return s.decorate(summaries, ident), nil
}

// FacilitatorView returns the facilitator board: submitted requests waiting
// to be quoted and requests currently in quoting.
func (s *RequestService) FacilitatorView(ctx context.Context, ident domain.Identity) (domain.FacilitatorView, error) {
	submitted, err := s.requests.List(ctx, domain.StatusSubmitted)
	if err != nil {
		return domain.FacilitatorView{}, fmt.Errorf("service.RequestService.FacilitatorView: %w", err)
	}
	ongoing, err := s.requests.List(ctx, domain.StatusWaitingQuotes)
	if err != nil {
		return domain.FacilitatorView{}, fmt.Errorf("service.RequestService.FacilitatorView: %w", err)
	}
	return domain.FacilitatorView{
		SubmittedRequests: s.decorate(submitted, ident),
		OngoingRequests:   s.decorate(ongoing, ident),
	}, nil
}

// TravelerView returns a traveler's own requests. Travelers may only read
// their own; facilitators and managers may read anyone's.
func (s *RequestService) TravelerView(ctx context.Context, ident domain.Identity, travelerID uuid.UUID) ([]domain.RequestSummary, error) {
	if ident.Role == domain.RoleTraveler && ident.UserID != travelerID {
		return nil, fmt.Errorf("service.RequestService.TravelerView: you can only view your own requests: %w", domain.ErrForbidden)
	}

	summaries, err := s.requests.ListByTraveler(ctx, travelerID)
	if err != nil {
		return nil, fmt.Errorf("service.RequestService.TravelerView: %w", err)
	}
	return s.decorate(summaries, ident), nil
}

// StartQuoting moves a Submitted request into WaitingQuotes.
// Any other current status is a guard failure and leaves the request
// untouched.
func (s *RequestService) StartQuoting(ctx context.Context, id uuid.UUID) error {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.RequestService.StartQuoting: %w", err)
	}
	if request.Status != domain.StatusSubmitted {
		return fmt.Errorf("service.RequestService.StartQuoting: only submitted requests can be moved: %w", domain.ErrConflict)
	}

	if err := s.requests.TransitionStatus(ctx, id, domain.StatusSubmitted, domain.StatusWaitingQuotes); err != nil {
		return fmt.Errorf("service.RequestService.StartQuoting: %w", err)
	}
	return nil
}

// ManagerDecision applies an approve/reject verdict to a request.
// The request must currently be WaitingApproval; the guarded transition
// ensures two concurrent decisions cannot both succeed. With budget
// enforcement on, approval is rejected when the selected quote's recomputed
// total exceeds the project budget.
func (s *RequestService) ManagerDecision(ctx context.Context, id uuid.UUID, decision string) error {
	var target domain.Status
	switch decision {
	case DecisionApprove:
		target = domain.StatusApproved
	case DecisionReject:
		target = domain.StatusRejected
	default:
		var errs domain.FieldErrors
		errs.Add("decision", "decision must be approve or reject")
		return errs
	}

	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.RequestService.ManagerDecision: %w", err)
	}
	if request.Status != domain.StatusWaitingApproval {
		return fmt.Errorf("service.RequestService.ManagerDecision: request is not eligible for a decision: %w", domain.ErrConflict)
	}

	if target == domain.StatusApproved && s.enforceBudget {
		if err := s.checkBudget(ctx, request); err != nil {
			return err
		}
	}

	if err := s.requests.TransitionStatus(ctx, id, domain.StatusWaitingApproval, target); err != nil {
		return fmt.Errorf("service.RequestService.ManagerDecision: %w", err)
	}
	return nil
}

// Update is the generic transition entry point behind PUT /requests/{id}.
// The payload ID must match the path ID. Allowed moves are validated by the
// state machine; selection and quote-existence guards are layered on top:
//   - WaitingQuotes → WaitingSelection requires at least one quote.
//   - WaitingSelection → WaitingApproval requires a selected quote that
//     belongs to this request.
//   - Cancellation clears any selection.
//   - Any other transition keeps the stored selection; a selectedQuoteId in
//     the payload only takes effect on the selection transition.
func (s *RequestService) Update(ctx context.Context, pathID, payloadID uuid.UUID, status domain.Status, selectedQuoteID *uuid.UUID) error {
	if pathID != payloadID {
		return fmt.Errorf("service.RequestService.Update: request ID in URL does not match ID in payload: %w", domain.ErrConflict)
	}

	request, err := s.requests.GetByID(ctx, pathID)
	if err != nil {
		return fmt.Errorf("service.RequestService.Update: %w", err)
	}

	if err := domain.ValidateTransition(request.Status, status); err != nil {
		return fmt.Errorf("service.RequestService.Update: %w", err)
	}

	switch status {
	case domain.StatusWaitingSelection:
		count, err := s.quotes.CountByRequest(ctx, pathID)
		if err != nil {
			return fmt.Errorf("service.RequestService.Update: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("service.RequestService.Update: at least one quote is required before selection: %w", domain.ErrConflict)
		}
		selectedQuoteID = request.SelectedQuoteID

	case domain.StatusWaitingApproval:
		if selectedQuoteID == nil {
			var errs domain.FieldErrors
			errs.Add("selectedQuoteId", "a selected quote is required")
			return errs
		}
		belongs, err := s.quotes.BelongsToRequest(ctx, *selectedQuoteID, pathID)
		if err != nil {
			return fmt.Errorf("service.RequestService.Update: %w", err)
		}
		if !belongs {
			var errs domain.FieldErrors
			errs.Add("selectedQuoteId", "selected quote does not belong to this request")
			return errs
		}

	case domain.StatusCanceled:
		selectedQuoteID = nil

	default:
		selectedQuoteID = request.SelectedQuoteID
	}

	if err := s.requests.SetStatusAndSelection(ctx, pathID, request.Status, status, selectedQuoteID); err != nil {
		return fmt.Errorf("service.RequestService.Update: %w", err)
	}
	return nil
}

// checkBudget rejects approval when the selected quote's recomputed total
// exceeds the project budget. The stored quote cost is never consulted.
func (s *RequestService) checkBudget(ctx context.Context, request domain.Request) error {
	if request.SelectedQuoteID == nil {
		return fmt.Errorf("service.RequestService.checkBudget: no quote selected: %w", domain.ErrConflict)
	}

	quote, err := s.quotes.GetByID(ctx, *request.SelectedQuoteID)
	if err != nil {
		return fmt.Errorf("service.RequestService.checkBudget: %w", err)
	}
	project, err := s.projects.GetByID(ctx, request.ProjectID)
	if err != nil {
		return fmt.Errorf("service.RequestService.checkBudget: %w", err)
	}

	total := quote.Total()
	if total.GreaterThan(project.Budget) {
		return fmt.Errorf("service.RequestService.checkBudget: quote total %s exceeds project budget %s: %w",
			total.StringFixed(2), project.Budget.StringFixed(2), domain.ErrConflict)
	}
	return nil
}

// decorate fills viewer-dependent display fields and guarantees a non-nil
// slice so callers can safely range over the result.
func (s *RequestService) decorate(summaries []domain.RequestSummary, ident domain.Identity) []domain.RequestSummary {
	if summaries == nil {
		return []domain.RequestSummary{}
	}
	for i := range summaries {
		summaries[i].DisplayStatus = domain.StatusForViewer(summaries[i].Status, ident.Role)
	}
	return summaries
}

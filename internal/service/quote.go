package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/repo"
)

// QuoteService implements business logic for Quotes. It holds the request
// and agency repos because creating a quote requires both parents to exist,
// and every mutation resyncs the quote's cached cost from its line items.
type QuoteService struct {
	quotes   repo.QuoteRepo
	requests repo.RequestRepo
	agencies repo.AgencyRepo
}

// NewQuoteService constructs a QuoteService backed by the provided repos.
func NewQuoteService(quotes repo.QuoteRepo, requests repo.RequestRepo, agencies repo.AgencyRepo) *QuoteService {
	return &QuoteService{quotes: quotes, requests: requests, agencies: agencies}
}

// Create validates the quote and its line items, verifies the parent request
// and agency exist, computes the cost from the line items, and persists the
// aggregate in one transaction.
func (s *QuoteService) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	if _, err := s.requests.GetByID(ctx, quote.RequestID); err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: request: %w", err)
	}
	if _, err := s.agencies.GetByID(ctx, quote.AgencyID); err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: agency: %w", err)
	}
	if err := validateLineItems(quote.Flights, quote.Hotels); err != nil {
		return domain.Quote{}, err
	}

	quote.Cost = quote.Total()

	created, err := s.quotes.Create(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: %w", err)
	}
	return created, nil
}

// GetDetails returns a quote with agency, line items, and recomputed total.
func (s *QuoteService) GetDetails(ctx context.Context, id uuid.UUID) (domain.QuoteDetails, error) {
	details, err := s.quotes.GetDetails(ctx, id)
	if err != nil {
		return domain.QuoteDetails{}, fmt.Errorf("service.QuoteService.GetDetails: %w", err)
	}
	return details, nil
}

// ListByRequest returns all quotes submitted against a request.
// Always returns a non-nil slice so callers can safely range over it.
func (s *QuoteService) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.QuoteDetails, error) {
	quotes, err := s.quotes.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("service.QuoteService.ListByRequest: %w", err)
	}
	if quotes == nil {
		return []domain.QuoteDetails{}, nil
	}
	return quotes, nil
}

// Update replaces the quote's child collections with the provided ones (a
// nil slice pointer leaves that collection untouched) and resyncs the cached
// cost from whatever line items the quote ends up with. Any cost sent by the
// client is ignored; the aggregator is the only writer of that field.
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error {
	existing, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.QuoteService.Update: %w", err)
	}

	finalFlights := existing.Flights
	if flights != nil {
		finalFlights = *flights
	}
	finalHotels := existing.Hotels
	if hotels != nil {
		finalHotels = *hotels
	}
	if err := validateLineItems(finalFlights, finalHotels); err != nil {
		return err
	}

	cost := domain.QuoteTotal(finalFlights, finalHotels)
	if err := s.quotes.Replace(ctx, id, cost, flights, hotels); err != nil {
		return fmt.Errorf("service.QuoteService.Update: %w", err)
	}
	return nil
}

// Delete removes a quote and, via cascade, its line items.
func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.quotes.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.QuoteService.Delete: %w", err)
	}
	return nil
}

// validateLineItems runs the per-item rules and collects all violations.
func validateLineItems(flights []domain.QuoteFlight, hotels []domain.QuoteHotel) error {
	var errs domain.FieldErrors
	for i, f := range flights {
		if err := f.Validate(); err != nil {
			if fe, ok := err.(domain.FieldErrors); ok {
				for _, msg := range fe.Messages() {
					errs.Add(fmt.Sprintf("flights[%d]", i), msg)
				}
			}
		}
	}
	for i, h := range hotels {
		if err := h.Validate(); err != nil {
			if fe, ok := err.(domain.FieldErrors); ok {
				for _, msg := range fe.Messages() {
					errs.Add(fmt.Sprintf("hotels[%d]", i), msg)
				}
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

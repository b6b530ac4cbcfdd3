package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/repo"
)

// FlightService implements standalone CRUD for quote flight line items.
// Every mutation resyncs the parent quote's cached cost so the denormalized
// field never drifts from the line items.
type FlightService struct {
	flights repo.FlightRepo
	quotes  repo.QuoteRepo
}

// NewFlightService constructs a FlightService backed by the provided repos.
func NewFlightService(flights repo.FlightRepo, quotes repo.QuoteRepo) *FlightService {
	return &FlightService{flights: flights, quotes: quotes}
}

func (s *FlightService) Create(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error) {
	if _, err := s.quotes.GetByID(ctx, flight.QuoteID); err != nil {
		return domain.QuoteFlight{}, fmt.Errorf("service.FlightService.Create: quote: %w", err)
	}
	if err := flight.Validate(); err != nil {
		return domain.QuoteFlight{}, err
	}

	created, err := s.flights.Create(ctx, flight)
	if err != nil {
		return domain.QuoteFlight{}, fmt.Errorf("service.FlightService.Create: %w", err)
	}
	if err := s.resyncCost(ctx, created.QuoteID); err != nil {
		return domain.QuoteFlight{}, err
	}
	return created, nil
}

func (s *FlightService) GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteFlight, error) {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return domain.QuoteFlight{}, fmt.Errorf("service.FlightService.GetByID: %w", err)
	}
	return flight, nil
}

// List returns all flight line items.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FlightService) List(ctx context.Context) ([]domain.QuoteFlight, error) {
	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.FlightService.List: %w", err)
	}
	if flights == nil {
		return []domain.QuoteFlight{}, nil
	}
	return flights, nil
}

func (s *FlightService) Update(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error) {
	if err := flight.Validate(); err != nil {
		return domain.QuoteFlight{}, err
	}

	updated, err := s.flights.Update(ctx, flight)
	if err != nil {
		return domain.QuoteFlight{}, fmt.Errorf("service.FlightService.Update: %w", err)
	}
	if err := s.resyncCost(ctx, updated.QuoteID); err != nil {
		return domain.QuoteFlight{}, err
	}
	return updated, nil
}

func (s *FlightService) Delete(ctx context.Context, id uuid.UUID) error {
	// Read first: the parent quote ID is needed for the cost resync after
	// the row is gone.
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.FlightService.Delete: %w", err)
	}
	if err := s.flights.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FlightService.Delete: %w", err)
	}
	return s.resyncCost(ctx, flight.QuoteID)
}

func (s *FlightService) resyncCost(ctx context.Context, quoteID uuid.UUID) error {
	return resyncQuoteCost(ctx, s.quotes, quoteID)
}

// HotelService implements standalone CRUD for quote hotel line items,
// mirroring FlightService including the cost resync.
type HotelService struct {
	hotels repo.HotelRepo
	quotes repo.QuoteRepo
}

// NewHotelService constructs a HotelService backed by the provided repos.
func NewHotelService(hotels repo.HotelRepo, quotes repo.QuoteRepo) *HotelService {
	return &HotelService{hotels: hotels, quotes: quotes}
}

func (s *HotelService) Create(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error) {
	if _, err := s.quotes.GetByID(ctx, hotel.QuoteID); err != nil {
		return domain.QuoteHotel{}, fmt.Errorf("service.HotelService.Create: quote: %w", err)
	}
	if err := hotel.Validate(); err != nil {
		return domain.QuoteHotel{}, err
	}

	created, err := s.hotels.Create(ctx, hotel)
	if err != nil {
		return domain.QuoteHotel{}, fmt.Errorf("service.HotelService.Create: %w", err)
	}
	if err := resyncQuoteCost(ctx, s.quotes, created.QuoteID); err != nil {
		return domain.QuoteHotel{}, err
	}
	return created, nil
}

func (s *HotelService) GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteHotel, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return domain.QuoteHotel{}, fmt.Errorf("service.HotelService.GetByID: %w", err)
	}
	return hotel, nil
}

// List returns all hotel line items.
// Always returns a non-nil slice so callers can safely range over it.
func (s *HotelService) List(ctx context.Context) ([]domain.QuoteHotel, error) {
	hotels, err := s.hotels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HotelService.List: %w", err)
	}
	if hotels == nil {
		return []domain.QuoteHotel{}, nil
	}
	return hotels, nil
}

func (s *HotelService) Update(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error) {
	if err := hotel.Validate(); err != nil {
		return domain.QuoteHotel{}, err
	}

	updated, err := s.hotels.Update(ctx, hotel)
	if err != nil {
		return domain.QuoteHotel{}, fmt.Errorf("service.HotelService.Update: %w", err)
	}
	if err := resyncQuoteCost(ctx, s.quotes, updated.QuoteID); err != nil {
		return domain.QuoteHotel{}, err
	}
	return updated, nil
}

func (s *HotelService) Delete(ctx context.Context, id uuid.UUID) error {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.HotelService.Delete: %w", err)
	}
	if err := s.hotels.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.HotelService.Delete: %w", err)
	}
	return resyncQuoteCost(ctx, s.quotes, hotel.QuoteID)
}

// resyncQuoteCost recomputes a quote's total from its current line items and
// rewrites the cached cost column.
func resyncQuoteCost(ctx context.Context, quotes repo.QuoteRepo, quoteID uuid.UUID) error {
	quote, err := quotes.GetByID(ctx, quoteID)
	if err != nil {
		return fmt.Errorf("service.resyncQuoteCost: %w", err)
	}
	if err := quotes.UpdateCost(ctx, quoteID, quote.Total()); err != nil {
		return fmt.Errorf("service.resyncQuoteCost: %w", err)
	}
	return nil
}

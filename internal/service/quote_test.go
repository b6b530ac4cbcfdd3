package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// knownParents returns request and agency repos that accept exactly the
// given IDs.
func knownParents(requestID, agencyID uuid.UUID) (*mockRequestRepo, *mockAgencyRepo) {
	requests := &mockRequestRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Request, error) {
			if id != requestID {
				return domain.Request{}, fmt.Errorf("request: %w", domain.ErrNotFound)
			}
			return domain.Request{ID: id, Status: domain.StatusWaitingQuotes}, nil
		},
	}
	agencies := &mockAgencyRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Agency, error) {
			if id != agencyID {
				return domain.Agency{}, fmt.Errorf("agency: %w", domain.ErrNotFound)
			}
			return domain.Agency{ID: id, Name: "Globetrotter"}, nil
		},
	}
	return requests, agencies
}

func validQuote(requestID, agencyID uuid.UUID) domain.Quote {
	checkIn := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	return domain.Quote{
		RequestID: requestID,
		AgencyID:  agencyID,
		Flights: []domain.QuoteFlight{
			{FlightNumber: "TP101", DepartureAirport: "LIS", ArrivalAirport: "BER", Price: dec("150.00")},
		},
		Hotels: []domain.QuoteHotel{
			{HotelName: "Hotel Mitte", CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2), PricePerNight: dec("90.00")},
		},
	}
}

// ---- Create ----------------------------------------------------------------

func TestQuoteService_Create_CostDerivedFromLineItems(t *testing.T) {
	requestID, agencyID := uuid.New(), uuid.New()
	requests, agencies := knownParents(requestID, agencyID)

	var persisted domain.Quote
	quotes := &mockQuoteRepo{
		create: func(_ context.Context, q domain.Quote) (domain.Quote, error) {
			persisted = q
			return q, nil
		},
	}
	svc := service.NewQuoteService(quotes, requests, agencies)

	payload := validQuote(requestID, agencyID)
	payload.Cost = dec("1.00") // client-sent cost must be ignored

	created, err := svc.Create(context.Background(), payload)

	require.NoError(t, err)
	// 150.00 + 2 nights * 90.00
	assert.True(t, dec("330.00").Equal(created.Cost), "got %s", created.Cost)
	assert.True(t, dec("330.00").Equal(persisted.Cost))
}

func TestQuoteService_Create_NoLineItems(t *testing.T) {
	requestID, agencyID := uuid.New(), uuid.New()
	requests, agencies := knownParents(requestID, agencyID)
	quotes := &mockQuoteRepo{
		create: func(_ context.Context, q domain.Quote) (domain.Quote, error) { return q, nil },
	}
	svc := service.NewQuoteService(quotes, requests, agencies)

	created, err := svc.Create(context.Background(), domain.Quote{RequestID: requestID, AgencyID: agencyID})

	require.NoError(t, err)
	assert.True(t, created.Cost.IsZero())
}

func TestQuoteService_Create_UnknownRequest(t *testing.T) {
	requests, agencies := knownParents(uuid.New(), uuid.New())
	svc := service.NewQuoteService(&mockQuoteRepo{}, requests, agencies)

	_, err := svc.Create(context.Background(), validQuote(uuid.New(), uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuoteService_Create_UnknownAgency(t *testing.T) {
	requestID := uuid.New()
	requests, agencies := knownParents(requestID, uuid.New())
	svc := service.NewQuoteService(&mockQuoteRepo{}, requests, agencies)

	_, err := svc.Create(context.Background(), validQuote(requestID, uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuoteService_Create_BadLineItems(t *testing.T) {
	requestID, agencyID := uuid.New(), uuid.New()
	requests, agencies := knownParents(requestID, agencyID)
	svc := service.NewQuoteService(&mockQuoteRepo{}, requests, agencies)

	payload := domain.Quote{
		RequestID: requestID,
		AgencyID:  agencyID,
		Flights:   []domain.QuoteFlight{{FlightNumber: "", Price: dec("-1")}},
		Hotels:    []domain.QuoteHotel{{HotelName: ""}},
	}

	_, err := svc.Create(context.Background(), payload)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "flights[0]")
	assert.Contains(t, err.Error(), "hotels[0]")
}

// ---- Update ----------------------------------------------------------------

func TestQuoteService_Update_ReplacesAndResyncsCost(t *testing.T) {
	id := uuid.New()
	existing := validQuote(uuid.New(), uuid.New())
	existing.ID = id

	var replacedCost decimal.Decimal
	quotes := &mockQuoteRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Quote, error) { return existing, nil },
		replace: func(_ context.Context, _ uuid.UUID, cost decimal.Decimal, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error {
			replacedCost = cost
			require.NotNil(t, flights)
			assert.Nil(t, hotels)
			return nil
		},
	}
	svc := service.NewQuoteService(quotes, nil, nil)

	newFlights := []domain.QuoteFlight{{FlightNumber: "TP999", Price: dec("500.00")}}
	err := svc.Update(context.Background(), id, &newFlights, nil)

	require.NoError(t, err)
	// new flights (500.00) plus the untouched hotel stay (2 * 90.00)
	assert.True(t, dec("680.00").Equal(replacedCost), "got %s", replacedCost)
}

func TestQuoteService_Update_ClearLineItems(t *testing.T) {
	id := uuid.New()
	existing := validQuote(uuid.New(), uuid.New())
	existing.ID = id

	var replacedCost decimal.Decimal
	quotes := &mockQuoteRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Quote, error) { return existing, nil },
		replace: func(_ context.Context, _ uuid.UUID, cost decimal.Decimal, _ *[]domain.QuoteFlight, _ *[]domain.QuoteHotel) error {
			replacedCost = cost
			return nil
		},
	}
	svc := service.NewQuoteService(quotes, nil, nil)

	empty := []domain.QuoteFlight{}
	emptyHotels := []domain.QuoteHotel{}
	require.NoError(t, svc.Update(context.Background(), id, &empty, &emptyHotels))

	assert.True(t, replacedCost.IsZero())
}

func TestQuoteService_Update_BadReplacementRejected(t *testing.T) {
	quotes := &mockQuoteRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Quote, error) { return domain.Quote{}, nil },
	}
	svc := service.NewQuoteService(quotes, nil, nil)

	bad := []domain.QuoteFlight{{FlightNumber: "", Price: dec("0")}}
	err := svc.Update(context.Background(), uuid.New(), &bad, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQuoteService_Update_NotFound(t *testing.T) {
	quotes := &mockQuoteRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Quote, error) {
			return domain.Quote{}, fmt.Errorf("quote: %w", domain.ErrNotFound)
		},
	}
	svc := service.NewQuoteService(quotes, nil, nil)

	err := svc.Update(context.Background(), uuid.New(), nil, nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListByRequest ---------------------------------------------------------

func TestQuoteService_ListByRequest_NonNil(t *testing.T) {
	quotes := &mockQuoteRepo{
		listByRequest: func(_ context.Context, _ uuid.UUID) ([]domain.QuoteDetails, error) {
			return nil, nil
		},
	}
	svc := service.NewQuoteService(quotes, nil, nil)

	got, err := svc.ListByRequest(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

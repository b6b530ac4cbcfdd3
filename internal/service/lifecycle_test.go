package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/service"
)

// TestRequestLifecycle walks one request through its whole life against
// stateful in-memory repos: submit, start quoting, enter a quote, finish
// quoting, select, approve, and verify no second decision is accepted.
// The per-operation guards have their own tests; this one checks that the
// steps compose.
func TestRequestLifecycle(t *testing.T) {
	ctx := context.Background()

	var stored domain.Request
	quotesByID := make(map[uuid.UUID]domain.Quote)

	requests := &mockRequestRepo{
		countByStartYear: func(_ context.Context, _ int) (int, error) { return 0, nil },
		create: func(_ context.Context, r domain.Request) (domain.Request, error) {
			r.ID = uuid.New()
			stored = r
			return r, nil
		},
		getByID: func(_ context.Context, id uuid.UUID) (domain.Request, error) {
			if id != stored.ID {
				return domain.Request{}, fmt.Errorf("request: %w", domain.ErrNotFound)
			}
			return stored, nil
		},
		transitionStatus: func(_ context.Context, id uuid.UUID, from, to domain.Status) error {
			if id != stored.ID {
				return fmt.Errorf("request: %w", domain.ErrNotFound)
			}
			if stored.Status != from {
				return fmt.Errorf("request: %w", domain.ErrConflict)
			}
			stored.Status = to
			return nil
		},
		setStatusAndSelection: func(_ context.Context, id uuid.UUID, from, to domain.Status, sel *uuid.UUID) error {
			if id != stored.ID {
				return fmt.Errorf("request: %w", domain.ErrNotFound)
			}
			if stored.Status != from {
				return fmt.Errorf("request: %w", domain.ErrConflict)
			}
			stored.Status = to
			stored.SelectedQuoteID = sel
			return nil
		},
	}

	quoteRepo := &mockQuoteRepo{
		create: func(_ context.Context, q domain.Quote) (domain.Quote, error) {
			q.ID = uuid.New()
			quotesByID[q.ID] = q
			return q, nil
		},
		countByRequest: func(_ context.Context, requestID uuid.UUID) (int, error) {
			n := 0
			for _, q := range quotesByID {
				if q.RequestID == requestID {
					n++
				}
			}
			return n, nil
		},
		belongsToRequest: func(_ context.Context, quoteID, requestID uuid.UUID) (bool, error) {
			q, ok := quotesByID[quoteID]
			return ok && q.RequestID == requestID, nil
		},
	}

	project := domain.Project{ID: uuid.New(), Name: "Ion Optics", Budget: dec("10000")}
	agency := domain.Agency{ID: uuid.New(), Name: "Globetrotter"}
	agencies := &mockAgencyRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Agency, error) { return agency, nil },
	}

	reqSvc := service.NewRequestService(requests, quoteRepo, projectRepoWith(project), false)
	quoteSvc := service.NewQuoteService(quoteRepo, requests, agencies)

	// Submit directly; the first request of the year gets sequence 001.
	payload := newRequestPayload()
	payload.ProjectID = project.ID
	payload.Status = domain.StatusSubmitted
	created, err := reqSvc.Create(ctx, travelerIdent(), payload)
	require.NoError(t, err)
	assert.Equal(t, domain.NextRequestCode(time.Now().Year(), 0), created.RequestCode)
	assert.Equal(t, domain.StatusSubmitted, created.Status)

	// Facilitator picks it up.
	require.NoError(t, reqSvc.StartQuoting(ctx, created.ID))
	assert.Equal(t, domain.StatusWaitingQuotes, stored.Status)

	// One quote: 250 flight + 2 nights x 75 = 400.00.
	checkIn := time.Date(2026, 5, 4, 14, 0, 0, 0, time.UTC)
	quote, err := quoteSvc.Create(ctx, domain.Quote{
		RequestID: created.ID,
		AgencyID:  agency.ID,
		Flights: []domain.QuoteFlight{
			{FlightNumber: "TP101", DepartureAirport: "LIS", ArrivalAirport: "BER", Price: dec("250.00")},
		},
		Hotels: []domain.QuoteHotel{
			{HotelName: "Hotel Mitte", CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2), PricePerNight: dec("75.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("400.00").Equal(quote.Cost), "cost derived from line items, got %s", quote.Cost)

	// Quoting done, traveler may now choose.
	require.NoError(t, reqSvc.Update(ctx, created.ID, created.ID, domain.StatusWaitingSelection, nil))
	assert.Equal(t, domain.StatusWaitingSelection, stored.Status)

	// Traveler selects the quote.
	require.NoError(t, reqSvc.Update(ctx, created.ID, created.ID, domain.StatusWaitingApproval, &quote.ID))
	assert.Equal(t, domain.StatusWaitingApproval, stored.Status)
	require.NotNil(t, stored.SelectedQuoteID)
	assert.Equal(t, quote.ID, *stored.SelectedQuoteID)

	// Manager approves; the request is now terminal.
	require.NoError(t, reqSvc.ManagerDecision(ctx, created.ID, service.DecisionApprove))
	assert.Equal(t, domain.StatusApproved, stored.Status)

	// No take-backs.
	err = reqSvc.ManagerDecision(ctx, created.ID, service.DecisionReject)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, quote.ID, *stored.SelectedQuoteID, "approval keeps the selection")
}

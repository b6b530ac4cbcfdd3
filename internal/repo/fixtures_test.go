package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// Fixture helpers. Each creates the row through the repo under test's own
// transaction so foreign keys resolve, and fails the test on error.

func createTestUser(t *testing.T, r repos, role domain.Role) domain.User {
	t.Helper()
	user, err := r.users.Create(context.Background(), domain.User{
		Username:     fmt.Sprintf("%s-%s", role, uuid.NewString()[:8]),
		PasswordHash: "$2a$10$unused.hash.for.fixtures.only",
		Name:         "Test " + string(role),
		Role:         role,
	})
	require.NoError(t, err, "create fixture user")
	return user
}

func createTestProject(t *testing.T, r repos) domain.Project {
	t.Helper()
	project, err := r.projects.Create(context.Background(), domain.Project{
		Code:   "PRJ-" + uuid.NewString()[:8],
		Name:   "Fixture Project",
		Budget: decimal.NewFromInt(10000),
	})
	require.NoError(t, err, "create fixture project")
	return project
}

func createTestAgency(t *testing.T, r repos) domain.Agency {
	t.Helper()
	agency, err := r.agencies.Create(context.Background(), domain.Agency{
		Name:         "Agency " + uuid.NewString()[:8],
		ContactEmail: "bookings@example.com",
		PhoneNumber:  "+351 21 000 0000",
	})
	require.NoError(t, err, "create fixture agency")
	return agency
}

func createTestRequest(t *testing.T, r repos, travelerID, projectID uuid.UUID, status domain.Status) domain.Request {
	t.Helper()
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4)
	request, err := r.requests.Create(context.Background(), domain.Request{
		RequestCode:     "CD-2026-" + uuid.NewString()[:3],
		TravelerID:      travelerID,
		ProjectID:       projectID,
		Description:     "conference trip",
		OriginCity:      "Lisbon",
		DestinationCity: "Berlin",
		StartDate:       start,
		IsRound:         true,
		EndDate:         &end,
		NeedHotel:       true,
		CheckInDate:     &start,
		CheckOutDate:    &end,
		Status:          status,
	})
	require.NoError(t, err, "create fixture request")
	return request
}

func createTestQuote(t *testing.T, r repos, requestID, agencyID uuid.UUID) domain.Quote {
	t.Helper()
	depart := time.Date(2026, 9, 14, 7, 30, 0, 0, time.UTC)
	quote, err := r.quotes.Create(context.Background(), domain.Quote{
		RequestID: requestID,
		AgencyID:  agencyID,
		Cost:      decimal.NewFromInt(460),
		Flights: []domain.QuoteFlight{{
			FlightNumber:     "TP504",
			DepartureAirport: "LIS",
			ArrivalAirport:   "BER",
			DepartureTime:    depart,
			ArrivalTime:      depart.Add(3 * time.Hour),
			Price:            decimal.NewFromInt(220),
		}},
		Hotels: []domain.QuoteHotel{{
			HotelName:     "Hotel Mitte",
			CheckIn:       depart,
			CheckOut:      depart.AddDate(0, 0, 4),
			PricePerNight: decimal.NewFromInt(60),
		}},
	})
	require.NoError(t, err, "create fixture quote")
	return quote
}

// requireDecimalEqual compares decimals by value, ignoring exponent
// differences introduced by the numeric round trip.
func requireDecimalEqual(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, want.Equal(got), "decimal mismatch: want %s, got %s", want, got)
}

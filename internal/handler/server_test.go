package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/handler"
	"github.com/pcosta/travel-desk/backend/internal/middleware"
)

// Test doubles for the servicer interfaces. Each method is a function field;
// set only the ones your test needs.

type mockRequestServicer struct {
	create          func(ctx context.Context, ident domain.Identity, request domain.Request) (domain.Request, error)
	getDetails      func(ctx context.Context, ident domain.Identity, id uuid.UUID) (domain.RequestDetails, error)
	list            func(ctx context.Context, ident domain.Identity) ([]domain.RequestSummary, error)
	managerView     func(ctx context.Context, ident domain.Identity) ([]domain.RequestSummary, error)
	facilitatorView func(ctx context.Context, ident domain.Identity) (domain.FacilitatorView, error)
	travelerView    func(ctx context.Context, ident domain.Identity, travelerID uuid.UUID) ([]domain.RequestSummary, error)
	startQuoting    func(ctx context.Context, id uuid.UUID) error
	managerDecision func(ctx context.Context, id uuid.UUID, decision string) error
	update          func(ctx context.Context, pathID, payloadID uuid.UUID, status domain.Status, selectedQuoteID *uuid.UUID) error
}

func (m *mockRequestServicer) Create(ctx context.Context, ident domain.Identity, request domain.Request) (domain.Request, error) {
	return m.create(ctx, ident, request)
}
func (m *mockRequestServicer) GetDetails(ctx context.Context, ident domain.Identity, id uuid.UUID) (domain.RequestDetails, error) {
	return m.getDetails(ctx, ident, id)
}
func (m *mockRequestServicer) List(ctx context.Context, ident domain.Identity) ([]domain.RequestSummary, error) {
	return m.list(ctx, ident)
}
func (m *mockRequestServicer) ManagerView(ctx context.Context, ident domain.Identity) ([]domain.RequestSummary, error) {
	return m.managerView(ctx, ident)
}
func (m *mockRequestServicer) FacilitatorView(ctx context.Context, ident domain.Identity) (domain.FacilitatorView, error) {
	return m.facilitatorView(ctx, ident)
}
func (m *mockRequestServicer) TravelerView(ctx context.Context, ident domain.Identity, travelerID uuid.UUID) ([]domain.RequestSummary, error) {
	return m.travelerView(ctx, ident, travelerID)
}
func (m *mockRequestServicer) StartQuoting(ctx context.Context, id uuid.UUID) error {
	return m.startQuoting(ctx, id)
}
func (m *mockRequestServicer) ManagerDecision(ctx context.Context, id uuid.UUID, decision string) error {
	return m.managerDecision(ctx, id, decision)
}
func (m *mockRequestServicer) Update(ctx context.Context, pathID, payloadID uuid.UUID, status domain.Status, selectedQuoteID *uuid.UUID) error {
	return m.update(ctx, pathID, payloadID, status, selectedQuoteID)
}

var _ handler.RequestServicer = (*mockRequestServicer)(nil)

type mockQuoteServicer struct {
	create        func(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	getDetails    func(ctx context.Context, id uuid.UUID) (domain.QuoteDetails, error)
	listByRequest func(ctx context.Context, requestID uuid.UUID) ([]domain.QuoteDetails, error)
	update        func(ctx context.Context, id uuid.UUID, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockQuoteServicer) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	return m.create(ctx, quote)
}
func (m *mockQuoteServicer) GetDetails(ctx context.Context, id uuid.UUID) (domain.QuoteDetails, error) {
	return m.getDetails(ctx, id)
}
func (m *mockQuoteServicer) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.QuoteDetails, error) {
	return m.listByRequest(ctx, requestID)
}
func (m *mockQuoteServicer) Update(ctx context.Context, id uuid.UUID, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error {
	return m.update(ctx, id, flights, hotels)
}
func (m *mockQuoteServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.QuoteServicer = (*mockQuoteServicer)(nil)

type mockAuthServicer struct {
	login func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthServicer) Login(ctx context.Context, username, password string) (string, error) {
	return m.login(ctx, username, password)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockProjectServicer struct {
	create    func(ctx context.Context, project domain.Project) (domain.Project, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Project, error)
	list      func(ctx context.Context) ([]domain.Project, error)
	update    func(ctx context.Context, pathID uuid.UUID, project domain.Project) (domain.Project, error)
	importCSV func(ctx context.Context, r io.Reader) (int, error)
}

func (m *mockProjectServicer) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	return m.create(ctx, project)
}
func (m *mockProjectServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	return m.getByID(ctx, id)
}
func (m *mockProjectServicer) List(ctx context.Context) ([]domain.Project, error) {
	return m.list(ctx)
}
func (m *mockProjectServicer) Update(ctx context.Context, pathID uuid.UUID, project domain.Project) (domain.Project, error) {
	return m.update(ctx, pathID, project)
}
func (m *mockProjectServicer) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	return m.importCSV(ctx, r)
}

var _ handler.ProjectServicer = (*mockProjectServicer)(nil)

// staticLocations satisfies handler.LocationProvider with fixed data.
type staticLocations struct{}

func (staticLocations) Countries() []string { return []string{"Portugal", "Spain"} }
func (staticLocations) Cities(country string) []string {
	if country == "Portugal" {
		return []string{"Lisbon", "Porto"}
	}
	return []string{}
}

// deps bundles the Server dependencies so tests only fill in what they use.
type deps struct {
	auth      handler.AuthServicer
	requests  handler.RequestServicer
	quotes    handler.QuoteServicer
	flights   handler.FlightServicer
	hotels    handler.HotelServicer
	projects  handler.ProjectServicer
	agencies  handler.AgencyServicer
	locations handler.LocationProvider
}

// newTestHandler builds the full chi router with an authenticator that
// unconditionally injects the given identity. This exercises the same
// routing and middleware order as production.
func newTestHandler(ident domain.Identity, d deps) http.Handler {
	if d.locations == nil {
		d.locations = staticLocations{}
	}
	srv := handler.NewServer(d.auth, d.requests, d.quotes, d.flights, d.hotels, d.projects, d.agencies, d.locations)
	authn := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), ident)))
		})
	}
	return srv.Routes(authn)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeErrors pulls the messages out of the {"errors":[...]} body shape.
func decodeErrors(t *testing.T, body io.Reader) []string {
	t.Helper()
	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Errors
}

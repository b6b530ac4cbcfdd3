// Package handler implements the HTTP handlers for the Travel Desk API.
// Methods are split into resource-specific files (request.go, quote.go, etc.)
// but all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// RequestServicer defines the business operations the request handlers depend
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type RequestServicer interface {
	Create(ctx context.Context, ident domain.Identity, request domain.Request) (domain.Request, error)
	GetDetails(ctx context.Context, ident domain.Identity, id uuid.UUID) (domain.RequestDetails, error)
	List(ctx context.Context, ident domain.Identity) ([]domain.RequestSummary, error)
	ManagerView(ctx context.Context, ident domain.Identity) ([]domain.RequestSummary, error)
	FacilitatorView(ctx context.Context, ident domain.Identity) (domain.FacilitatorView, error)
	TravelerView(ctx context.Context, ident domain.Identity, travelerID uuid.UUID) ([]domain.RequestSummary, error)
	StartQuoting(ctx context.Context, id uuid.UUID) error
	ManagerDecision(ctx context.Context, id uuid.UUID, decision string) error
	Update(ctx context.Context, pathID, payloadID uuid.UUID, status domain.Status, selectedQuoteID *uuid.UUID) error
}

// QuoteServicer defines the business operations the quote handlers depend on.
type QuoteServicer interface {
	Create(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	GetDetails(ctx context.Context, id uuid.UUID) (domain.QuoteDetails, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.QuoteDetails, error)
	Update(ctx context.Context, id uuid.UUID, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FlightServicer defines the business operations the flight handlers depend on.
type FlightServicer interface {
	Create(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteFlight, error)
	List(ctx context.Context) ([]domain.QuoteFlight, error)
	Update(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HotelServicer defines the business operations the hotel handlers depend on.
type HotelServicer interface {
	Create(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteHotel, error)
	List(ctx context.Context) ([]domain.QuoteHotel, error)
	Update(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectServicer defines the business operations the project handlers depend on.
type ProjectServicer interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, pathID uuid.UUID, project domain.Project) (domain.Project, error)
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
}

// AgencyServicer defines the business operations the agency handlers depend on.
type AgencyServicer interface {
	Create(ctx context.Context, agency domain.Agency) (domain.Agency, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error)
	List(ctx context.Context) ([]domain.Agency, error)
}

// AuthServicer exchanges credentials for a signed token.
type AuthServicer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LocationProvider serves the static country/city picklists.
type LocationProvider interface {
	Countries() []string
	Cities(country string) []string
}

// Server holds the handlers for all API endpoints. Methods are in
// resource-specific files but all operate on this struct.
type Server struct {
	auth      AuthServicer
	requests  RequestServicer
	quotes    QuoteServicer
	flights   FlightServicer
	hotels    HotelServicer
	projects  ProjectServicer
	agencies  AgencyServicer
	locations LocationProvider
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	auth AuthServicer,
	requests RequestServicer,
	quotes QuoteServicer,
	flights FlightServicer,
	hotels HotelServicer,
	projects ProjectServicer,
	agencies AgencyServicer,
	locations LocationProvider,
) *Server {
	return &Server{
		auth:      auth,
		requests:  requests,
		quotes:    quotes,
		flights:   flights,
		hotels:    hotels,
		projects:  projects,
		agencies:  agencies,
		locations: locations,
	}
}

// Routes mounts every endpoint on a chi router. Token issuance, health and
// the location picklists are public; authn wraps everything else.
func (s *Server) Routes(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Post("/authorization/token", s.IssueToken)
	r.Route("/location", func(r chi.Router) {
		r.Get("/countries", s.ListCountries)
		r.Get("/cities", s.ListCities)
	})

	r.Group(func(r chi.Router) {
		r.Use(authn)

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", s.CreateRequest)
			r.Get("/", s.ListRequests)
			r.Get("/manager-view", s.ManagerView)
			r.Get("/facilitator-view", s.FacilitatorView)
			r.Get("/traveler/{travelerId}", s.TravelerView)
			r.Get("/{id}", s.GetRequest)
			r.Put("/{id}", s.UpdateRequest)
			r.Put("/{id}/start-quoting", s.StartQuoting)
			r.Put("/{id}/manager-decision", s.ManagerDecision)
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", s.CreateQuote)
			r.Get("/byRequest/{requestId}", s.ListQuotesByRequest)
			r.Get("/{id}", s.GetQuote)
			r.Put("/{id}", s.UpdateQuote)
			r.Delete("/{id}", s.DeleteQuote)
		})

		r.Route("/quoteFlights", func(r chi.Router) {
			r.Post("/", s.CreateFlight)
			r.Get("/", s.ListFlights)
			r.Get("/{id}", s.GetFlight)
			r.Put("/{id}", s.UpdateFlight)
			r.Delete("/{id}", s.DeleteFlight)
		})

		r.Route("/quoteHotels", func(r chi.Router) {
			r.Post("/", s.CreateHotel)
			r.Get("/", s.ListHotels)
			r.Get("/{id}", s.GetHotel)
			r.Put("/{id}", s.UpdateHotel)
			r.Delete("/{id}", s.DeleteHotel)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", s.CreateProject)
			r.Get("/", s.ListProjects)
			r.Post("/import", s.ImportProjects)
			r.Get("/{id}", s.GetProject)
			r.Put("/{id}", s.UpdateProject)
		})

		r.Route("/agencies", func(r chi.Router) {
			r.Post("/", s.CreateAgency)
			r.Get("/", s.ListAgencies)
			r.Get("/{id}", s.GetAgency)
		})
	})

	return r
}

package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field; set only the ones your test needs. This is idiomatic Go:
// no mock generation library required for simple cases.

type mockRequestRepo struct {
	create                func(ctx context.Context, request domain.Request) (domain.Request, error)
	getByID               func(ctx context.Context, id uuid.UUID) (domain.Request, error)
	countByStartYear      func(ctx context.Context, year int) (int, error)
	list                  func(ctx context.Context, statuses ...domain.Status) ([]domain.RequestSummary, error)
	listByTraveler        func(ctx context.Context, travelerID uuid.UUID) ([]domain.RequestSummary, error)
	getDetails            func(ctx context.Context, id uuid.UUID) (domain.RequestDetails, error)
	transitionStatus      func(ctx context.Context, id uuid.UUID, from, to domain.Status) error
	setStatusAndSelection func(ctx context.Context, id uuid.UUID, from, to domain.Status, selectedQuoteID *uuid.UUID) error
}

func (m *mockRequestRepo) Create(ctx context.Context, request domain.Request) (domain.Request, error) {
	return m.create(ctx, request)
}
func (m *mockRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error) {
	return m.getByID(ctx, id)
}
func (m *mockRequestRepo) CountByStartYear(ctx context.Context, year int) (int, error) {
	return m.countByStartYear(ctx, year)
}
func (m *mockRequestRepo) List(ctx context.Context, statuses ...domain.Status) ([]domain.RequestSummary, error) {
	return m.list(ctx, statuses...)
}
func (m *mockRequestRepo) ListByTraveler(ctx context.Context, travelerID uuid.UUID) ([]domain.RequestSummary, error) {
	return m.listByTraveler(ctx, travelerID)
}
func (m *mockRequestRepo) GetDetails(ctx context.Context, id uuid.UUID) (domain.RequestDetails, error) {
	return m.getDetails(ctx, id)
}
func (m *mockRequestRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error {
	return m.transitionStatus(ctx, id, from, to)
}
func (m *mockRequestRepo) SetStatusAndSelection(ctx context.Context, id uuid.UUID, from, to domain.Status, selectedQuoteID *uuid.UUID) error {
	return m.setStatusAndSelection(ctx, id, from, to, selectedQuoteID)
}

var _ repo.RequestRepo = (*mockRequestRepo)(nil)

type mockQuoteRepo struct {
	create           func(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	getByID          func(ctx context.Context, id uuid.UUID) (domain.Quote, error)
	getDetails       func(ctx context.Context, id uuid.UUID) (domain.QuoteDetails, error)
	listByRequest    func(ctx context.Context, requestID uuid.UUID) ([]domain.QuoteDetails, error)
	countByRequest   func(ctx context.Context, requestID uuid.UUID) (int, error)
	belongsToRequest func(ctx context.Context, quoteID, requestID uuid.UUID) (bool, error)
	replace          func(ctx context.Context, id uuid.UUID, cost decimal.Decimal, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error
	updateCost       func(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error
	delete           func(ctx context.Context, id uuid.UUID) error
}

func (m *mockQuoteRepo) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	return m.create(ctx, quote)
}
func (m *mockQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	return m.getByID(ctx, id)
}
func (m *mockQuoteRepo) GetDetails(ctx context.Context, id uuid.UUID) (domain.QuoteDetails, error) {
	return m.getDetails(ctx, id)
}
func (m *mockQuoteRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.QuoteDetails, error) {
	return m.listByRequest(ctx, requestID)
}
func (m *mockQuoteRepo) CountByRequest(ctx context.Context, requestID uuid.UUID) (int, error) {
	return m.countByRequest(ctx, requestID)
}
func (m *mockQuoteRepo) BelongsToRequest(ctx context.Context, quoteID, requestID uuid.UUID) (bool, error) {
	return m.belongsToRequest(ctx, quoteID, requestID)
}
func (m *mockQuoteRepo) Replace(ctx context.Context, id uuid.UUID, cost decimal.Decimal, flights *[]domain.QuoteFlight, hotels *[]domain.QuoteHotel) error {
	return m.replace(ctx, id, cost, flights, hotels)
}
func (m *mockQuoteRepo) UpdateCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error {
	return m.updateCost(ctx, id, cost)
}
func (m *mockQuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.QuoteRepo = (*mockQuoteRepo)(nil)

type mockProjectRepo struct {
	create      func(ctx context.Context, project domain.Project) (domain.Project, error)
	createBatch func(ctx context.Context, projects []domain.Project) (int, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Project, error)
	list        func(ctx context.Context) ([]domain.Project, error)
	update      func(ctx context.Context, project domain.Project) (domain.Project, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	return m.create(ctx, project)
}
func (m *mockProjectRepo) CreateBatch(ctx context.Context, projects []domain.Project) (int, error) {
	return m.createBatch(ctx, projects)
}
func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	return m.getByID(ctx, id)
}
func (m *mockProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	return m.list(ctx)
}
func (m *mockProjectRepo) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	return m.update(ctx, project)
}

var _ repo.ProjectRepo = (*mockProjectRepo)(nil)

type mockAgencyRepo struct {
	create  func(ctx context.Context, agency domain.Agency) (domain.Agency, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Agency, error)
	list    func(ctx context.Context) ([]domain.Agency, error)
}

func (m *mockAgencyRepo) Create(ctx context.Context, agency domain.Agency) (domain.Agency, error) {
	return m.create(ctx, agency)
}
func (m *mockAgencyRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Agency, error) {
	return m.getByID(ctx, id)
}
func (m *mockAgencyRepo) List(ctx context.Context) ([]domain.Agency, error) {
	return m.list(ctx)
}

var _ repo.AgencyRepo = (*mockAgencyRepo)(nil)

type mockUserRepo struct {
	create        func(ctx context.Context, user domain.User) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByUsername func(ctx context.Context, username string) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockFlightRepo struct {
	create  func(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.QuoteFlight, error)
	list    func(ctx context.Context) ([]domain.QuoteFlight, error)
	update  func(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockFlightRepo) Create(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error) {
	return m.create(ctx, flight)
}
func (m *mockFlightRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteFlight, error) {
	return m.getByID(ctx, id)
}
func (m *mockFlightRepo) List(ctx context.Context) ([]domain.QuoteFlight, error) {
	return m.list(ctx)
}
func (m *mockFlightRepo) Update(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error) {
	return m.update(ctx, flight)
}
func (m *mockFlightRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.FlightRepo = (*mockFlightRepo)(nil)

type mockHotelRepo struct {
	create  func(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.QuoteHotel, error)
	list    func(ctx context.Context) ([]domain.QuoteHotel, error)
	update  func(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockHotelRepo) Create(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error) {
	return m.create(ctx, hotel)
}
func (m *mockHotelRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteHotel, error) {
	return m.getByID(ctx, id)
}
func (m *mockHotelRepo) List(ctx context.Context) ([]domain.QuoteHotel, error) {
	return m.list(ctx)
}
func (m *mockHotelRepo) Update(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error) {
	return m.update(ctx, hotel)
}
func (m *mockHotelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.HotelRepo = (*mockHotelRepo)(nil)

package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The types below are read models assembled for detail and list views.
// They are built by an explicit query step (repo) plus a mapping step
// (service) rather than serialized entity graphs, so responses never
// contain reference cycles.

// AgencySummary is the slice of agency data embedded in quote views.
type AgencySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// QuoteDetails is a quote with its agency and line items flattened for
// display. Total is always recomputed from the line items on assembly.
type QuoteDetails struct {
	ID      uuid.UUID       `json:"id"`
	Agency  AgencySummary   `json:"agency"`
	Flights []QuoteFlight   `json:"flights"`
	Hotels  []QuoteHotel    `json:"hotels"`
	Total   decimal.Decimal `json:"total"`
}

// RequestDetails is the full request graph for the detail view:
// the request, its project name, every quote with agency and line items,
// and the selected quote echoed separately when one is set.
type RequestDetails struct {
	Request
	ProjectName   string         `json:"projectName,omitempty"`
	DisplayStatus string         `json:"displayStatus"`
	Quotes        []QuoteDetails `json:"quotes"`
	SelectedQuote *QuoteDetails  `json:"selectedQuote,omitempty"`
}

// RequestSummary is a request row for list views, carrying just enough of
// the graph (project, selected quote + agency) to render a table.
type RequestSummary struct {
	Request
	ProjectName   string           `json:"projectName,omitempty"`
	DisplayStatus string           `json:"displayStatus"`
	SelectedQuote *QuoteDetails    `json:"selectedQuote,omitempty"`
	ProjectBudget *decimal.Decimal `json:"projectBudget,omitempty"`
}

// FacilitatorView is the two-bucket split the facilitator board renders:
// requests waiting to be quoted and requests currently being quoted.
type FacilitatorView struct {
	SubmittedRequests []RequestSummary `json:"submittedRequests"`
	OngoingRequests   []RequestSummary `json:"ongoingRequests"`
}

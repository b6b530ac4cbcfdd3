package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

type createQuotePayload struct {
	RequestID uuid.UUID            `json:"requestId"`
	AgencyID  uuid.UUID            `json:"agencyId"`
	Flights   []domain.QuoteFlight `json:"flights"`
	Hotels    []domain.QuoteHotel  `json:"hotels"`
}

// CreateQuote handles POST /quotes. Line items are optional at creation and
// the stored cost is derived from them, never taken from the client.
func (s *Server) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req createQuotePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.quotes.Create(r.Context(), domain.Quote{
		RequestID: req.RequestID,
		AgencyID:  req.AgencyID,
		Flights:   req.Flights,
		Hotels:    req.Hotels,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "quotes", created.ID, created)
}

// GetQuote handles GET /quotes/{id}.
func (s *Server) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid quote ID")
		return
	}

	details, err := s.quotes.GetDetails(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// ListQuotesByRequest handles GET /quotes/byRequest/{requestId}.
func (s *Server) ListQuotesByRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathUUID(r, "requestId")
	if err != nil {
		badRequest(w, "invalid request ID")
		return
	}

	details, err := s.quotes.ListByRequest(r.Context(), requestID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

type updateQuotePayload struct {
	Flights *[]domain.QuoteFlight `json:"flights"`
	Hotels  *[]domain.QuoteHotel  `json:"hotels"`
}

// UpdateQuote handles PUT /quotes/{id}. An absent collection leaves the
// stored line items untouched; an empty one clears them.
func (s *Server) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid quote ID")
		return
	}

	var req updateQuotePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.quotes.Update(r.Context(), id, req.Flights, req.Hotels); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteQuote handles DELETE /quotes/{id}.
func (s *Server) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid quote ID")
		return
	}

	if err := s.quotes.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/middleware"
)

// identity pulls the caller's verified identity from the request context.
// The authenticator middleware guarantees it is present on protected routes.
func identity(r *http.Request) (domain.Identity, bool) {
	return middleware.IdentityFrom(r.Context())
}

// CreateRequest handles POST /requests. The traveler is taken from the
// token, never from the payload.
func (s *Server) CreateRequest(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(r)
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.requests.Create(r.Context(), ident, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "requests", created.ID, created)
}

// ListRequests handles GET /requests.
func (s *Server) ListRequests(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(r)
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	summaries, err := s.requests.List(r.Context(), ident)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// GetRequest handles GET /requests/{id}.
func (s *Server) GetRequest(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(r)
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid request ID")
		return
	}

	details, err := s.requests.GetDetails(r.Context(), ident, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// ManagerView handles GET /requests/manager-view: the approval queue.
func (s *Server) ManagerView(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(r)
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	summaries, err := s.requests.ManagerView(r.Context(), ident)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// FacilitatorView handles GET /requests/facilitator-view: submitted requests
// next to those already being quoted.
func (s *Server) FacilitatorView(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(r)
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	view, err := s.requests.FacilitatorView(r.Context(), ident)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// TravelerView handles GET /requests/traveler/{travelerId}. Travelers may
// only ask for their own requests.
func (s *Server) TravelerView(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(r)
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}
	travelerID, err := pathUUID(r, "travelerId")
	if err != nil {
		badRequest(w, "invalid traveler ID")
		return
	}

	summaries, err := s.requests.TravelerView(r.Context(), ident, travelerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// StartQuoting handles PUT /requests/{id}/start-quoting.
func (s *Server) StartQuoting(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid request ID")
		return
	}

	if err := s.requests.StartQuoting(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

// ManagerDecision handles PUT /requests/{id}/manager-decision.
func (s *Server) ManagerDecision(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid request ID")
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.requests.ManagerDecision(r.Context(), id, req.Decision); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateRequestPayload struct {
	ID              uuid.UUID     `json:"id"`
	Status          domain.Status `json:"status"`
	SelectedQuoteID *uuid.UUID    `json:"selectedQuoteId"`
}

// UpdateRequest handles PUT /requests/{id}: status transitions driven by the
// traveler or facilitator (submit, move to selection, select a quote, cancel).
func (s *Server) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid request ID")
		return
	}

	var req updateRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.requests.Update(r.Context(), id, req.ID, req.Status, req.SelectedQuoteID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// CreateAgency handles POST /agencies. Agency names are unique; a duplicate
// comes back as 400.
func (s *Server) CreateAgency(w http.ResponseWriter, r *http.Request) {
	var agency domain.Agency
	if err := json.NewDecoder(r.Body).Decode(&agency); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.agencies.Create(r.Context(), agency)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "agencies", created.ID, created)
}

// GetAgency handles GET /agencies/{id}.
func (s *Server) GetAgency(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid agency ID")
		return
	}

	agency, err := s.agencies.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, agency)
}

// ListAgencies handles GET /agencies.
func (s *Server) ListAgencies(w http.ResponseWriter, r *http.Request) {
	agencies, err := s.agencies.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, agencies)
}

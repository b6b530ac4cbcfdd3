package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// CreateFlight handles POST /quoteFlights.
func (s *Server) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var flight domain.QuoteFlight
	if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.flights.Create(r.Context(), flight)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "quoteFlights", created.ID, created)
}

// GetFlight handles GET /quoteFlights/{id}.
func (s *Server) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid flight ID")
		return
	}

	flight, err := s.flights.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flight)
}

// ListFlights handles GET /quoteFlights.
func (s *Server) ListFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := s.flights.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flights)
}

// UpdateFlight handles PUT /quoteFlights/{id}.
func (s *Server) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid flight ID")
		return
	}

	var flight domain.QuoteFlight
	if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	flight.ID = id

	updated, err := s.flights.Update(r.Context(), flight)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteFlight handles DELETE /quoteFlights/{id}.
func (s *Server) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid flight ID")
		return
	}

	if err := s.flights.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateHotel handles POST /quoteHotels.
func (s *Server) CreateHotel(w http.ResponseWriter, r *http.Request) {
	var hotel domain.QuoteHotel
	if err := json.NewDecoder(r.Body).Decode(&hotel); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.hotels.Create(r.Context(), hotel)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "quoteHotels", created.ID, created)
}

// GetHotel handles GET /quoteHotels/{id}.
func (s *Server) GetHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid hotel ID")
		return
	}

	hotel, err := s.hotels.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, hotel)
}

// ListHotels handles GET /quoteHotels.
func (s *Server) ListHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := s.hotels.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, hotels)
}

// UpdateHotel handles PUT /quoteHotels/{id}.
func (s *Server) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid hotel ID")
		return
	}

	var hotel domain.QuoteHotel
	if err := json.NewDecoder(r.Body).Decode(&hotel); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	hotel.ID = id

	updated, err := s.hotels.Update(r.Context(), hotel)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteHotel handles DELETE /quoteHotels/{id}.
func (s *Server) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid hotel ID")
		return
	}

	if err := s.hotels.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

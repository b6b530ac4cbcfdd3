package handler

import "net/http"

// ListCountries handles GET /location/countries.
func (s *Server) ListCountries(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.locations.Countries())
}

// ListCities handles GET /location/cities?country=X. Unknown countries yield
// an empty list rather than an error; the picklist is advisory.
func (s *Server) ListCities(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		badRequest(w, "country query parameter is required")
		return
	}
	respondJSON(w, http.StatusOK, s.locations.Cities(country))
}

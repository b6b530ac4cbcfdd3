package handler

import (
	"encoding/json"
	"net/http"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IssueToken handles POST /authorization/token. It exchanges a username and
// password for a signed bearer token; bad credentials come back as 401
// without distinguishing an unknown user from a wrong password.
// The response body is the bare token string, which clients store directly.
func (s *Server) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		badRequest(w, "username and password are required")
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(token))
}

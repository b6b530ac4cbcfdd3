package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// errorResponse is the body shape for every error the API returns:
// a flat list of human-readable messages.
type errorResponse struct {
	Errors []string `json:"errors"`
}

// respondJSON writes v as the response body with the given status.
// Encoding failures are logged but not surfaced; the status line has
// already been written by then.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// respondCreated writes v with a 201 status and a Location header pointing
// at the new entity, e.g. Location: /requests/<id>.
func respondCreated(w http.ResponseWriter, resource string, id uuid.UUID, v any) {
	w.Header().Set("Location", "/"+resource+"/"+id.String())
	respondJSON(w, http.StatusCreated, v)
}

// respondError maps a service error to its HTTP status and error body.
// Validation failures and business-rule conflicts both come back as 400
// so the client treats every rejected write the same way.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var fields domain.FieldErrors
		if errors.As(err, &fields) {
			respondJSON(w, http.StatusBadRequest, errorResponse{Errors: fields.Messages()})
			return
		}
		respondJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{userMessage(err)}})
	case errors.Is(err, domain.ErrConflict):
		respondJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{userMessage(err)}})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Errors: []string{userMessage(err)}})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Errors: []string{"invalid credentials"}})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Errors: []string{userMessage(err)}})
	default:
		slog.Error("handler error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Errors: []string{"internal server error"}})
	}
}

// badRequest rejects a request before it reaches the service layer
// (malformed body, unparseable path parameter).
func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{message}})
}

// userMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.RequestService.Update: cannot cancel an approved request: conflict"
// → "cannot cancel an approved request".
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 {
			break
		}
		head := msg[:i]
		if strings.HasPrefix(head, "service.") || strings.HasPrefix(head, "repo.") {
			msg = msg[i+2:]
			continue
		}
		break
	}
	for _, sentinel := range []error{domain.ErrConflict, domain.ErrNotFound, domain.ErrValidation, domain.ErrForbidden} {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	return msg
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// TokenVerifier verifies a raw bearer token and returns the identity it
// carries. Implemented by auth.TokenIssuer.
type TokenVerifier interface {
	Verify(tokenString string, now time.Time) (domain.Identity, error)
}

// identityKey is the private context key for the verified caller identity.
type identityKey struct{}

// NewAuthenticator returns a middleware that requires a valid
// "Authorization: Bearer <token>" header, verifies it, and stores the
// resulting identity in the request context. Requests without a valid token
// are rejected with 401 before reaching the handler.
func NewAuthenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			ident, err := verifier.Verify(strings.TrimSpace(raw), time.Now())
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"errors":["missing or invalid token"]}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// WithIdentity returns a context carrying the given identity.
// Exported so handler tests can inject a caller without minting tokens.
func WithIdentity(ctx context.Context, ident domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFrom extracts the verified caller identity from the context.
// The second return is false when the request did not pass the authenticator.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(domain.Identity)
	return ident, ok
}

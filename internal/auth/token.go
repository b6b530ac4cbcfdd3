// Package auth handles credential verification and the issuance and
// verification of the signed identity tokens the API uses for auth.
// Tokens are stateless: every request re-verifies the signature and expiry,
// nothing is stored server-side.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// TokenTTL is the validity window of an issued token.
const TokenTTL = time.Hour

// Claims is the JWT payload carried by every issued token.
// The custom fields mirror what the frontend needs to render the session:
// who the user is and which role gates apply.
type Claims struct {
	jwt.RegisteredClaims

	UserID   string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// TokenIssuer signs and verifies identity tokens with a shared HS256 secret.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer constructs a TokenIssuer for the given signing secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue creates a signed token for the given user, valid for TokenTTL.
func (ti *TokenIssuer) Issue(user domain.User, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID:   user.ID.String(),
		Username: user.Username,
		Name:     user.Name,
		Role:     string(user.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("auth.TokenIssuer.Issue: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the caller identity
// it carries. Only HS256 is accepted; expired or tampered tokens are
// rejected with domain.ErrUnauthorized.
func (ti *TokenIssuer) Verify(tokenString string, now time.Time) (domain.Identity, error) {
	if tokenString == "" {
		return domain.Identity{}, fmt.Errorf("auth.TokenIssuer.Verify: missing token: %w", domain.ErrUnauthorized)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.TokenIssuer.Verify: %v: %w", err, domain.ErrUnauthorized)
	}
	if !token.Valid {
		return domain.Identity{}, fmt.Errorf("auth.TokenIssuer.Verify: invalid token: %w", domain.ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.TokenIssuer.Verify: bad id claim: %w", domain.ErrUnauthorized)
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Identity{}, fmt.Errorf("auth.TokenIssuer.Verify: unknown role claim: %w", domain.ErrUnauthorized)
	}

	return domain.Identity{
		UserID:   userID,
		Username: claims.Username,
		Name:     claims.Name,
		Role:     role,
	}, nil
}

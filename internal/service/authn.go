package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pcosta/travel-desk/backend/internal/auth"
	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/repo"
)

// AuthService verifies credentials and issues identity tokens.
type AuthService struct {
	users  repo.UserRepo
	issuer *auth.TokenIssuer

	now func() time.Time
}

// NewAuthService constructs an AuthService backed by the provided user repo
// and token issuer.
func NewAuthService(users repo.UserRepo, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, issuer: issuer, now: time.Now}
}

// Login verifies the username/password pair and returns a signed token.
// Unknown usernames and wrong passwords are indistinguishable to the caller:
// both return domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	token, err := s.issuer.Issue(user, s.now())
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return token, nil
}

package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/travel-desk/backend/internal/auth"
	"github.com/pcosta/travel-desk/backend/internal/domain"
)

func testUser() domain.User {
	return domain.User{
		ID:       uuid.New(),
		Username: "trish.voyager@example.com",
		Name:     "Trish Voyager",
		Role:     domain.RoleTraveler,
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")
	user := testUser()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	token, err := issuer.Issue(user, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := issuer.Verify(token, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, user.ID, ident.UserID)
	assert.Equal(t, user.Username, ident.Username)
	assert.Equal(t, user.Name, ident.Name)
	assert.Equal(t, domain.RoleTraveler, ident.Role)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	token, err := issuer.Issue(testUser(), now)
	require.NoError(t, err)

	_, err = issuer.Verify(token, now.Add(auth.TokenTTL+time.Second))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	token, err := auth.NewTokenIssuer("secret-a").Issue(testUser(), now)
	require.NoError(t, err)

	_, err = auth.NewTokenIssuer("secret-b").Verify(token, now)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenIssuer_EmptyToken(t *testing.T) {
	_, err := auth.NewTokenIssuer("test-secret").Verify("", time.Now())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	_, err := auth.NewTokenIssuer("test-secret").Verify("not.a.token", time.Now())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := auth.HashPassword("Password1!")
	require.NoError(t, err)
	require.NotEqual(t, "Password1!", hash)

	assert.True(t, auth.CheckPassword(hash, "Password1!"))
	assert.False(t, auth.CheckPassword(hash, "password1!"))
	assert.False(t, auth.CheckPassword("not-a-hash", "Password1!"))
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pcosta/travel-desk/backend/internal/auth"
	"github.com/pcosta/travel-desk/backend/internal/domain"
	"github.com/pcosta/travel-desk/backend/internal/repo"
)

// demoPassword is the shared password for the demo login accounts.
const demoPassword = "Password1!"

// demoUsers are the three fixed demo accounts, one per role.
var demoUsers = []domain.User{
	{Username: "trish.voyager@example.com", Name: "Trish Voyager", Role: domain.RoleTraveler},
	{Username: "frank.helper@example.com", Name: "Frank Helper", Role: domain.RoleFacilitator},
	{Username: "mary.decisor@example.com", Name: "Mary Decisor", Role: domain.RoleManager},
}

// SeedDemoUsers creates the demo accounts on first boot when they are
// absent. The presence of the traveler account is used as the marker: if it
// exists, seeding is assumed to have run already and nothing is touched.
func SeedDemoUsers(ctx context.Context, users repo.UserRepo) error {
	_, err := users.GetByUsername(ctx, demoUsers[0].Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service.SeedDemoUsers: %w", err)
	}

	for _, u := range demoUsers {
		hash, err := auth.HashPassword(demoPassword)
		if err != nil {
			return fmt.Errorf("service.SeedDemoUsers: %w", err)
		}
		u.PasswordHash = hash
		if _, err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("service.SeedDemoUsers: create %s: %w", u.Username, err)
		}
	}
	return nil
}

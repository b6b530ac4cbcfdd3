package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

func TestAgencyRepo_CreateAndGet(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	created, err := r.agencies.Create(ctx, domain.Agency{
		Name:         "Globetrotter Travel",
		ContactEmail: "desk@globetrotter.example",
		PhoneNumber:  "+49 30 1234567",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := r.agencies.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Globetrotter Travel", got.Name)
	require.Equal(t, "desk@globetrotter.example", got.ContactEmail)
}

func TestAgencyRepo_DuplicateName(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, err := r.agencies.Create(ctx, domain.Agency{Name: "Twice Travel"})
	require.NoError(t, err)

	_, err = r.agencies.Create(ctx, domain.Agency{Name: "Twice Travel"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestAgencyRepo_ListOrderedByName(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	for _, name := range []string{"Zephyr Tours", "Alba Viagens", "Meridian Trips"} {
		_, err := r.agencies.Create(ctx, domain.Agency{Name: name})
		require.NoError(t, err)
	}

	agencies, err := r.agencies.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(agencies), 3)

	var names []string
	for _, a := range agencies {
		names = append(names, a.Name)
	}
	require.IsIncreasing(t, names)
}

func TestAgencyRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.agencies.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

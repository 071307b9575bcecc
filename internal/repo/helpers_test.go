package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
)

// mustProvisionUser inserts a user with the given username.
func mustProvisionUser(t *testing.T, tx pgx.Tx, username string) domain.User {
	t.Helper()
	u, err := repo.NewUserRepo(tx).Provision(context.Background(), username, username+"@example.com")
	require.NoError(t, err, "provision user")
	return u
}

// mustCreateAdventure inserts an adventure owned by user.
func mustCreateAdventure(t *testing.T, tx pgx.Tx, user domain.User, name string) domain.Adventure {
	t.Helper()
	start := "2025-06-01"
	a, err := repo.NewAdventureRepo(tx).Create(context.Background(), domain.Adventure{
		UserID:    user.ID,
		Name:      name,
		StartDate: &start,
	})
	require.NoError(t, err, "create adventure")
	return a
}

func ptr[T any](v T) *T { return &v }

package database

import (
	"context"
	"errors"
	"testing"

	"invoicebook/internal/models"
	"invoicebook/internal/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), testHasher())
	ctx := context.Background()

	user, err := repo.Create(ctx, " jana ", "tajne", models.RoleAccountant)
	require.NoError(t, err)
	assert.Equal(t, "jana", user.Username)
	assert.NotEqual(t, "tajne", user.PasswordHash)
	assert.True(t, password.Verify("tajne", user.PasswordHash))

	byName, err := repo.GetByUsername(ctx, "jana")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, models.RoleAccountant, byName.Role)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jana", byID.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_CreateRejects(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), testHasher())
	ctx := context.Background()

	_, err := repo.Create(ctx, "boss", "pw", "admin")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = repo.Create(ctx, "", "pw", models.RoleOwner)
	assert.True(t, errors.As(err, &verr))

	_, err = repo.Create(ctx, "boss", "pw", models.RoleOwner)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "boss", "other", models.RoleAccountant)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserRepository_ChangePassword(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), testHasher())
	ctx := context.Background()
	user, err := repo.Create(ctx, "owner", "old", models.RoleOwner)
	require.NoError(t, err)

	require.NoError(t, repo.ChangePassword(ctx, user.ID, "new"))

	reloaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, password.Verify("new", reloaded.PasswordHash))
	assert.False(t, password.Verify("old", reloaded.PasswordHash))

	assert.ErrorIs(t, repo.ChangePassword(ctx, 777, "x"), ErrNotFound)
}

func TestUserRepository_ListAndCount(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), testHasher())
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.Create(ctx, "owner", "a", models.RoleOwner)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "accountant", "b", models.RoleAccountant)
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "owner", users[0].Username)
	assert.Equal(t, "accountant", users[1].Username)
}

package repository

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "leo", Email: "leo@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", byID.Username)

	byName, err := repo.GetByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_GetByEmail_MissingIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	mustCreateUser(t, db, "somebody")
	user, err = repo.GetByEmail(ctx, "somebody@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "somebody", user.Username)
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := mustCreateUser(t, db, "leaving")
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.Error(t, err)
}

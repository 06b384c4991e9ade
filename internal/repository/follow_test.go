package repository

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_GetOrCreate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := mustCreateUser(t, db, "reader")
	author := mustCreateUser(t, db, "author")

	require.NoError(t, repo.GetOrCreate(ctx, reader.ID, author.ID))
	// the second follow changes nothing and reports no error
	require.NoError(t, repo.GetOrCreate(ctx, reader.ID, author.ID))

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFollowRepository_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := mustCreateUser(t, db, "reader")
	author := mustCreateUser(t, db, "author")

	exists, err := repo.Exists(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.GetOrCreate(ctx, reader.ID, author.ID))

	exists, err = repo.Exists(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// direction matters
	exists, err = repo.Exists(ctx, author.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := mustCreateUser(t, db, "reader")
	author := mustCreateUser(t, db, "author")

	require.NoError(t, repo.GetOrCreate(ctx, reader.ID, author.ID))
	require.NoError(t, repo.Delete(ctx, reader.ID, author.ID))

	exists, err := repo.Exists(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowRepository_Delete_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	err := repo.Delete(context.Background(), 1, 2)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestFollowRepository_AuthorIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := mustCreateUser(t, db, "reader")
	a := mustCreateUser(t, db, "a")
	b := mustCreateUser(t, db, "b")

	ids, err := repo.AuthorIDs(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, repo.GetOrCreate(ctx, reader.ID, a.ID))
	require.NoError(t, repo.GetOrCreate(ctx, reader.ID, b.ID))

	ids, err = repo.AuthorIDs(ctx, reader.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, ids)
}

package repository

import (
	"testing"
	"time"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// keep every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Group{}, &models.Post{},
		&models.Comment{}, &models.Follow{},
	))
	return db
}

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustCreateGroup(t *testing.T, db *gorm.DB, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug}
	require.NoError(t, db.Create(group).Error)
	return group
}

func mustCreatePost(t *testing.T, db *gorm.DB, author *models.User, group *models.Group, text string, pubDate time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID, PubDate: pubDate}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

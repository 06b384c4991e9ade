// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"fmt"

	"quill/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	// GetOrCreate records the follow relation if absent. A repeated follow for
	// the same pair is a no-op, not an error.
	GetOrCreate(ctx context.Context, userID, authorID uint) error
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	// Delete removes the relation; a missing relation is a NotFound error.
	Delete(ctx context.Context, userID, authorID uint) error
	AuthorIDs(ctx context.Context, userID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) GetOrCreate(ctx context.Context, userID, authorID uint) error {
	// The explicit existence check keeps the idempotence policy visible here;
	// the unique index on (author_id, user_id) remains as a backstop.
	exists, err := r.Exists(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	follow := &models.Follow{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", fmt.Sprintf("user=%d author=%d", userID, authorID))
	}
	return nil
}

func (r *followRepository) AuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	var authorIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &authorIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return authorIDs, nil
}

// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"quill/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	CountByPost(ctx context.Context, postID uint) (int, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) CountByPost(ctx context.Context, postID uint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// Every listing is ordered newest first; each List variant has a matching
// Count so callers can clamp page numbers before querying.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []uint) (int, error)
	ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// The cached index feed is intentionally NOT invalidated here; it expires
	// on its own TTL (see cache.IndexFeedKey).
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// Omit the loaded associations so saving an edited post never touches the
	// users or groups tables.
	if err := r.db.WithContext(ctx).Omit("Author", "Group").Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Post{}))
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.list(r.db.WithContext(ctx), limit, offset)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID))
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.list(r.db.WithContext(ctx).Where("group_id = ?", groupID), limit, offset)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID))
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return r.list(r.db.WithContext(ctx).Where("author_id = ?", authorID), limit, offset)
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []uint) (int, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	return r.count(r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id IN ?", authorIDs))
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, nil
	}
	return r.list(r.db.WithContext(ctx).Where("author_id IN ?", authorIDs), limit, offset)
}

func (r *postRepository) count(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

// list applies the default ordering: newest first, with id as a tiebreaker
// for posts published in the same instant.
func (r *postRepository) list(db *gorm.DB, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := db.
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

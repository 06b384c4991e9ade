// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines persistence operations for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository returns a new GroupRepository implementation.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGroup(ctx, group.Slug)
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

// GetBySlug resolves a group by its slug. Groups are create/read only, so the
// cached copy cannot go stale within its TTL.
func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := cache.Aside(ctx, cache.GroupKey(slug), &group, cache.GroupTTL, func() error {
		if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Group", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).Order("title").Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}

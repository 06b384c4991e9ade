package server

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// feedContext is the render context for post listings.
type feedContext struct {
	Page  pagination.Page `json:"page"`
	Posts []*models.Post  `json:"posts"`
}

// Index serves the site-wide feed of all posts, newest first.
//
// The first page (a request with no `page` parameter) is cached for a short
// window and served as-is until the TTL expires, so a freshly created post may
// take up to that long to appear. Paginated requests always hit the database.
func (s *Server) Index(c *fiber.Ctx) error {
	ctx := c.Context()
	pageParam := c.Query("page")

	if pageParam == "" {
		var payload feedContext
		err := cache.Aside(ctx, cache.IndexFeedKey, &payload, cache.IndexFeedTTL, func() error {
			built, err := s.buildIndexFeed(ctx, "")
			if err != nil {
				return err
			}
			payload = *built
			return nil
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(payload)
	}

	payload, err := s.buildIndexFeed(ctx, pageParam)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(payload)
}

func (s *Server) buildIndexFeed(ctx context.Context, pageParam string) (*feedContext, error) {
	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	page := pagination.Resolve(pageParam, total)
	posts, err := s.postRepo.ListAll(ctx, page.Size, page.Offset)
	if err != nil {
		return nil, err
	}
	return &feedContext{Page: page, Posts: posts}, nil
}

// FollowIndex serves the feed of posts by authors the current user follows.
// A user following nobody gets an empty feed, not an error.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	authorIDs, err := s.followRepo.AuthorIDs(ctx, userID)
	if err != nil {
		return fail(c, err)
	}

	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return fail(c, err)
	}
	page := pagination.Resolve(c.Query("page"), total)
	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, page.Size, page.Offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(feedContext{Page: page, Posts: posts})
}

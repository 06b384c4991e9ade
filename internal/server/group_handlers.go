package server

import (
	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

type groupContext struct {
	Group *models.Group   `json:"group"`
	Page  pagination.Page `json:"page"`
	Posts []*models.Post  `json:"posts"`
}

// GroupPosts serves the paginated feed of a single group. An unknown slug is
// a 404, never an empty listing.
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	group, err := s.groupRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return fail(c, err)
	}
	page := pagination.Resolve(c.Query("page"), total)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.Size, page.Offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(groupContext{Group: group, Page: page, Posts: posts})
}

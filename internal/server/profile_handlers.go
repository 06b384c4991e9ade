package server

import (
	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

type profileContext struct {
	Author *models.User    `json:"author"`
	Page   pagination.Page `json:"page"`
	Posts  []*models.Post  `json:"posts"`
	// Following is true only when the viewer is logged in, is not the author,
	// and follows them.
	Following bool `json:"following"`
}

// Profile serves an author's page: their posts plus whether the current
// viewer follows them.
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.Context()

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return fail(c, err)
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return fail(c, err)
	}
	page := pagination.Resolve(c.Query("page"), total)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.Size, page.Offset)
	if err != nil {
		return fail(c, err)
	}

	following := false
	if viewerID, ok := s.authenticatedUserID(c); ok && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return fail(c, err)
		}
	}

	return c.JSON(profileContext{
		Author:    author,
		Page:      page,
		Posts:     posts,
		Following: following,
	})
}

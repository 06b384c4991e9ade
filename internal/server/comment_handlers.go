package server

import (
	"quill/internal/forms"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment attaches a comment to a post. Commenting on a missing post is a
// 404. An invalid form is dropped without being saved and the client is
// redirected back to the post, same as on success.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}

	var form forms.CommentForm
	if err := c.BodyParser(&form); err != nil || !form.Validate() {
		return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
	}

	comment := &models.Comment{
		PostID:   &post.ID,
		AuthorID: currentUserID(c),
		Text:     form.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return fail(c, err)
	}

	return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
}

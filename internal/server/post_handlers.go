package server

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"quill/internal/forms"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type postDetailContext struct {
	Post     *models.Post      `json:"post"`
	Comments []*models.Comment `json:"comments"`
	Form     forms.CommentForm `json:"form"`
}

// postFormContext renders the post form, either blank or with the submitted
// values and their errors.
type postFormContext struct {
	Form   forms.PostForm `json:"form"`
	IsEdit bool           `json:"is_edit"`
	Post   *models.Post   `json:"post,omitempty"`
}

// PostDetail serves a single post with its comments and a blank comment form.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}

	comments, err := s.commentRepo.ListByPost(c.Context(), post.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(postDetailContext{
		Post:     post,
		Comments: comments,
		Form:     forms.CommentForm{},
	})
}

// NewPost serves the blank creation form.
func (s *Server) NewPost(c *fiber.Ctx) error {
	return c.JSON(postFormContext{Form: forms.PostForm{}, IsEdit: false})
}

// CreatePost creates a post for the current user. On validation failure the
// form is re-rendered with its errors and nothing is persisted. On success
// the client is redirected to the author's profile.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	valid := form.Validate()
	if valid && form.Group != "" {
		if err := s.checkGroupChoice(c, &form); err != nil {
			if errors.Is(err, errResponseWritten) {
				return nil
			}
			valid = false
		}
	}
	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(postFormContext{Form: form, IsEdit: false})
	}

	imagePath, err := s.saveUploadedImage(c)
	if err != nil {
		return fail(c, err)
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: userID,
		GroupID:  form.GroupID(),
		Image:    imagePath,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return fail(c, err)
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Redirect("/profile/"+author.Username, fiber.StatusFound)
}

// EditPostForm serves the edit form pre-filled with the post's current values.
// Only the author may edit; anyone else is sent back to the post page.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if post.AuthorID != currentUserID(c) {
		return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
	}

	form := forms.PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return c.JSON(postFormContext{Form: form, IsEdit: true, Post: post})
}

// EditPost updates a post's text, group and image. The outcome depends on who
// asks and what they send: a missing post is a 404, a non-author is redirected
// to the post unchanged, an invalid form is re-rendered, and a valid one is
// saved and redirected to the post. Author and publication date never change.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if post.AuthorID != currentUserID(c) {
		return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
	}

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	valid := form.Validate()
	if valid && form.Group != "" {
		if err := s.checkGroupChoice(c, &form); err != nil {
			if errors.Is(err, errResponseWritten) {
				return nil
			}
			valid = false
		}
	}
	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(postFormContext{Form: form, IsEdit: true, Post: post})
	}

	imagePath, err := s.saveUploadedImage(c)
	if err != nil {
		return fail(c, err)
	}

	post.Text = form.Text
	post.GroupID = form.GroupID()
	post.Group = nil // stale preload; GroupID is authoritative
	if imagePath != "" {
		post.Image = imagePath
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return fail(c, err)
	}

	return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
}

// checkGroupChoice verifies the submitted group exists. A missing group is a
// form error, not a 404; any other failure writes the error response and
// returns errResponseWritten.
func (s *Server) checkGroupChoice(c *fiber.Ctx, form *forms.PostForm) error {
	gid := form.GroupID()
	if gid == nil {
		return nil
	}
	if _, err := s.groupRepo.GetByID(c.Context(), *gid); err != nil {
		if statusFor(err) == fiber.StatusNotFound {
			form.AddError("group", "Select a valid choice")
			return errors.New("unknown group")
		}
		_ = fail(c, err)
		return errResponseWritten
	}
	return nil
}

// saveUploadedImage stores an optional multipart image under the media root
// and returns its media-relative path. No file attached is not an error.
func (s *Server) saveUploadedImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dir := filepath.Join(s.config.MediaRoot, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", models.NewInternalError(err)
	}

	return path.Join("posts", name), nil
}

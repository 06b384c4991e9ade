package server

import (
	"github.com/gofiber/fiber/v2"
)

// ProfileFollow subscribes the current user to an author's posts. Following
// an unknown author is a 404. Following yourself is silently rejected with a
// redirect home. Repeating an existing follow is a no-op; either way the
// client ends up on the follow feed.
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return fail(c, err)
	}

	if author.ID == userID {
		return c.Redirect("/", fiber.StatusFound)
	}

	if err := s.followRepo.GetOrCreate(ctx, userID, author.ID); err != nil {
		return fail(c, err)
	}

	return c.Redirect("/follow", fiber.StatusFound)
}

// ProfileUnfollow removes the current user's subscription to an author.
// Unfollowing an unknown author, or one that was never followed, is a 404.
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return fail(c, err)
	}

	if err := s.followRepo.Delete(ctx, userID, author.ID); err != nil {
		return fail(c, err)
	}

	return c.Redirect("/follow", fiber.StatusFound)
}

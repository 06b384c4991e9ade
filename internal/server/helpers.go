package server

import (
	"errors"
	"strconv"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote the response and
// the caller should just return nil.
var errResponseWritten = errors.New("response already written")

// parseID parses a numeric route parameter. On failure it writes a 404 (a
// non-numeric ID can never name an existing resource) and returns
// errResponseWritten.
func parseID(c *fiber.Ctx, param, resource string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(resource, raw))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}

// fail writes the standard error response for err.
func fail(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusFor(err), err)
}

// currentUserID returns the authenticated user's ID set by RequireLogin.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

func postDetailPath(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10)
}

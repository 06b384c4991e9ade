package server

import (
	"strings"

	"quill/internal/models"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a new user account and returns a token for it.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validation.ValidateUsername(req.Username); err != nil {
		return fail(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return fail(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return fail(c, models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return fail(c, err)
	}
	if existing != nil {
		return fail(c, models.NewValidationError("Email already registered"))
	}
	if _, err := s.userRepo.GetByUsername(c.Context(), req.Username); err == nil {
		return fail(c, models.NewValidationError("Username already taken"))
	} else if statusFor(err) != fiber.StatusNotFound {
		return fail(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Bio:      req.Bio,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return fail(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, User: user})
}

// Login authenticates by email and password and returns a token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return fail(c, err)
	}
	// Same response whether the email is unknown or the password is wrong
	if user == nil {
		return fail(c, models.NewUnauthorizedError("Invalid email or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return fail(c, models.NewUnauthorizedError("Invalid email or password"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return c.JSON(authResponse{Token: token, User: user})
}

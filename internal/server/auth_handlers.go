package server

import (
	"errors"

	"selam/internal/middleware"
	"selam/internal/models"

	"github.com/gofiber/fiber/v2"
)

// authResponse is the {user, error} envelope the auth routes answer with.
type authResponse struct {
	User  *models.User `json:"user"`
	Error *string      `json:"error"`
}

func authFailure(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(authResponse{Error: &msg})
}

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req models.CreateUserInput
	if err := c.BodyParser(&req); err != nil {
		return authFailure(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := s.users.SignUp(c.UserContext(), req)
	if err != nil {
		status := statusFor(err, fiber.StatusBadRequest)
		if status >= fiber.StatusInternalServerError || models.ErrorCode(err) == "" {
			middleware.Logger.ErrorContext(c.UserContext(), "signup failed", "error", err)
			return authFailure(c, fiber.StatusBadRequest, "Failed to create user")
		}
		middleware.Logger.WarnContext(c.UserContext(), "signup rejected", "error", err)
		return authFailure(c, fiber.StatusBadRequest, appMessage(err))
	}

	middleware.SetActor(c, user.ID)
	return c.Status(fiber.StatusCreated).JSON(authResponse{User: user})
}

// Signin handles POST /api/auth/signin. There are no credentials: a known
// email signs the user in.
func (s *Server) Signin(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return authFailure(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := s.users.SignIn(c.UserContext(), req.Email)
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeUnauthorized:
			return authFailure(c, fiber.StatusUnauthorized, appMessage(err))
		case models.CodeValidation:
			return authFailure(c, fiber.StatusBadRequest, appMessage(err))
		}
		middleware.Logger.ErrorContext(c.UserContext(), "signin failed", "error", err)
		return authFailure(c, fiber.StatusInternalServerError, "Authentication failed")
	}

	middleware.SetActor(c, user.ID)
	return c.JSON(authResponse{User: user})
}

func appMessage(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

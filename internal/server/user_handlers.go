package server

import (
	"selam/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch user", err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /api/users/:id. Email, role and timestamps are not
// part of the accepted body.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req models.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := s.users.UpdateUser(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to update user", err)
	}
	return c.JSON(user)
}

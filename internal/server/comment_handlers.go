package server

import (
	"selam/internal/middleware"
	"selam/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPostComments handles GET /api/comments/post/:id
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	comments, err := s.comments.ListForPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch comments", err)
	}
	return c.JSON(comments)
}

// GetDuaRequestComments handles GET /api/comments/dua/:id
func (s *Server) GetDuaRequestComments(c *fiber.Ctx) error {
	comments, err := s.comments.ListForDuaRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch comments", err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req models.CreateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	middleware.SetActor(c, req.UserID)

	comment, err := s.comments.CreateComment(c.UserContext(), req)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to create comment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

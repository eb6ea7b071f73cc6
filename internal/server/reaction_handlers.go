package server

import (
	"selam/internal/middleware"
	"selam/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/likes. On a dua request a like is a prayer.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	var req targetRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	target, err := req.target()
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to toggle like", err)
	}
	middleware.SetActor(c, req.UserID)

	res, err := s.reactions.ToggleLike(c.UserContext(), req.UserID, target)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to toggle like", err)
	}
	return c.JSON(res)
}

// GetUserLike handles GET /api/likes/:userId?post_id|dua_request_id
func (s *Server) GetUserLike(c *fiber.Ctx) error {
	target, err := queryTarget(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to get like status", err)
	}

	liked, err := s.reactions.GetUserLike(c.UserContext(), c.Params("userId"), target)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get like status", err)
	}
	return c.JSON(models.LikeResult{Liked: liked})
}

// ToggleBookmark handles POST /api/bookmarks
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	var req targetRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	target, err := req.target()
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to toggle bookmark", err)
	}
	middleware.SetActor(c, req.UserID)

	res, err := s.reactions.ToggleBookmark(c.UserContext(), req.UserID, target)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to toggle bookmark", err)
	}
	return c.JSON(res)
}

// GetUserBookmark handles GET /api/bookmarks/:userId?post_id|dua_request_id
func (s *Server) GetUserBookmark(c *fiber.Ctx) error {
	target, err := queryTarget(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to get bookmark status", err)
	}

	on, err := s.reactions.GetUserBookmark(c.UserContext(), c.Params("userId"), target)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get bookmark status", err)
	}
	return c.JSON(models.BookmarkResult{Bookmarked: on})
}

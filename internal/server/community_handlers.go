package server

import (
	"selam/internal/middleware"
	"selam/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCommunities handles GET /api/communities
func (s *Server) GetCommunities(c *fiber.Ctx) error {
	communities, err := s.communities.ListCommunities(c.UserContext())
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch communities", err)
	}
	return c.JSON(communities)
}

// CreateCommunity handles POST /api/communities
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	var req models.CreateCommunityInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	middleware.SetActor(c, req.CreatedBy)

	community, err := s.communities.CreateCommunity(c.UserContext(), req)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to create community", err)
	}
	return c.Status(fiber.StatusCreated).JSON(community)
}

// JoinCommunity handles POST /api/communities/:id/join
func (s *Server) JoinCommunity(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	middleware.SetActor(c, req.UserID)

	if err := s.communities.JoinCommunity(c.UserContext(), c.Params("id"), req.UserID); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to join community", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetEvents handles GET /api/events
func (s *Server) GetEvents(c *fiber.Ctx) error {
	events, err := s.communities.ListEvents(c.UserContext())
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch events", err)
	}
	return c.JSON(events)
}

// CreateEvent handles POST /api/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	var req models.CreateEventInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	middleware.SetActor(c, req.CreatedBy)

	event, err := s.communities.CreateEvent(c.UserContext(), req)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to create event", err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// AttendEvent handles POST /api/events/:id/attend
func (s *Server) AttendEvent(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	middleware.SetActor(c, req.UserID)

	if err := s.communities.AttendEvent(c.UserContext(), c.Params("id"), req.UserID); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to attend event", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

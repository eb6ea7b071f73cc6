package server

import (
	"selam/internal/middleware"
	"selam/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts?limit&offset&tag
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, s.config.PostsDefaultLimit)

	posts, err := s.posts.ListPosts(c.UserContext(), models.PostFilter{
		Limit:  page.Limit,
		Offset: page.Offset,
		Tag:    c.Query("tag"),
	})
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch posts", err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.posts.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch post", err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req models.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	middleware.SetActor(c, req.UserID)

	post, err := s.posts.CreatePost(c.UserContext(), req)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to create post", err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.posts.DeletePost(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to delete post", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetDuaRequests handles GET /api/dua-requests?limit&offset
func (s *Server) GetDuaRequests(c *fiber.Ctx) error {
	page := parsePagination(c, s.config.PostsDefaultLimit)

	duas, err := s.posts.ListDuaRequests(c.UserContext(), models.DuaRequestFilter{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch dua requests", err)
	}
	return c.JSON(duas)
}

// CreateDuaRequest handles POST /api/dua-requests
func (s *Server) CreateDuaRequest(c *fiber.Ctx) error {
	var req models.CreateDuaRequestInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	middleware.SetActor(c, req.UserID)

	dua, err := s.posts.CreateDuaRequest(c.UserContext(), req)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Failed to create dua request", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dua)
}

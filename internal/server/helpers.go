package server

import (
	"errors"

	"selam/internal/middleware"
	"selam/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// statusFor maps an error to its HTTP status. Validation, conflict,
// not-found and unauthorized failures have fixed statuses; anything else
// answers with the route's fallback.
func statusFor(err error, fallback int) int {
	switch models.ErrorCode(err) {
	case models.CodeValidation, models.CodeConflict:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fallback
}

// respondError logs err and writes the standard error body. Only AppError
// messages reach the client; anything else answers with msg.
func respondError(c *fiber.Ctx, fallback int, msg string, err error) error {
	status := statusFor(err, fallback)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), msg, "error", err)
	} else {
		middleware.Logger.WarnContext(c.UserContext(), msg, "status", status, "error", err)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		err = &models.AppError{Code: models.CodeInternal, Message: msg, Err: err}
	}
	return models.RespondWithError(c, status, err)
}

// badBody answers a body that could not be decoded.
func badBody(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError("Invalid request body"))
}

// targetRequest is the body shared by the like and bookmark toggles.
type targetRequest struct {
	UserID       string  `json:"user_id"`
	PostID       *string `json:"post_id"`
	DuaRequestID *string `json:"dua_request_id"`
}

func (r targetRequest) target() (models.Target, error) {
	return models.ParseTarget(r.PostID, r.DuaRequestID)
}

// queryTarget reads ?post_id or ?dua_request_id.
func queryTarget(c *fiber.Ctx) (models.Target, error) {
	var postID, duaID *string
	if v := c.Query("post_id"); v != "" {
		postID = &v
	}
	if v := c.Query("dua_request_id"); v != "" {
		duaID = &v
	}
	return models.ParseTarget(postID, duaID)
}

// userRequest is the body of join and attend.
type userRequest struct {
	UserID string `json:"user_id"`
}

package server

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"selam/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query          string
		expectedLimit  int
		expectedOffset int
	}{
		{"", 50, 0},
		{"?limit=10&offset=20", 10, 20},
		{"?limit=0", 50, 0},
		{"?limit=-3&offset=-1", 50, 0},
		{"?limit=1000", maxPaginationLimit, 0},
		{"?limit=abc", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			var got Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePagination(c, 50)
				return nil
			})
			_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedLimit, got.Limit)
			assert.Equal(t, tt.expectedOffset, got.Offset)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback int
		expected int
	}{
		{"Validation", models.NewValidationError("bad"), fiber.StatusInternalServerError, fiber.StatusBadRequest},
		{"Conflict", models.NewConflictError("taken", nil), fiber.StatusInternalServerError, fiber.StatusBadRequest},
		{"Not found", models.NewNotFoundError("Post", "1"), fiber.StatusBadRequest, fiber.StatusNotFound},
		{"Wrapped not found", fmt.Errorf("join: %w", models.NewNotFoundError("Community", "1")), fiber.StatusBadRequest, fiber.StatusNotFound},
		{"Unauthorized", models.NewUnauthorizedError("no"), fiber.StatusInternalServerError, fiber.StatusUnauthorized},
		{"Backend failure", assert.AnError, fiber.StatusInternalServerError, fiber.StatusInternalServerError},
		{"Backend failure on create route", assert.AnError, fiber.StatusBadRequest, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusFor(tt.err, tt.fallback))
		})
	}
}

func TestRespondErrorHidesBackendDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, fiber.StatusInternalServerError, "Failed to fetch posts",
			fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))
	})

	status, raw := doJSON(t, app, "GET", "/", nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	res := decode[models.ErrorResponse](t, raw)
	assert.Equal(t, "Failed to fetch posts", res.Error)
	assert.Equal(t, models.CodeInternal, res.Code)
	assert.NotContains(t, string(raw), "10.0.0.5")
}

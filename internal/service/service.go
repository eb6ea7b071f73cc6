// Package service validates caller input and orchestrates Storage calls for
// the route layer.
package service

import (
	"strings"

	"selam/internal/models"
)

// MaxPageSize caps the limit a caller may request from a listing.
const MaxPageSize = 100

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return models.NewValidationError(err.Error())
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return models.NewValidationError(field + " is required")
	}
	return nil
}

// cleanTags trims tags and drops blanks and duplicates, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return limit
}

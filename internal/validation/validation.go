// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"selam/internal/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)*\.[a-zA-Z]{2,}$`)
	priceRegex    = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}
	first, last := username[0], username[len(username)-1]
	if first == '_' || first == '-' || last == '_' || last == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// Required rejects blank values and values longer than max runes.
func Required(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%s too long (max %d characters)", field, max)
	}
	return nil
}

// ValidatePostType accepts the post kinds the feed can render.
func ValidatePostType(postType string) error {
	switch postType {
	case "", models.PostTypeText, models.PostTypeImage, models.PostTypeVideo:
		return nil
	}
	return fmt.Errorf("invalid post type %q", postType)
}

// ValidateMediaURL requires an absolute http(s) URL.
func ValidateMediaURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid media url")
	}
	return nil
}

// ValidateEventDate checks a calendar date in YYYY-MM-DD form.
func ValidateEventDate(date string) error {
	if _, err := time.Parse(models.EventDateLayout, date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return nil
}

// ValidateEventTime checks a wall clock time in HH:MM form.
func ValidateEventTime(clock string) error {
	if _, err := time.Parse(models.EventTimeLayout, clock); err != nil {
		return fmt.Errorf("time must be in HH:MM format")
	}
	return nil
}

// ValidatePrice accepts a non-negative amount with at most two decimals that
// fits numeric(10,2).
func ValidatePrice(price string) error {
	if price == "" {
		return nil
	}
	if !priceRegex.MatchString(price) {
		return fmt.Errorf("price must be a non-negative amount with at most two decimals")
	}
	if _, err := strconv.ParseFloat(price, 64); err != nil {
		return fmt.Errorf("invalid price")
	}
	return nil
}

package utils

import (
	"regexp"
	"strings"
	"time"

	"wordquest/pkg/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks username shape
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return models.ErrInvalidInput
	}
	return nil
}

// ValidateEmail checks email shape
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return models.ErrInvalidInput
	}
	return nil
}

// ValidateBookTitle validates book title
func ValidateBookTitle(title string) error {
	if len(strings.TrimSpace(title)) < 2 {
		return models.ErrInvalidInput
	}
	if len(title) > 255 {
		return models.ErrInvalidInput
	}
	return nil
}

// IsRecentTime checks if time is within specified duration
func IsRecentTime(t time.Time, duration time.Duration) bool {
	return time.Since(t) <= duration
}

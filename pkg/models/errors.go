package models

import (
	"errors"
	"fmt"
)

// Common error codes used in JSON responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeLocked             = "MISSION_LOCKED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBookNotFound       = errors.New("book not found")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrMissionNotFound    = errors.New("mission not found")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrMissionLocked means the previous mission has not reached the
	// unlock threshold yet
	ErrMissionLocked = errors.New("mission is locked")

	// ErrInvalidMissionData means the stored answer key is unusable
	// (e.g. empty correct-word list); scoring refuses rather than
	// dividing by zero
	ErrInvalidMissionData = errors.New("invalid mission data")
)

// AppError carries an error code plus HTTP mapping and optional details
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewHTTPError builds an AppError with an HTTP status mapping
func NewHTTPError(code, message string, statusCode int, err error) *AppError {
	appErr := &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
	if err != nil {
		appErr.Details = map[string]interface{}{"original_error": err.Error()}
	}
	return appErr
}

// HTTPStatus extracts the status code for an error, defaulting to 500
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrBookNotFound),
		errors.Is(err, ErrChapterNotFound),
		errors.Is(err, ErrMissionNotFound),
		errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrMissionLocked):
		return 403
	case errors.Is(err, ErrUsernameExists), errors.Is(err, ErrEmailExists):
		return 409
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidMissionData):
		return 400
	default:
		return 500
	}
}

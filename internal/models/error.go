package models

import (
	"fmt"
)

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrNotFound         = "NOT_FOUND"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Menu-specific errors
	ErrMenuUnavailable     = "MENU_UNAVAILABLE"
	ErrMenuItemInvalidData = "MENU_ITEM_INVALID_DATA"

	// Session-specific errors
	ErrSessionRequired = "SESSION_REQUIRED"
	ErrSessionInvalid  = "SESSION_INVALID"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// FieldError is a validation failure tied to a single input field. It lets
// callers tell which field was rejected instead of parsing a message string.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError creates a validation error for a single field
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned when no authenticated actor is present.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when an authenticated actor lacks rights.
	ErrForbidden = errors.New("permission denied")
	// ErrTicketNotFound is returned when a ticket is not found.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrDepartmentNotFound is returned when a department is not found.
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
)

// ValidationError is a field-scoped bad-request error. Enum violations,
// wrong-role assignment targets, and absent foreign-key ids name the
// offending field instead of failing generically.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error scoped to a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
		Field: e.Field,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. A denial for an
// authenticated actor stays a 403 and is never masked as a 404.
func MapErrorToHTTP(err error) *HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		httpErr := NewHTTPError(http.StatusBadRequest, vErr.Message, "VALIDATION_ERROR")
		httpErr.Field = vErr.Field
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrTicketNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TICKET_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrNotificationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTIFICATION_NOT_FOUND")
	case errors.Is(err, ErrDepartmentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DEPARTMENT_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

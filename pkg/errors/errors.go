package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeExpired      = "ORDER_EXPIRED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

// AppError represents an application error
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Payload interface{}            `json:"-"`
	Err     error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON envelope returned for failed requests.
// The shape is part of the public API contract: clients read field-level
// messages out of the "error" object, and an expired order is echoed
// back under "order" for display.
type ErrorResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Error   map[string]interface{} `json:"error"`
	Order   interface{}            `json:"order,omitempty"`
}

// ToJSON converts an error to the standard JSON response
func ToJSON(err error) (int, []byte) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{
			Code:    CodeInternal,
			Message: "An internal error occurred",
		}
	}

	details := appErr.Details
	if len(details) == 0 {
		details = map[string]interface{}{"message": appErr.Message}
	}

	response := ErrorResponse{
		Status:  "error",
		Message: appErr.Message,
		Error:   details,
		Order:   appErr.Payload,
	}

	data, _ := json.Marshal(response)
	return HTTPStatus(appErr), data
}

// HTTPStatus returns the HTTP status code for an error
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeExpired:
		return http.StatusMethodNotAllowed
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Constructor functions

// NewValidation creates a validation error
func NewValidation(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Details: details,
	}
}

// NewNotFound creates a not found error with a field-level detail
func NewNotFound(message, field string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Details: map[string]interface{}{field: message},
	}
}

// NewExpired creates an expired-order error carrying the order snapshot
// so clients can render the state the order ended up in.
func NewExpired(message string, order interface{}) *AppError {
	return &AppError{
		Code:    CodeExpired,
		Message: message,
		Details: map[string]interface{}{"message": message},
		Payload: order,
	}
}

// NewForbidden creates a forbidden error
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Details: map[string]interface{}{"message": message},
	}
}

// NewUnauthorized creates an unauthorized error
func NewUnauthorized(message, field string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Details: map[string]interface{}{field: message},
	}
}

// NewInternal creates an internal error
func NewInternal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error matches a specific code
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message + ": " + appErr.Message,
			Details: appErr.Details,
			Payload: appErr.Payload,
			Err:     err,
		}
	}
	return NewInternal(message, err)
}

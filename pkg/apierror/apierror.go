package apierror

import (
	"fmt"
	"net/http"
)

// APIError is an error that already knows how it should be rendered to a
// client: the HTTP status, a safe message and optional structured data.
type APIError struct {
	Message    string
	Data       any
	HTTPStatus int
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%d: %s", e.HTTPStatus, e.Message)
}

func New(message string, status int) *APIError {
	return &APIError{Message: message, HTTPStatus: status}
}

func WithData(message string, status int, data any) *APIError {
	return &APIError{Message: message, Data: data, HTTPStatus: status}
}

func BadRequest(message string) *APIError {
	return New(message, http.StatusBadRequest)
}

func NotFound(message string) *APIError {
	return New(message, http.StatusNotFound)
}

// Validation reports field-level failures with HTTP 422.
func Validation(fields map[string]string) *APIError {
	return WithData("Validation failed", http.StatusUnprocessableEntity, fields)
}

func Unprocessable(message string) *APIError {
	return New(message, http.StatusUnprocessableEntity)
}

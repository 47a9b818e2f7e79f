package services

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoToken means the admin has no backend token; nothing is fetched.
	ErrNoToken = errors.New("not authenticated")
	// ErrTokenExpired means the backend token's exp claim has passed.
	ErrTokenExpired = errors.New("session expired")
)

// APIError is a non-2xx answer from the REST backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// ValidationError is a client-side check that failed before any request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsAuthError reports errors that should end the admin session.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNoToken) || errors.Is(err, ErrTokenExpired) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

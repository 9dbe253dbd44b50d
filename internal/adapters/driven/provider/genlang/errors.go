package genlang

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a provider error response. The message keeps the HTTP code
// and status words visible because retry classification inspects them.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Status is the provider status word (e.g. "RESOURCE_EXHAUSTED").
	Status string

	// Message is the provider-supplied detail.
	Message string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("genlang: %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("genlang: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a missing store or operation.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates a bad or missing API key.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsRateLimited checks if the error indicates quota exhaustion.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// errorEnvelope is the provider's JSON error wrapper.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

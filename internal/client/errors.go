package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the failure classes a backend call can produce.
var (
	// ErrTransport wraps connection, DNS and timeout failures.
	ErrTransport = errors.New("backend unreachable")
	// ErrDecode wraps responses whose body does not match the expected shape.
	ErrDecode = errors.New("unexpected response body")
)

// APIError is a non-2xx response from the backend.
// Body holds the raw response so the host sees exactly what the backend said.
// Message is the envelope's message or error field, kept for log fields only.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: backend returned %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: backend returned %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is a backend 409.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// StatusCode returns the backend status carried by err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func hasStatus(err error, status int) bool {
	return StatusCode(err) == status
}

// newAPIError builds an APIError, lifting a message out of common JSON error
// envelopes ({"error": ...} or {"message": ...}) when the body has one.
func newAPIError(method, path string, statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(body)),
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		switch {
		case envelope.Message != "":
			apiErr.Message = envelope.Message
		case envelope.Error != "":
			apiErr.Message = envelope.Error
		}
	}
	return apiErr
}

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/netline-isp/isp-console/internal/shared"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %s %s: %d", e.Method, e.Path, e.Status)
}

// Is lets callers match on the shared sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case shared.ErrNotFound:
		return e.Status == http.StatusNotFound
	case shared.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case shared.ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		msg = envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
	}
	return &APIError{Method: method, Path: path, Status: status, Message: strings.TrimSpace(msg)}
}

// Message returns the backend's own message for err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

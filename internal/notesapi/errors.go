package notesapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// planLimitMarker is the phrase the backend uses when a free tenant hits the
// note limit.
const planLimitMarker = "Upgrade to Pro"

// ErrNotAuthenticated reports a session check that resolved without an identity.
var ErrNotAuthenticated = errors.New("notesapi: not authenticated")

// Error is a non-2xx backend response.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the backend-provided message, empty when the body carried none.
	Message string
}

// Error renders the failure for logs.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("notesapi: %s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("notesapi: %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// StatusCode returns the backend status carried by err, or zero for transport
// failures.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message returns the backend-provided message for err, or fallback when the
// failure carried none (transport errors included).
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if message := strings.TrimSpace(apiErr.Message); message != "" {
			return message
		}
	}
	return fallback
}

// IsPlanLimit reports whether a backend message is the plan-limit rejection.
func IsPlanLimit(message string) bool {
	return strings.Contains(message, planLimitMarker)
}

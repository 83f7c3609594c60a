package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "unauthorized", err: E(KindUnauthorized, "no"), want: http.StatusUnauthorized},
		{name: "forbidden", err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{name: "unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "not found", err: fmt.Errorf("wrap: %w", E(KindNotFound, "gone")), want: http.StatusNotFound},
		{name: "unknown kind", err: E(KindUnknown, "?"), want: http.StatusInternalServerError},
		{name: "backend client error", err: &notesapi.Error{StatusCode: http.StatusForbidden}, want: http.StatusForbidden},
		{name: "backend server error", err: &notesapi.Error{StatusCode: http.StatusInternalServerError}, want: http.StatusBadGateway},
		{name: "not authenticated", err: notesapi.ErrNotAuthenticated, want: http.StatusUnauthorized},
		{name: "plain", err: stderrors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindInvalidInput, " login.error.required ", "required")); got != "login.error.required" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := LocalizationKey(stderrors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q", got)
	}
	if got := (Error{Kind: KindForbidden}).Error(); got != "forbidden" {
		t.Fatalf("Error() = %q", got)
	}
}

package httpx

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/tenantnotes/internal/platform/requestctx"
	apperrors "github.com/louisbranch/tenantnotes/internal/services/web/platform/errors"
)

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	called := ""
	mw1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called += "1"
			next.ServeHTTP(w, r)
		})
	}
	mw2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called += "2"
			next.ServeHTTP(w, r)
		})
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mw1, nil, mw2)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestChainHandlesNilHandler(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Chain(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestRequestIDAddsHeaderAndContext(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestctx.RequestIDFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	header := rr.Header().Get("X-Request-ID")
	if !strings.HasPrefix(header, "web-") {
		t.Fatalf("X-Request-ID = %q, want web- prefix", header)
	}
	if seen != header {
		t.Fatalf("context request id = %q, want %q", seen, header)
	}
}

func TestRequestIDPreservesIncomingHeader(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("X-Request-ID = %q, want %q", got, "req-123")
	}
}

func TestRecoverPanicLogsRequestContext(t *testing.T) {
	var buffer bytes.Buffer
	previous := log.Writer()
	log.SetOutput(&buffer)
	t.Cleanup(func() { log.SetOutput(previous) })

	h := RecoverPanic()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodPost, "/notes", nil)
	req.Header.Set("X-Request-ID", "req-9")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	line := buffer.String()
	for _, marker := range []string{"panic recovered", "method=POST", "path=/notes", "request_id=req-9", "panic=boom"} {
		if !strings.Contains(line, marker) {
			t.Fatalf("log line missing %q: %q", marker, line)
		}
	}
}

func TestWriteJSONSetsContentTypeAndBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteJSON(rr, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if err := WriteJSON(nil, http.StatusOK, nil); err == nil {
		t.Fatal("expected nil writer error")
	}
}

func TestWriteErrorUsesTypedStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteError(rr, apperrors.E(apperrors.KindForbidden, "secret detail"))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if strings.Contains(rr.Body.String(), "secret detail") {
		t.Fatalf("body leaked error detail: %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	WriteError(rr, errors.New("boom"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestIsHTMXRequest(t *testing.T) {
	t.Parallel()

	if IsHTMXRequest(nil) {
		t.Fatal("nil request is not htmx")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	if !IsHTMXRequest(req) {
		t.Fatal("expected htmx request")
	}
}

func TestWriteHTMLSetsContentType(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteHTML(rr, http.StatusAccepted, "<p>ok</p>"); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	if rr.Code != http.StatusAccepted || rr.Body.String() != "<p>ok</p>" {
		t.Fatalf("response = %d %q", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
}

func TestWriteRedirect(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteRedirect(rr, httptest.NewRequest(http.MethodPost, "/login", nil), "/notes")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/notes" {
		t.Fatalf("response = %d location=%q", rr.Code, rr.Header().Get("Location"))
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("HX-Request", "true")
	WriteRedirect(rr, req, "/notes")
	if rr.Code != http.StatusOK || rr.Header().Get("HX-Redirect") != "/notes" {
		t.Fatalf("htmx response = %d hx-redirect=%q", rr.Code, rr.Header().Get("HX-Redirect"))
	}

	rr = httptest.NewRecorder()
	WriteRedirect(rr, nil, "/login")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("nil request response = %d", rr.Code)
	}
	WriteRedirect(nil, nil, "/login")
}

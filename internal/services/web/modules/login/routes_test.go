package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	"github.com/louisbranch/tenantnotes/internal/session"
	"github.com/louisbranch/tenantnotes/internal/session/sessiontest"
)

var adminUser = notesapi.User{
	Email:  "admin@acme.test",
	Role:   notesapi.RoleAdmin,
	UserID: "u-1",
	Tenant: notesapi.Tenant{ID: "t-1", Slug: "acme", Name: "Acme", Plan: notesapi.PlanFree},
}

type fixture struct {
	api      *sessiontest.FakeAPI
	provider *session.Provider
	mirror   *session.MemoryStore
	handler  http.Handler
}

func newFixture(t *testing.T, api *sessiontest.FakeAPI, showAccounts bool) fixture {
	t.Helper()
	mirror := session.NewMemoryStore()
	provider := session.NewProvider("sess-1", api, session.WithMirror(mirror))
	provider.Init(t.Context())

	mount, err := New(showAccounts).Mount(module.Dependencies{
		ConfirmWait: time.Second,
		ResolveSession: func(*http.Request) (*session.Provider, bool) {
			return provider, true
		},
	})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/login" {
		t.Fatalf("prefix = %q, want /login", mount.Prefix)
	}
	return fixture{api: api, provider: provider, mirror: mirror, handler: mount.Handler}
}

func postForm(values url.Values, htmx bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func TestFormRendersForAnonymousSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &sessiontest.FakeAPI{CheckErr: notesapi.ErrNotAuthenticated}, true)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="login-card"`, `name="email"`, `name="password"`, `id="test-accounts"`, `user@globex.test / password (Member)`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("form missing %q", marker)
		}
	}
}

func TestFormHidesTestAccountsWhenDisabled(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &sessiontest.FakeAPI{CheckErr: notesapi.ErrNotAuthenticated}, false)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	if strings.Contains(rr.Body.String(), `id="test-accounts"`) {
		t.Fatal("test accounts rendered while disabled")
	}
}

func TestFormRedirectsAuthenticatedSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &sessiontest.FakeAPI{User: adminUser}, true)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/notes" {
		t.Fatalf("response = %d location=%q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestFormShowsCheckingWhileSessionLoads(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	defer close(gate)
	f := newFixture(t, &sessiontest.FakeAPI{CheckGate: gate}, true)

	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	if !strings.Contains(rr.Body.String(), "Checking authentication...") {
		t.Fatalf("expected checking spinner: %q", rr.Body.String())
	}
}

func TestSubmitRequiresCredentialsBeforeBackendCall(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &sessiontest.FakeAPI{CheckErr: notesapi.ErrNotAuthenticated}, true)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, postForm(url.Values{"email": {"admin@acme.test"}}, false))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Email and password are required") || !strings.Contains(body, `value="admin@acme.test"`) {
		t.Fatalf("expected validation error with email retained: %q", body)
	}
	if f.api.CallCount("login") != 0 {
		t.Fatalf("login calls = %d, want 0", f.api.CallCount("login"))
	}
}

func TestSubmitSuccessPersistsSessionAndRedirects(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &sessiontest.FakeAPI{CheckErr: notesapi.ErrNotAuthenticated, LoginUser: adminUser}, true)
	if _, ok := f.provider.Wait(t.Context()); !ok {
		t.Fatal("session did not resolve")
	}

	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, postForm(url.Values{"email": {" admin@acme.test "}, "password": {"password"}}, false))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/notes" {
		t.Fatalf("response = %d location=%q", rr.Code, rr.Header().Get("Location"))
	}
	state := f.provider.State()
	if !state.Authenticated() || state.User.Email != adminUser.Email {
		t.Fatalf("state = %+v", state)
	}
	stored, ok, err := f.mirror.LoadUser(t.Context(), "sess-1")
	if err != nil || !ok || stored != adminUser {
		t.Fatalf("mirror = %+v ok=%v err=%v", stored, ok, err)
	}
}

func TestSubmitSuccessHTMXUsesHXRedirect(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &sessiontest.FakeAPI{CheckErr: notesapi.ErrNotAuthenticated, LoginUser: adminUser}, true)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, postForm(url.Values{"email": {"admin@acme.test"}, "password": {"password"}}, true))
	if rr.Header().Get("HX-Redirect") != "/notes" {
		t.Fatalf("HX-Redirect = %q", rr.Header().Get("HX-Redirect"))
	}
}

func TestSubmitFailureShowsBackendMessage(t *testing.T) {
	t.Parallel()

	api := &sessiontest.FakeAPI{
		CheckErr: notesapi.ErrNotAuthenticated,
		LoginErr: &notesapi.Error{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"},
	}
	f := newFixture(t, api, true)

	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, postForm(url.Values{"email": {"admin@acme.test"}, "password": {"nope"}}, true))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="login-error"`) || !strings.Contains(body, "Invalid credentials") {
		t.Fatalf("expected error fragment: %q", body)
	}
	if strings.Contains(body, `id="login-card"`) {
		t.Fatalf("htmx failure must swap only the error region: %q", body)
	}

	rr = httptest.NewRecorder()
	f.handler.ServeHTTP(rr, postForm(url.Values{"email": {"admin@acme.test"}, "password": {"nope"}}, false))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if body := rr.Body.String(); !strings.Contains(body, `value="admin@acme.test"`) || !strings.Contains(body, "Invalid credentials") {
		t.Fatalf("expected form re-render with email kept: %q", body)
	}
	if f.provider.State().User != nil {
		t.Fatal("failed login set a user")
	}
}

func TestSubmitFailureFallsBackToGenericMessage(t *testing.T) {
	t.Parallel()

	api := &sessiontest.FakeAPI{
		CheckErr: notesapi.ErrNotAuthenticated,
		LoginErr: &notesapi.Error{StatusCode: http.StatusInternalServerError},
	}
	f := newFixture(t, api, true)

	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, postForm(url.Values{"email": {"admin@acme.test"}, "password": {"password"}}, false))
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	if !strings.Contains(rr.Body.String(), "Login failed") {
		t.Fatalf("expected fallback message: %q", rr.Body.String())
	}
}

func TestUnknownLoginSubpathIsNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &sessiontest.FakeAPI{}, true)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login/extra", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

package notesctl

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/louisbranch/tenantnotes/internal/session"
	"github.com/louisbranch/tenantnotes/internal/session/sessiontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminUser = notesapi.User{
		Email:  "admin@acme.test",
		Role:   notesapi.RoleAdmin,
		UserID: "u-1",
		Tenant: notesapi.Tenant{ID: "t-1", Slug: "acme", Name: "Acme", Plan: notesapi.PlanFree},
	}
	memberUser = notesapi.User{
		Email:  "user@acme.test",
		Role:   notesapi.RoleMember,
		UserID: "u-2",
		Tenant: notesapi.Tenant{ID: "t-1", Slug: "acme", Name: "Acme", Plan: notesapi.PlanFree},
	}
)

type result struct {
	out    string
	errOut string
	err    error
}

type harness struct {
	fake        *sessiontest.FakeAPI
	sessionFile string
	env         map[string]string
	baseURLs    []string
}

func newHarness(t *testing.T, fake *sessiontest.FakeAPI) *harness {
	t.Helper()
	return &harness{
		fake:        fake,
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
		env:         map[string]string{},
	}
}

func (h *harness) run(args ...string) result {
	var out, errOut bytes.Buffer
	root := NewRootCommand(Options{
		Out: &out,
		Err: &errOut,
		Env: h.env,
		NewAPI: func(baseURL string, _ *notesapi.Jar) (session.API, error) {
			h.baseURLs = append(h.baseURLs, baseURL)
			return h.fake, nil
		},
	})
	root.SetArgs(append([]string{"--session-file", h.sessionFile}, args...))
	err := root.ExecuteContext(context.Background())
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func (h *harness) storedUser(t *testing.T) (notesapi.User, bool) {
	t.Helper()
	store, err := NewFileStore(h.sessionFile)
	require.NoError(t, err)
	user, ok, err := store.LoadUser(context.Background(), sessionKey)
	require.NoError(t, err)
	return user, ok
}

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCommand(Options{})

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"login", "logout", "status", "notes", "invite", "upgrade"} {
		assert.True(t, names[want], "missing command %q", want)
	}

	notesCmd, _, err := root.Find([]string{"notes"})
	require.NoError(t, err)
	sub := map[string]bool{}
	for _, cmd := range notesCmd.Commands() {
		sub[cmd.Name()] = true
	}
	assert.True(t, sub["list"])
	assert.True(t, sub["create"])
	assert.True(t, sub["delete"])

	assert.NotNil(t, root.PersistentFlags().Lookup("api-base-url"))
	assert.NotNil(t, root.PersistentFlags().Lookup("session-file"))
}

func TestConfigFromEnvAndFlags(t *testing.T) {
	h := newHarness(t, &sessiontest.FakeAPI{User: adminUser})
	h.env = map[string]string{"TENANTNOTES_API_BASE_URL": "http://api.test"}

	res := h.run("status")
	require.NoError(t, res.err)
	res = h.run("--api-base-url", "http://flag.test", "status")
	require.NoError(t, res.err)

	assert.Equal(t, []string{"http://api.test", "http://flag.test"}, h.baseURLs)
}

func TestConfigDefaultsToLocalBackend(t *testing.T) {
	h := newHarness(t, &sessiontest.FakeAPI{User: adminUser})

	require.NoError(t, h.run("status").err)
	assert.Equal(t, []string{"http://localhost:5000"}, h.baseURLs)
}

func TestConfigRejectsBadTimeout(t *testing.T) {
	h := newHarness(t, &sessiontest.FakeAPI{User: adminUser})
	h.env = map[string]string{"TENANTNOTES_CLI_TIMEOUT": "soon"}

	res := h.run("status")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "parse env")
}

func TestLoginStoresSession(t *testing.T) {
	fake := &sessiontest.FakeAPI{LoginUser: adminUser, CheckErr: notesapi.ErrNotAuthenticated}
	h := newHarness(t, fake)

	res := h.run("login", "--email", "admin@acme.test", "--password", "password")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Logged in.")
	assert.Contains(t, res.out, "admin@acme.test")
	assert.Contains(t, res.out, "Acme")

	user, ok := h.storedUser(t)
	require.True(t, ok)
	assert.Equal(t, adminUser, user)

	res = h.run("status")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "admin@acme.test")
	assert.Contains(t, res.out, "FREE")
	assert.Contains(t, res.out, "ADMIN")
}

func TestLoginRequiresCredentials(t *testing.T) {
	fake := &sessiontest.FakeAPI{}
	h := newHarness(t, fake)

	res := h.run("login", "--email", " ", "--password", "password")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "email and password are required")
	assert.Zero(t, fake.CallCount("login"))
}

func TestLoginFailureRelaysBackendMessage(t *testing.T) {
	fake := &sessiontest.FakeAPI{LoginErr: &notesapi.Error{StatusCode: 401, Message: "Invalid credentials"}}
	h := newHarness(t, fake)

	res := h.run("login", "--email", "admin@acme.test", "--password", "nope")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "Invalid credentials")
	_, ok := h.storedUser(t)
	assert.False(t, ok)
}

func TestStatusWithoutSession(t *testing.T) {
	fake := &sessiontest.FakeAPI{CheckErr: notesapi.ErrNotAuthenticated}
	h := newHarness(t, fake)

	res := h.run("status")
	require.ErrorIs(t, res.err, errNotLoggedIn)
	assert.Empty(t, res.errOut)
}

func TestStatusDropsRejectedMirror(t *testing.T) {
	fake := &sessiontest.FakeAPI{CheckErr: notesapi.ErrNotAuthenticated}
	h := newHarness(t, fake)
	store, err := NewFileStore(h.sessionFile)
	require.NoError(t, err)
	require.NoError(t, store.SaveUser(context.Background(), sessionKey, adminUser))

	res := h.run("status")
	require.ErrorIs(t, res.err, errNotLoggedIn)
	_, ok := h.storedUser(t)
	assert.False(t, ok)
}

func TestLogoutClearsStoredSession(t *testing.T) {
	fake := &sessiontest.FakeAPI{LoginUser: adminUser}
	h := newHarness(t, fake)
	require.NoError(t, h.run("login", "--email", "admin@acme.test", "--password", "password").err)

	res := h.run("logout")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Logged out.")
	assert.Equal(t, 1, fake.CallCount("logout"))
	_, ok := h.storedUser(t)
	assert.False(t, ok)
}

func TestLogoutSucceedsWhenBackendFails(t *testing.T) {
	fake := &sessiontest.FakeAPI{LoginUser: adminUser, LogoutErr: &notesapi.Error{StatusCode: 500}}
	h := newHarness(t, fake)
	require.NoError(t, h.run("login", "--email", "admin@acme.test", "--password", "password").err)

	res := h.run("logout")
	require.NoError(t, res.err)
	assert.Contains(t, res.errOut, "session logout failed")
	_, ok := h.storedUser(t)
	assert.False(t, ok)
}

package notesctl

import (
	"testing"
	"time"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/louisbranch/tenantnotes/internal/session/sessiontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeNotes() []notesapi.Note {
	created := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	return []notesapi.Note{
		{ID: "n-1", Title: "First", Content: "alpha", CreatedAt: created},
		{ID: "n-2", Title: "Second", CreatedAt: created},
		{ID: "n-3", Title: "Third"},
	}
}

func TestNotesListShowsUsageForFreeTenant(t *testing.T) {
	fake := &sessiontest.FakeAPI{User: adminUser, Notes: threeNotes()[:2]}
	h := newHarness(t, fake)

	res := h.run("notes", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Acme notes")
	assert.Contains(t, res.out, "Free plan: 2/3 notes used")
	assert.Contains(t, res.out, "n-1")
	assert.Contains(t, res.out, "First")
	assert.Contains(t, res.out, "alpha")
	assert.Contains(t, res.out, "2026-03-04")
	assert.NotContains(t, res.out, "limit reached")
}

func TestNotesListWarnsAtLimit(t *testing.T) {
	tests := []struct {
		name string
		user notesapi.User
		want string
	}{
		{name: "admin", user: adminUser, want: "Run notesctl upgrade"},
		{name: "member", user: memberUser, want: "Ask an admin to upgrade to Pro"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, &sessiontest.FakeAPI{User: tc.user, Notes: threeNotes()})

			res := h.run("notes", "list")
			require.NoError(t, res.err)
			assert.Contains(t, res.out, "Free plan: 3/3 notes used")
			assert.Contains(t, res.out, tc.want)
		})
	}
}

func TestNotesListProTenantHasNoLimit(t *testing.T) {
	pro := adminUser
	pro.Tenant.Plan = notesapi.PlanPro
	h := newHarness(t, &sessiontest.FakeAPI{User: pro, Notes: threeNotes()})

	res := h.run("notes", "ls")
	require.NoError(t, res.err)
	assert.NotContains(t, res.out, "Free plan")
	assert.NotContains(t, res.out, "limit reached")
}

func TestNotesListEmpty(t *testing.T) {
	h := newHarness(t, &sessiontest.FakeAPI{User: memberUser})

	res := h.run("notes", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "No notes yet.")
}

func TestNotesListRequiresSession(t *testing.T) {
	fake := &sessiontest.FakeAPI{CheckErr: notesapi.ErrNotAuthenticated}
	h := newHarness(t, fake)

	res := h.run("notes", "list")
	require.ErrorIs(t, res.err, errNotLoggedIn)
	assert.Zero(t, fake.CallCount("list"))
}

func TestNotesListRelaysBackendError(t *testing.T) {
	fake := &sessiontest.FakeAPI{User: adminUser, ListErr: &notesapi.Error{StatusCode: 500, Message: "database offline"}}
	h := newHarness(t, fake)

	res := h.run("notes", "list")
	require.Error(t, res.err)
	assert.Equal(t, "list notes: database offline", res.err.Error())
}

func TestNotesCreate(t *testing.T) {
	fake := &sessiontest.FakeAPI{User: memberUser}
	h := newHarness(t, fake)

	res := h.run("notes", "create", "--title", "  Plan  ", "--content", " ship it ")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Note created.")
	require.Len(t, fake.Created, 1)
	assert.Equal(t, "Plan", fake.Created[0].Title)
	assert.Equal(t, "ship it", fake.Created[0].Content)
}

func TestNotesCreateIsNotBlockedLocally(t *testing.T) {
	fake := &sessiontest.FakeAPI{User: memberUser, Notes: threeNotes()}
	h := newHarness(t, fake)

	res := h.run("notes", "create", "--title", "Fourth")
	require.NoError(t, res.err)
	assert.Equal(t, 1, fake.CallCount("create"))
}

func TestNotesCreatePlanLimit(t *testing.T) {
	limitErr := &notesapi.Error{StatusCode: 403, Message: "Free plan limit reached. Upgrade to Pro to add more notes."}
	tests := []struct {
		name string
		user notesapi.User
		want string
	}{
		{name: "member", user: memberUser, want: "ask an admin to upgrade to Pro"},
		{name: "admin", user: adminUser, want: "run notesctl upgrade"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, &sessiontest.FakeAPI{User: tc.user, CreateErr: limitErr})

			res := h.run("notes", "create", "--title", "Fourth")
			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), tc.want)
			assert.Contains(t, res.errOut, "Upgrade to Pro to add more notes.")
		})
	}
}

func TestNotesCreateUnauthorizedRechecksSession(t *testing.T) {
	fake := &sessiontest.FakeAPI{User: memberUser, CreateErr: &notesapi.Error{StatusCode: 401}}
	h := newHarness(t, fake)

	res := h.run("notes", "create", "--title", "Fourth")
	require.ErrorIs(t, res.err, errNotLoggedIn)
	assert.Equal(t, 2, fake.CallCount("check"))
}

func TestNotesDelete(t *testing.T) {
	fake := &sessiontest.FakeAPI{User: memberUser, Notes: threeNotes()}
	h := newHarness(t, fake)

	res := h.run("notes", "delete", "n-2")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Note deleted.")
	assert.Equal(t, []string{"n-2"}, fake.Deleted)
}

func TestNotesDeleteRequiresID(t *testing.T) {
	fake := &sessiontest.FakeAPI{User: memberUser}
	h := newHarness(t, fake)

	require.Error(t, h.run("notes", "delete").err)
	require.Error(t, h.run("notes", "delete", " ").err)
	assert.Zero(t, fake.CallCount("delete"))
}

func TestNotesDeleteRelaysBackendMessage(t *testing.T) {
	fake := &sessiontest.FakeAPI{User: memberUser, DeleteErr: &notesapi.Error{StatusCode: 404, Message: "Note not found"}}
	h := newHarness(t, fake)

	res := h.run("notes", "delete", "n-9")
	require.Error(t, res.err)
	assert.Equal(t, "delete note: Note not found", res.err.Error())
}

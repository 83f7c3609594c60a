package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	_ "modernc.org/sqlite"
)

var memberUser = notesapi.User{
	Email:  "user@acme.test",
	Role:   notesapi.RoleMember,
	UserID: "u-2",
	Tenant: notesapi.Tenant{ID: "t-1", Slug: "acme", Name: "Acme", Plan: notesapi.PlanFree},
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "web.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store, path
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	_, path := openTestStore(t)

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	assertTableExists(t, sqlDB, "web_session_users")
	assertTableExists(t, sqlDB, "web_session_cookies")
	assertTableExists(t, sqlDB, "schema_migrations")
}

func TestReopenSkipsAppliedMigrations(t *testing.T) {
	store, path := openTestStore(t)
	if err := store.SaveUser(context.Background(), "sess-1", memberUser); err != nil {
		t.Fatalf("save user: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		_ = reopened.Close()
	}()
	if _, ok, err := reopened.LoadUser(context.Background(), "sess-1"); err != nil || !ok {
		t.Fatalf("load after reopen: ok=%v err=%v", ok, err)
	}
}

func TestUserMirrorRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	if _, found, err := store.LoadUser(ctx, "sess-1"); err != nil || found {
		t.Fatalf("load missing user: found=%v err=%v", found, err)
	}
	if err := store.SaveUser(ctx, "sess-1", memberUser); err != nil {
		t.Fatalf("save user: %v", err)
	}
	upgraded := memberUser
	upgraded.Tenant.Plan = notesapi.PlanPro
	if err := store.SaveUser(ctx, "sess-1", upgraded); err != nil {
		t.Fatalf("overwrite user: %v", err)
	}

	user, found, err := store.LoadUser(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !found {
		t.Fatal("expected session user")
	}
	if user != upgraded {
		t.Fatalf("user = %+v, want %+v", user, upgraded)
	}

	if err := store.DeleteUser(ctx, "sess-1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, found, _ := store.LoadUser(ctx, "sess-1"); found {
		t.Fatal("expected user to be deleted")
	}
}

func TestCookiesReplaceOnSave(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveCookies(ctx, "sess-1", []notesapi.Cookie{
		{Name: "connect.sid", Value: "old"},
		{Name: "tracker", Value: "x"},
	}); err != nil {
		t.Fatalf("save cookies: %v", err)
	}
	if err := store.SaveCookies(ctx, "sess-1", []notesapi.Cookie{
		{Name: "connect.sid", Value: "new"},
		{Name: " ", Value: "ignored"},
	}); err != nil {
		t.Fatalf("replace cookies: %v", err)
	}

	cookies, err := store.LoadCookies(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load cookies: %v", err)
	}
	if len(cookies) != 1 || cookies[0] != (notesapi.Cookie{Name: "connect.sid", Value: "new"}) {
		t.Fatalf("cookies = %#v", cookies)
	}

	other, err := store.LoadCookies(ctx, "sess-2")
	if err != nil {
		t.Fatalf("load other cookies: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("cookies leaked across sessions: %#v", other)
	}

	if err := store.DeleteCookies(ctx, "sess-1"); err != nil {
		t.Fatalf("delete cookies: %v", err)
	}
	if cookies, _ := store.LoadCookies(ctx, "sess-1"); len(cookies) != 0 {
		t.Fatalf("cookies after delete = %#v", cookies)
	}
}

func TestPruneSessions(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return old }
	if err := store.SaveUser(ctx, "stale", memberUser); err != nil {
		t.Fatalf("save stale user: %v", err)
	}
	if err := store.SaveCookies(ctx, "stale", []notesapi.Cookie{{Name: "connect.sid", Value: "a"}}); err != nil {
		t.Fatalf("save stale cookies: %v", err)
	}
	store.now = func() time.Time { return old.Add(48 * time.Hour) }
	if err := store.SaveUser(ctx, "fresh", memberUser); err != nil {
		t.Fatalf("save fresh user: %v", err)
	}

	removed, err := store.PruneSessions(ctx, old.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, found, _ := store.LoadUser(ctx, "stale"); found {
		t.Fatal("stale user survived prune")
	}
	if cookies, _ := store.LoadCookies(ctx, "stale"); len(cookies) != 0 {
		t.Fatal("stale cookies survived prune")
	}
	if _, found, _ := store.LoadUser(ctx, "fresh"); !found {
		t.Fatal("fresh user was pruned")
	}
}

func TestRequiresSessionID(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	if _, _, err := store.LoadUser(ctx, " "); err == nil {
		t.Fatal("expected load error")
	}
	if err := store.SaveUser(ctx, "", memberUser); err == nil {
		t.Fatal("expected save error")
	}
	if err := store.SaveCookies(ctx, "", nil); err == nil {
		t.Fatal("expected cookie save error")
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
	if _, _, err := store.LoadUser(context.Background(), "sess-1"); err == nil {
		t.Fatal("expected not configured error")
	}
}

func assertTableExists(t *testing.T, sqlDB *sql.DB, table string) {
	t.Helper()
	var name string
	err := sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
	if err != nil {
		t.Fatalf("table %s missing: %v", table, err)
	}
}

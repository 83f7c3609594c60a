package modules

import (
	"testing"

	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
)

func TestDefaultModules(t *testing.T) {
	t.Parallel()

	public := DefaultPublicModules(Config{})
	protected := DefaultProtectedModules(Config{})
	if len(public) != 2 {
		t.Fatalf("public module count = %d, want %d", len(public), 2)
	}
	if len(protected) != 1 {
		t.Fatalf("protected module count = %d, want %d", len(protected), 1)
	}

	if got := public[0].ID(); got != "shell" {
		t.Fatalf("default public module[0] id = %q, want %q", got, "shell")
	}
	if got := public[1].ID(); got != "login" {
		t.Fatalf("default public module[1] id = %q, want %q", got, "login")
	}
	if got := protected[0].ID(); got != "notes" {
		t.Fatalf("default protected module[0] id = %q, want %q", got, "notes")
	}
}

func TestModulesHaveUniquePrefixes(t *testing.T) {
	t.Parallel()

	all := append(DefaultPublicModules(Config{}), DefaultProtectedModules(Config{})...)
	seen := map[string]struct{}{}
	for _, m := range all {
		mount, err := m.Mount(module.Dependencies{})
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		if mount.Prefix == "" {
			t.Fatalf("module %q prefix is empty", m.ID())
		}
		if mount.Handler == nil {
			t.Fatalf("module %q handler is nil", m.ID())
		}
		if _, ok := seen[mount.Prefix]; ok {
			t.Fatalf("duplicate mount prefix %q", mount.Prefix)
		}
		seen[mount.Prefix] = struct{}{}
	}
}

package modules

import (
	"github.com/louisbranch/tenantnotes/internal/services/web/modules/login"
	"github.com/louisbranch/tenantnotes/internal/services/web/modules/notes"
	"github.com/louisbranch/tenantnotes/internal/services/web/modules/shell"
)

// DefaultPublicModules returns modules reachable without a confirmed session.
func DefaultPublicModules(cfg Config) []Module {
	return []Module{
		shell.New(),
		login.New(cfg.ShowTestAccounts),
	}
}

// DefaultProtectedModules returns authenticated web modules.
func DefaultProtectedModules(cfg Config) []Module {
	return []Module{
		notes.NewWithLogger(cfg.Logger),
	}
}

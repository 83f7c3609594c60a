// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"
	"time"

	"github.com/louisbranch/tenantnotes/internal/services/web/platform/flash"
	"github.com/louisbranch/tenantnotes/internal/session"
)

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// ResolveSession returns the session provider bound to a request.
type ResolveSession func(*http.Request) (*session.Provider, bool)

// Dependencies carries the request-scoped resolvers shared by modules.
type Dependencies struct {
	ResolveLanguage ResolveLanguage
	ResolveSession  ResolveSession
	// ConfirmWait bounds how long a page waits for the session check before
	// rendering the loading screen.
	ConfirmWait time.Duration
	// Flash stores one-time notices across redirects.
	Flash flash.Writer
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

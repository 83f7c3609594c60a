// Package modulehandler provides a composable base for web module handlers.
//
// Modules share session resolution, localization, page rendering, flash
// notices and error handling. This package extracts that scaffold so modules
// embed it rather than duplicating it.
package modulehandler

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/tenantnotes/internal/platform/timeouts"
	webi18n "github.com/louisbranch/tenantnotes/internal/services/web/i18n"
	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	flashnotice "github.com/louisbranch/tenantnotes/internal/services/web/platform/flash"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/pagerender"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/weberror"
	"github.com/louisbranch/tenantnotes/internal/session"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Base carries the shared request-scoped dependencies used by module handlers.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// Dependencies returns the module dependencies the base was built with.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// Session returns the session provider bound to the request.
func (b Base) Session(r *http.Request) (*session.Provider, bool) {
	if r == nil {
		return nil, false
	}
	if b.deps.ResolveSession != nil {
		if provider, ok := b.deps.ResolveSession(r); ok && provider != nil {
			return provider, true
		}
	}
	return session.FromContext(r.Context())
}

// AwaitSession waits up to the configured confirm window for the session
// check. The bool reports whether the state is resolved. A request without a
// session is resolved and unauthenticated.
func (b Base) AwaitSession(r *http.Request) (*session.Provider, session.State, bool) {
	provider, ok := b.Session(r)
	if !ok {
		return nil, session.State{Phase: session.PhaseRejected}, true
	}
	wait := b.deps.ConfirmWait
	if wait <= 0 {
		wait = timeouts.ConfirmWait
	}
	ctx, cancel := context.WithTimeout(r.Context(), wait)
	defer cancel()
	state, resolved := provider.Wait(ctx)
	return provider, state, resolved
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, language.Tag) {
	return webi18n.Resolve(w, r, b.deps.ResolveLanguage)
}

// WritePage renders a page (HTMX-aware) with the given title and body.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, body templ.Component) {
	if err := pagerender.WritePage(w, r, b.deps, pagerender.Page{
		Title:      title,
		StatusCode: statusCode,
		Body:       body,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteLoading renders the session loading page.
func (b Base) WriteLoading(w http.ResponseWriter, r *http.Request) {
	if err := pagerender.WriteLoading(w, r, b.deps); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.deps)
}

// WriteNotFound renders a 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}

// WriteNotice stores a flash notice for the next full-page render.
func (b Base) WriteNotice(w http.ResponseWriter, r *http.Request, notice flashnotice.Notice) {
	b.deps.Flash.Write(w, r, notice)
}

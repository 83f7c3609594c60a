package app

import (
	"net/http"

	"github.com/louisbranch/tenantnotes/internal/services/web/i18n"
	flashnotice "github.com/louisbranch/tenantnotes/internal/services/web/platform/flash"
)

// BuildRootHandler composes the module groups behind the session binding.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	deps := cfg.Dependencies
	if deps.ResolveLanguage == nil {
		deps.ResolveLanguage = i18n.ResolveLanguage
	}
	if deps.ResolveSession == nil {
		deps.ResolveSession = resolveSession
	}
	if deps.Flash == (flashnotice.Writer{}) {
		deps.Flash = flashnotice.Writer{Policy: cfg.SchemePolicy}
	}
	composed, err := Compose(ComposeInput{
		Dependencies:        deps,
		PublicModules:       cfg.PublicModules,
		ProtectedModules:    cfg.ProtectedModules,
		RequestSchemePolicy: cfg.SchemePolicy,
	})
	if err != nil {
		return nil, err
	}
	return WithSessions(cfg.Cookies, cfg.Sessions, cfg.Logger)(composed), nil
}

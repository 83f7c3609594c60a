package shell

import (
	"context"

	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
	"github.com/louisbranch/tenantnotes/internal/session"
)

type service struct{}

func newService() service {
	return service{}
}

// landingPath picks the screen for a resolved session.
func (service) landingPath(state session.State) string {
	if state.Authenticated() {
		return routepath.Notes
	}
	return routepath.Login
}

// logout clears the session. Local state is cleared even when the backend
// call fails.
func (service) logout(ctx context.Context, provider *session.Provider) {
	if provider == nil {
		return
	}
	provider.Clear(ctx)
}

// Package login serves the credential form and establishes sessions.
package login

import (
	"net/http"

	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
)

// Module provides login routes.
type Module struct {
	showTestAccounts bool
}

// New returns a login module. showTestAccounts renders the demo credential
// panel under the form.
func New(showTestAccounts bool) Module {
	return Module{showTestAccounts: showTestAccounts}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "login" }

// Mount wires login route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.showTestAccounts)
	h := newHandlers(svc, deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Login, Handler: mux}, nil
}

// Package notes serves the tenant notes screen and its mutations.
package notes

import (
	"log"
	"net/http"

	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
)

// Module provides authenticated notes routes.
type Module struct {
	logger *log.Logger
}

// New returns a notes module.
func New() Module {
	return Module{}
}

// NewWithLogger returns a notes module logging absorbed failures to logger.
func NewWithLogger(logger *log.Logger) Module {
	return Module{logger: logger}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "notes" }

// Mount wires notes route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	logger := m.logger
	if logger == nil {
		logger = log.Default()
	}
	mux := http.NewServeMux()
	svc := newService(logger)
	h := newHandlers(svc, deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Notes, Handler: mux}, nil
}

package app

import (
	"log"

	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/sessioncookie"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	Dependencies     module.Dependencies
	PublicModules    []module.Module
	ProtectedModules []module.Module
	SchemePolicy     requestmeta.SchemePolicy

	// Cookies and Sessions bind requests to session providers. Leaving
	// either nil expects providers to be resolved by Dependencies.
	Cookies  *sessioncookie.Codec
	Sessions SessionSource
	Logger   *log.Logger
}

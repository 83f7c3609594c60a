// Package modules defines web module registry helpers.
package modules

import (
	"log"

	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Config carries the composition-time settings modules are built with.
type Config struct {
	// ShowTestAccounts lists the demo credentials on the login page.
	ShowTestAccounts bool
	Logger           *log.Logger
}

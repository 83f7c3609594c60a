package shell

import (
	"net/http"

	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/httpx"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	_, state, resolved := h.AwaitSession(r)
	if !resolved {
		h.WriteLoading(w, r)
		return
	}
	httpx.WriteRedirect(w, r, h.service.landingPath(state))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	provider, _ := h.Session(r)
	h.service.logout(r.Context(), provider)
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

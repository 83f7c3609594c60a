package login

import (
	"net/http"

	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleSubmit)
	mux.HandleFunc(routepath.Login+"/", h.handleNotFound)
}

package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	webi18n "github.com/louisbranch/tenantnotes/internal/services/web/i18n"
	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	apperrors "github.com/louisbranch/tenantnotes/internal/services/web/platform/errors"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/httpx"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/weberror"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/tenantnotes/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	_, state, resolved := h.AwaitSession(r)
	if !resolved {
		h.WriteLoading(w, r)
		return
	}
	if state.Authenticated() {
		httpx.WriteRedirect(w, r, routepath.Notes)
		return
	}
	h.writeForm(w, r, http.StatusOK, "", "")
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid login form"))
		return
	}
	creds := credentials{
		email:    r.FormValue("email"),
		password: r.FormValue("password"),
	}
	provider, _ := h.Session(r)
	if _, err := h.service.login(r.Context(), provider, creds); err != nil {
		h.writeFailure(w, r, creds.email, err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Notes)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

// writeFailure keeps the form intact. HTMX submits swap only the error
// region; plain submits re-render the form with the email retained.
func (h handlers) writeFailure(w http.ResponseWriter, r *http.Request, email string, err error) {
	loc, _ := h.PageLocalizer(w, r)
	message := failureMessage(loc, err)
	if httpx.IsHTMXRequest(r) {
		h.WritePage(w, r, "", http.StatusOK, webtemplates.LoginError(message))
		return
	}
	h.writeForm(w, r, failureStatus(err), strings.TrimSpace(email), message)
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, statusCode int, email string, message string) {
	loc, _ := h.PageLocalizer(w, r)
	loginCopy := webi18n.Login(loc)
	h.WritePage(w, r, loginCopy.Title, statusCode, webtemplates.Login(webtemplates.LoginView{
		Copy:   loginCopy,
		Action: routepath.Login,
		Email:  email,
		Error:  message,
		Accounts: h.service.accounts(func(role notesapi.Role) string {
			return webi18n.RoleLabel(loc, role)
		}),
	}))
}

func failureMessage(loc webi18n.Localizer, err error) string {
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		return weberror.PublicMessage(loc, err)
	}
	return notesapi.Message(err, webi18n.T(loc, "login.error.failed"))
}

func failureStatus(err error) int {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		return http.StatusBadGateway
	}
	if status < http.StatusBadRequest {
		return http.StatusUnauthorized
	}
	return status
}

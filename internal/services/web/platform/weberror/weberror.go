// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	webi18n "github.com/louisbranch/tenantnotes/internal/services/web/i18n"
	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	apperrors "github.com/louisbranch/tenantnotes/internal/services/web/platform/errors"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/pagerender"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/tenantnotes/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized error page for full-page and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	loc, _ := webi18n.Resolve(w, r, deps.ResolveLanguage)
	view := errorView(statusCode, webi18n.Shell(loc))
	err := pagerender.WritePage(w, r, deps, pagerender.Page{
		Title:      view.Title,
		StatusCode: statusCode,
		Body:       webtemplates.ErrorState(view),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := webi18n.Resolve(w, r, deps.ResolveLanguage)
	http.Error(w, PublicMessage(loc, err), statusCode)
}

func errorView(statusCode int, shell webi18n.ShellCopy) webtemplates.ErrorView {
	view := webtemplates.ErrorView{
		Status:    statusCode,
		Title:     shell.ErrorTitle,
		Message:   http.StatusText(statusCode),
		BackLabel: shell.BackToNotes,
		BackHref:  routepath.Notes,
	}
	switch statusCode {
	case http.StatusNotFound:
		view.Title = shell.NotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		view.Message = shell.Unavailable
	}
	return view
}

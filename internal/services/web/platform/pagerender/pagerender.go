// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/tenantnotes/internal/services/web/i18n"
	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	flashnotice "github.com/louisbranch/tenantnotes/internal/services/web/platform/flash"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/httpx"
	webtemplates "github.com/louisbranch/tenantnotes/internal/services/web/templates"
)

// loadingRefreshSeconds is how often the loading page polls for a resolved session.
const loadingRefreshSeconds = 1

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
	// AutoRefresh reloads a full page after the given seconds when positive.
	AutoRefresh int
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage writes a page. HTMX requests receive the body fragment only;
// full-page requests get the document layout and consume any flash notice.
func WritePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	loc, tag := webi18n.Resolve(w, r, deps.ResolveLanguage)
	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
		return httpx.WriteHTML(w, statusCode, buf.String())
	}

	layout := webtemplates.Layout(webtemplates.LayoutView{
		Lang:        tag.String(),
		Title:       strings.TrimSpace(page.Title),
		AppName:     webi18n.Shell(loc).AppName,
		Toast:       resolveFlashToast(w, r, deps.Flash, loc),
		AutoRefresh: page.AutoRefresh,
	})
	if err := layout.Render(templ.WithChildren(ctx, body), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusCode, buf.String())
}

// WriteLoading writes the blocking spinner page shown while the session check
// is in flight. The page refreshes itself until the check resolves.
func WriteLoading(w http.ResponseWriter, r *http.Request, deps module.Dependencies) error {
	loc, _ := webi18n.Resolve(w, r, deps.ResolveLanguage)
	shell := webi18n.Shell(loc)
	return WritePage(w, r, deps, Page{
		Title:       shell.Loading,
		StatusCode:  http.StatusOK,
		Body:        webtemplates.Loading(webtemplates.LoadingView{Label: shell.Loading, Message: shell.Checking}),
		AutoRefresh: loadingRefreshSeconds,
	})
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, writer flashnotice.Writer, loc webi18n.Localizer) *webtemplates.Toast {
	notice, ok := writer.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := notice.Message
	if message == "" {
		message = webi18n.T(loc, notice.Key)
	}
	if strings.TrimSpace(message) == "" {
		return nil
	}
	return &webtemplates.Toast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}

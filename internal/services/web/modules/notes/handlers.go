package notes

import (
	"net/http"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	apperrors "github.com/louisbranch/tenantnotes/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/tenantnotes/internal/services/web/platform/flash"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/httpx"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
	"github.com/louisbranch/tenantnotes/internal/session"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

// sessionUser returns the session user or writes the response for a request
// that cannot reach the notes screen.
func (h handlers) sessionUser(w http.ResponseWriter, r *http.Request) (*session.Provider, notesapi.User, bool) {
	provider, state, resolved := h.AwaitSession(r)
	if !resolved {
		if r.Method == http.MethodGet {
			h.WriteLoading(w, r)
		} else {
			httpx.WriteRedirect(w, r, routepath.Notes)
		}
		return nil, notesapi.User{}, false
	}
	if state.Authenticated() {
		return provider, *state.User, true
	}
	httpx.WriteRedirect(w, r, routepath.Login)
	return nil, notesapi.User{}, false
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	provider, user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}
	notes, err := h.service.loadNotes(r.Context(), provider, user)
	if err != nil {
		h.writeExpired(w, r)
		return
	}
	loc, tag := h.PageLocalizer(w, r)
	inviteOpen := r.URL.Query().Get(routepath.InviteParam) == routepath.InviteOpen
	view := buildView(loc, tag, user, notes, h.service.screen(provider, user), inviteOpen)
	h.WritePage(w, r, view.Copy.Title, http.StatusOK, notesPage(view))
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	provider, user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	err := h.service.createNote(r.Context(), provider, user, r.FormValue("title"), r.FormValue("content"))
	if err != nil {
		h.writeFailure(w, r, provider, err, "notes.error.create", routepath.Notes)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Notes)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	provider, _, ok := h.sessionUser(w, r)
	if !ok {
		return
	}
	if err := h.service.deleteNote(r.Context(), provider, r.PathValue("noteID")); err != nil {
		h.writeFailure(w, r, provider, err, "notes.error.delete", routepath.Notes)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Notes)
}

func (h handlers) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	provider, user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}
	ran, err := h.service.upgrade(r.Context(), provider, user)
	if err != nil {
		if notesapi.IsUnauthorized(err) {
			provider.Refresh(r.Context())
			httpx.WriteRedirect(w, r, routepath.Login)
			return
		}
		httpx.WriteRedirect(w, r, routepath.Notes)
		return
	}
	if ran {
		h.WriteNotice(w, r, flashnotice.NoticeSuccess("notes.notice.upgraded"))
	}
	httpx.WriteRedirect(w, r, routepath.Notes)
}

func (h handlers) handleInvite(w http.ResponseWriter, r *http.Request) {
	provider, user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	role := notesapi.ParseRole(r.FormValue("role"))
	sent, err := h.service.invite(r.Context(), provider, user, r.FormValue("email"), role)
	if err != nil {
		h.writeFailure(w, r, provider, err, "notes.error.invite", routepath.NotesWithInvite())
		return
	}
	if !sent {
		httpx.WriteRedirect(w, r, routepath.NotesWithInvite())
		return
	}
	h.WriteNotice(w, r, flashnotice.NoticeSuccess("notes.notice.invited"))
	httpx.WriteRedirect(w, r, routepath.Notes)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid notes form"))
		return false
	}
	return true
}

// writeFailure relays a failed mutation as an error toast and returns to
// target. A rejected session re-checks and goes to login instead.
func (h handlers) writeFailure(w http.ResponseWriter, r *http.Request, provider *session.Provider, err error, key string, target string) {
	if notesapi.IsUnauthorized(err) {
		provider.Refresh(r.Context())
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}
	h.WriteNotice(w, r, flashnotice.Notice{
		Kind:    flashnotice.KindError,
		Key:     key,
		Message: notesapi.Message(err, ""),
	})
	httpx.WriteRedirect(w, r, target)
}

func (h handlers) writeExpired(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.Login)
}

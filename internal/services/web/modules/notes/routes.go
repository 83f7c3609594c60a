package notes

import (
	"net/http"

	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Notes, h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.Notes, h.handleCreate)
	mux.HandleFunc(http.MethodPost+" "+routepath.NotesUpgrade, h.handleUpgrade)
	mux.HandleFunc(http.MethodPost+" "+routepath.NotesInvite, h.handleInvite)
	mux.HandleFunc(http.MethodPost+" "+routepath.NoteDelete, h.handleDelete)
	mux.HandleFunc(routepath.NotesPrefix, h.handleNotFound)
}

// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Login        = "/login"
	Logout       = "/logout"
	Health       = "/healthz"
	StaticPrefix = "/static/"
	Notes        = "/notes"
	NotesPrefix  = "/notes/"
	NotesUpgrade = "/notes/upgrade"
	NotesInvite  = "/notes/invite"
	NoteDelete   = NotesPrefix + "{noteID}/delete"
	InviteParam  = "invite"
	InviteOpen   = "open"
)

// NoteDeletePath returns the delete action path for a note.
func NoteDeletePath(noteID string) string {
	return NotesPrefix + url.PathEscape(strings.TrimSpace(noteID)) + "/delete"
}

// NotesWithInvite returns the notes path with the invite modal open.
func NotesWithInvite() string {
	return Notes + "?" + InviteParam + "=" + InviteOpen
}

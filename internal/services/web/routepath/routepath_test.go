package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Login != "/login" {
		t.Fatalf("Login = %q", Login)
	}
	if Logout != "/logout" {
		t.Fatalf("Logout = %q", Logout)
	}
	if Health != "/healthz" {
		t.Fatalf("Health = %q", Health)
	}
	if Notes != "/notes" || NotesPrefix != "/notes/" {
		t.Fatalf("Notes = %q, NotesPrefix = %q", Notes, NotesPrefix)
	}
	if NoteDelete != "/notes/{noteID}/delete" {
		t.Fatalf("NoteDelete = %q", NoteDelete)
	}
}

func TestNoteDeletePathEscapesID(t *testing.T) {
	t.Parallel()

	if got := NoteDeletePath(" n-1 "); got != "/notes/n-1/delete" {
		t.Fatalf("NoteDeletePath() = %q", got)
	}
	if got := NoteDeletePath("a/b"); got != "/notes/a%2Fb/delete" {
		t.Fatalf("NoteDeletePath() = %q", got)
	}
}

func TestNotesWithInvite(t *testing.T) {
	t.Parallel()

	if got := NotesWithInvite(); got != "/notes?invite=open" {
		t.Fatalf("NotesWithInvite() = %q", got)
	}
}

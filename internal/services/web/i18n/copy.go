package i18n

import (
	"fmt"
	"strings"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"golang.org/x/text/message"
)

// Localizer provides translated strings for page copy.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		if value := strings.TrimSpace(loc.Sprintf(key, args...)); value != "" {
			return value
		}
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// ShellCopy holds copy shared by the page chrome, loading and error pages.
type ShellCopy struct {
	AppName     string
	Loading     string
	Checking    string
	ErrorTitle  string
	NotFound    string
	Unavailable string
	BackToNotes string
}

// Shell returns localized shell copy.
func Shell(loc Localizer) ShellCopy {
	return ShellCopy{
		AppName:     T(loc, "app.name"),
		Loading:     T(loc, "loading.label"),
		Checking:    T(loc, "loading.checking"),
		ErrorTitle:  T(loc, "error.title"),
		NotFound:    T(loc, "error.not_found"),
		Unavailable: T(loc, "error.unavailable"),
		BackToNotes: T(loc, "error.back"),
	}
}

// LoginCopy holds copy for the login page.
type LoginCopy struct {
	Title               string
	Email               string
	EmailPlaceholder    string
	Password            string
	PasswordPlaceholder string
	Submit              string
	Submitting          string
	TestAccounts        string
	Failed              string
	Required            string
}

// Login returns localized login copy.
func Login(loc Localizer) LoginCopy {
	return LoginCopy{
		Title:               T(loc, "login.title"),
		Email:               T(loc, "login.email"),
		EmailPlaceholder:    T(loc, "login.email_placeholder"),
		Password:            T(loc, "login.password"),
		PasswordPlaceholder: T(loc, "login.password_placeholder"),
		Submit:              T(loc, "login.submit"),
		Submitting:          T(loc, "login.submitting"),
		TestAccounts:        T(loc, "login.test_accounts"),
		Failed:              T(loc, "login.error.failed"),
		Required:            T(loc, "login.error.required"),
	}
}

// NotesCopy holds static copy for the notes page.
type NotesCopy struct {
	Title               string
	TenantFallback      string
	Upgrade             string
	Upgrading           string
	ContactAdmin        string
	AdminActions        string
	InviteUser          string
	Inviting            string
	InviteEmail         string
	InviteEmailHolder   string
	InviteRole          string
	InviteCancel        string
	CreateHeading       string
	CreateTitleHolder   string
	CreateContentHolder string
	CreateSubmit        string
	Empty               string
	EmptyCanCreate      string
	EmptyUpgrade        string
	Delete              string
	Logout              string
	RoleAdmin           string
	RoleMember          string
}

// Notes returns localized notes copy.
func Notes(loc Localizer) NotesCopy {
	return NotesCopy{
		Title:               T(loc, "notes.title"),
		TenantFallback:      T(loc, "notes.tenant_fallback"),
		Upgrade:             T(loc, "notes.upgrade"),
		Upgrading:           T(loc, "notes.upgrading"),
		ContactAdmin:        T(loc, "notes.contact_admin"),
		AdminActions:        T(loc, "notes.admin_actions"),
		InviteUser:          T(loc, "notes.invite_user"),
		Inviting:            T(loc, "notes.inviting"),
		InviteEmail:         T(loc, "notes.invite.email"),
		InviteEmailHolder:   T(loc, "notes.invite.email_placeholder"),
		InviteRole:          T(loc, "notes.invite.role"),
		InviteCancel:        T(loc, "notes.invite.cancel"),
		CreateHeading:       T(loc, "notes.create.heading"),
		CreateTitleHolder:   T(loc, "notes.create.title_placeholder"),
		CreateContentHolder: T(loc, "notes.create.content_placeholder"),
		CreateSubmit:        T(loc, "notes.create.submit"),
		Empty:               T(loc, "notes.empty"),
		EmptyCanCreate:      T(loc, "notes.empty.can_create"),
		EmptyUpgrade:        T(loc, "notes.empty.upgrade"),
		Delete:              T(loc, "notes.delete"),
		Logout:              T(loc, "notes.logout"),
		RoleAdmin:           T(loc, "role.admin"),
		RoleMember:          T(loc, "role.member"),
	}
}

// RoleLabel returns the display label of a tenant role.
func RoleLabel(loc Localizer, role notesapi.Role) string {
	switch role {
	case notesapi.RoleAdmin:
		return T(loc, "role.admin")
	case notesapi.RoleMember:
		return T(loc, "role.member")
	default:
		return string(role)
	}
}

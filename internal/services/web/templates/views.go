package templates

import webi18n "github.com/louisbranch/tenantnotes/internal/services/web/i18n"

// Toast is a one-time notice rendered by the layout.
type Toast struct {
	Kind    string
	Message string
}

// LayoutView carries document shell state.
type LayoutView struct {
	Lang    string
	Title   string
	AppName string
	Toast   *Toast
	// AutoRefresh reloads the page after the given seconds when positive.
	AutoRefresh int
}

// LoadingView carries the spinner page copy.
type LoadingView struct {
	Label   string
	Message string
}

// TestAccount is one demo credential hint shown on the login page.
type TestAccount struct {
	Email    string
	Password string
	Role     string
}

// LoginView carries the login form state.
type LoginView struct {
	Copy     webi18n.LoginCopy
	Action   string
	Email    string
	Error    string
	Accounts []TestAccount
}

// NoteView is one rendered note card.
type NoteView struct {
	ID           string
	Title        string
	Content      string
	Created      string
	DeleteAction string
}

// NotesView carries the notes screen state.
type NotesView struct {
	Copy webi18n.NotesCopy

	TenantName string
	LoggedInAs string
	PlanBadge  string
	RoleBadge  string
	PlanPro    bool

	Banner       string
	AtFreeLimit  bool
	LimitMessage string
	CanCreate    bool
	IsAdmin      bool
	ShowUpgrade  bool

	InviteOpen  bool
	InviteEmail string
	InviteRole  string

	Notes []NoteView

	CreateAction  string
	UpgradeAction string
	InviteAction  string
	InviteHref    string
	CloseHref     string
	LogoutAction  string
}

// ErrorView carries an error page body.
type ErrorView struct {
	Status    int
	Title     string
	Message   string
	BackLabel string
	BackHref  string
}

package login

import (
	"context"
	"strings"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	apperrors "github.com/louisbranch/tenantnotes/internal/services/web/platform/errors"
	webtemplates "github.com/louisbranch/tenantnotes/internal/services/web/templates"
	"github.com/louisbranch/tenantnotes/internal/session"
)

const testAccountPassword = "password"

// testAccounts are the demo tenants seeded by the backend.
var testAccounts = []struct {
	email string
	role  notesapi.Role
}{
	{email: "admin@acme.test", role: notesapi.RoleAdmin},
	{email: "user@acme.test", role: notesapi.RoleMember},
	{email: "admin@globex.test", role: notesapi.RoleAdmin},
	{email: "user@globex.test", role: notesapi.RoleMember},
}

type service struct {
	showTestAccounts bool
}

func newService(showTestAccounts bool) service {
	return service{showTestAccounts: showTestAccounts}
}

type credentials struct {
	email    string
	password string
}

func (c credentials) validate() error {
	if strings.TrimSpace(c.email) == "" || c.password == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "login.error.required", "email and password are required")
	}
	return nil
}

// login authenticates the session and schedules a reconciling check so every
// session-dependent view reloads against the backend.
func (service) login(ctx context.Context, provider *session.Provider, creds credentials) (notesapi.User, error) {
	if err := creds.validate(); err != nil {
		return notesapi.User{}, err
	}
	if provider == nil {
		return notesapi.User{}, apperrors.E(apperrors.KindUnavailable, "session is not available")
	}
	user, err := provider.Login(ctx, strings.TrimSpace(creds.email), creds.password)
	if err != nil {
		return notesapi.User{}, err
	}
	go provider.Refresh(context.WithoutCancel(ctx))
	return user, nil
}

func (s service) accounts(roleLabel func(notesapi.Role) string) []webtemplates.TestAccount {
	if !s.showTestAccounts {
		return nil
	}
	accounts := make([]webtemplates.TestAccount, 0, len(testAccounts))
	for _, account := range testAccounts {
		accounts = append(accounts, webtemplates.TestAccount{
			Email:    account.email,
			Password: testAccountPassword,
			Role:     roleLabel(account.role),
		})
	}
	return accounts
}

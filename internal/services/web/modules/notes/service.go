package notes

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/louisbranch/tenantnotes/internal/session"
	"golang.org/x/sync/singleflight"
)

// errSessionExpired reports that the backend rejected the session.
var errSessionExpired = errors.New("notes: session expired")

type service struct {
	flight *singleflight.Group
	logger *log.Logger
}

func newService(logger *log.Logger) service {
	return service{
		flight: &singleflight.Group{},
		logger: logger,
	}
}

// atFreeLimit reports whether a free tenant has used its note allowance.
func atFreeLimit(plan notesapi.Plan, count int) bool {
	return plan == notesapi.PlanFree && count >= notesapi.FreePlanNoteLimit
}

// canCreate reports whether the create form is offered. It is advisory; the
// backend decides.
func canCreate(plan notesapi.Plan, count int) bool {
	return !atFreeLimit(plan, count) || plan == notesapi.PlanPro
}

// loadNotes fetches the tenant notes. A 401 re-checks the session and returns
// errSessionExpired; other failures keep the last list shown.
func (s service) loadNotes(ctx context.Context, provider *session.Provider, user notesapi.User) ([]notesapi.Note, error) {
	notes, err := provider.API().ListNotes(ctx)
	if err != nil {
		if notesapi.IsUnauthorized(err) {
			provider.Refresh(ctx)
			return nil, errSessionExpired
		}
		s.logger.Printf("notes list failed session=%s err=%v", provider.Key(), err)
		return screenOf(provider).get(user.UserID).notes, nil
	}
	screenOf(provider).update(user.UserID, func(sc *screen) {
		sc.notes = notes
	})
	return notes, nil
}

func (s service) screen(provider *session.Provider, user notesapi.User) screen {
	return screenOf(provider).get(user.UserID)
}

// createNote creates a note. A plan-limit rejection also raises the banner.
func (s service) createNote(ctx context.Context, provider *session.Provider, user notesapi.User, title, content string) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	err := s.do(provider, "create", func() error {
		return provider.API().CreateNote(ctx, title, content)
	}, title, content)
	if err != nil {
		if message := notesapi.Message(err, ""); notesapi.IsPlanLimit(message) {
			screenOf(provider).update(user.UserID, func(sc *screen) {
				sc.banner = banner{Message: message}
			})
		}
		return err
	}
	return nil
}

func (s service) deleteNote(ctx context.Context, provider *session.Provider, noteID string) error {
	noteID = strings.TrimSpace(noteID)
	return s.do(provider, "delete", func() error {
		return provider.API().DeleteNote(ctx, noteID)
	}, noteID)
}

// upgrade upgrades the user's tenant and re-checks the session so the new
// plan shows. It is a no-op without a tenant slug and reports whether it ran.
// Failures become the banner.
func (s service) upgrade(ctx context.Context, provider *session.Provider, user notesapi.User) (bool, error) {
	slug := strings.TrimSpace(user.Tenant.Slug)
	if slug == "" {
		return false, nil
	}
	screenOf(provider).update(user.UserID, func(sc *screen) {
		sc.banner = banner{}
	})
	err := s.do(provider, "upgrade", func() error {
		return provider.API().UpgradeTenant(ctx, slug)
	}, slug)
	if err != nil {
		screenOf(provider).update(user.UserID, func(sc *screen) {
			sc.banner = banner{Message: notesapi.Message(err, ""), Key: "notes.error.upgrade"}
		})
		return true, err
	}
	provider.Refresh(ctx)
	return true, nil
}

// invite invites email with role. An empty email is a no-op; the bool
// reports whether the invitation was sent. A failure keeps the draft.
func (s service) invite(ctx context.Context, provider *session.Provider, user notesapi.User, email string, role notesapi.Role) (bool, error) {
	email = strings.TrimSpace(email)
	if role != notesapi.RoleAdmin {
		role = notesapi.RoleMember
	}
	if email == "" {
		return false, nil
	}
	err := s.do(provider, "invite", func() error {
		return provider.API().Invite(ctx, email, role)
	}, email, string(role))
	screenOf(provider).update(user.UserID, func(sc *screen) {
		if err != nil {
			sc.inviteEmail = email
			sc.inviteRole = role
			return
		}
		sc.inviteEmail = ""
		sc.inviteRole = notesapi.RoleMember
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// do runs fn once per session for concurrent identical actions.
func (s service) do(provider *session.Provider, action string, fn func() error, args ...string) error {
	key := strings.Join(append([]string{provider.Key(), action}, args...), "\x00")
	_, err, _ := s.flight.Do(key, func() (any, error) {
		return nil, fn()
	})
	return err
}

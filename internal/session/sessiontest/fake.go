// Package sessiontest provides an in-memory notes backend for session and
// web tests.
package sessiontest

import (
	"context"
	"sync"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
)

// FakeAPI is a scripted notes backend. Zero values succeed with empty data.
type FakeAPI struct {
	mu sync.Mutex

	User     notesapi.User
	CheckErr error
	// CheckGate, when set, blocks CheckSession until it is closed.
	CheckGate chan struct{}

	LoginUser notesapi.User
	LoginErr  error
	LogoutErr error

	Notes     []notesapi.Note
	ListErr   error
	CreateErr error
	DeleteErr error
	InviteErr error
	// UpgradeErr fails UpgradeTenant; on success the user plan becomes pro.
	UpgradeErr error

	Calls []string
	// Created, Deleted, Invited and Upgraded record mutation arguments.
	Created  []notesapi.Note
	Deleted  []string
	Invited  []Invite
	Upgraded []string
}

// Invite records one invitation.
type Invite struct {
	Email string
	Role  notesapi.Role
}

func (f *FakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// CallCount returns how many times call was made.
func (f *FakeAPI) CallCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, c := range f.Calls {
		if c == call {
			count++
		}
	}
	return count
}

// CheckSession implements session.API.
func (f *FakeAPI) CheckSession(ctx context.Context) (notesapi.User, error) {
	f.record("check")
	f.mu.Lock()
	gate := f.CheckGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return notesapi.User{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CheckErr != nil {
		return notesapi.User{}, f.CheckErr
	}
	return f.User, nil
}

// Login implements session.API.
func (f *FakeAPI) Login(_ context.Context, _ string, _ string) (notesapi.User, error) {
	f.record("login")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoginErr != nil {
		return notesapi.User{}, f.LoginErr
	}
	f.User = f.LoginUser
	f.CheckErr = nil
	return f.LoginUser, nil
}

// Logout implements session.API.
func (f *FakeAPI) Logout(context.Context) error {
	f.record("logout")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LogoutErr
}

// Invite implements session.API.
func (f *FakeAPI) Invite(_ context.Context, email string, role notesapi.Role) error {
	f.record("invite")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InviteErr != nil {
		return f.InviteErr
	}
	f.Invited = append(f.Invited, Invite{Email: email, Role: role})
	return nil
}

// ListNotes implements session.API.
func (f *FakeAPI) ListNotes(context.Context) ([]notesapi.Note, error) {
	f.record("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]notesapi.Note{}, f.Notes...), nil
}

// CreateNote implements session.API.
func (f *FakeAPI) CreateNote(_ context.Context, title, content string) error {
	f.record("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	note := notesapi.Note{Title: title, Content: content}
	f.Created = append(f.Created, note)
	f.Notes = append(f.Notes, note)
	return nil
}

// DeleteNote implements session.API.
func (f *FakeAPI) DeleteNote(_ context.Context, noteID string) error {
	f.record("delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, noteID)
	kept := f.Notes[:0]
	for _, note := range f.Notes {
		if note.ID != noteID {
			kept = append(kept, note)
		}
	}
	f.Notes = kept
	return nil
}

// UpgradeTenant implements session.API.
func (f *FakeAPI) UpgradeTenant(_ context.Context, slug string) error {
	f.record("upgrade")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpgradeErr != nil {
		return f.UpgradeErr
	}
	f.Upgraded = append(f.Upgraded, slug)
	f.User.Tenant.Plan = notesapi.PlanPro
	return nil
}

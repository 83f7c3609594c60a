package storage

import (
	"context"
	"time"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
)

// SessionRecord is the mirrored identity of one browser session.
type SessionRecord struct {
	SessionID string
	User      notesapi.User
	UpdatedAt time.Time
}

// Store is the persistence contract behind the session provider mirror.
type Store interface {
	Close() error
	LoadUser(ctx context.Context, sessionID string) (notesapi.User, bool, error)
	SaveUser(ctx context.Context, sessionID string, user notesapi.User) error
	DeleteUser(ctx context.Context, sessionID string) error
	LoadCookies(ctx context.Context, sessionID string) ([]notesapi.Cookie, error)
	SaveCookies(ctx context.Context, sessionID string, cookies []notesapi.Cookie) error
	DeleteCookies(ctx context.Context, sessionID string) error
	PruneSessions(ctx context.Context, olderThan time.Time) (int64, error)
}

package session

import (
	"context"
	"sync"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
)

// Mirror persists the last known user of each session.
type Mirror interface {
	LoadUser(ctx context.Context, key string) (notesapi.User, bool, error)
	SaveUser(ctx context.Context, key string, user notesapi.User) error
	DeleteUser(ctx context.Context, key string) error
}

// CookieStore persists the backend cookies of each session.
type CookieStore interface {
	LoadCookies(ctx context.Context, key string) ([]notesapi.Cookie, error)
	SaveCookies(ctx context.Context, key string, cookies []notesapi.Cookie) error
	DeleteCookies(ctx context.Context, key string) error
}

// MemoryStore keeps mirrors and cookies in process memory. It is used when
// no durable store is configured.
type MemoryStore struct {
	mu      sync.Mutex
	users   map[string]notesapi.User
	cookies map[string][]notesapi.Cookie
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   map[string]notesapi.User{},
		cookies: map[string][]notesapi.Cookie{},
	}
}

// LoadUser implements Mirror.
func (s *MemoryStore) LoadUser(_ context.Context, key string) (notesapi.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[key]
	return user, ok, nil
}

// SaveUser implements Mirror.
func (s *MemoryStore) SaveUser(_ context.Context, key string, user notesapi.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[key] = user
	return nil
}

// DeleteUser implements Mirror.
func (s *MemoryStore) DeleteUser(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, key)
	return nil
}

// LoadCookies implements CookieStore.
func (s *MemoryStore) LoadCookies(_ context.Context, key string) ([]notesapi.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notesapi.Cookie(nil), s.cookies[key]...), nil
}

// SaveCookies implements CookieStore.
func (s *MemoryStore) SaveCookies(_ context.Context, key string, cookies []notesapi.Cookie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(cookies) == 0 {
		delete(s.cookies, key)
		return nil
	}
	s.cookies[key] = append([]notesapi.Cookie(nil), cookies...)
	return nil
}

// DeleteCookies implements CookieStore.
func (s *MemoryStore) DeleteCookies(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cookies, key)
	return nil
}

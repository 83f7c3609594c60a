package notesctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	"github.com/louisbranch/tenantnotes/internal/session"
)

// FileStore keeps session mirrors and backend cookies in one JSON file so a
// CLI session survives between invocations.
type FileStore struct {
	path string
	mu   sync.Mutex
}

type fileState struct {
	Sessions map[string]fileSession `json:"sessions"`
}

type fileSession struct {
	User    *notesapi.User    `json:"user,omitempty"`
	Cookies []notesapi.Cookie `json:"cookies,omitempty"`
}

// NewFileStore returns a store backed by path. The file is created on first
// write.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("session file path is required")
	}
	return &FileStore{path: filepath.Clean(path)}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// LoadUser implements session.Mirror.
func (s *FileStore) LoadUser(_ context.Context, key string) (notesapi.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.read()
	if err != nil {
		return notesapi.User{}, false, err
	}
	entry, ok := state.Sessions[key]
	if !ok || entry.User == nil {
		return notesapi.User{}, false, nil
	}
	return *entry.User, true, nil
}

// SaveUser implements session.Mirror.
func (s *FileStore) SaveUser(_ context.Context, key string, user notesapi.User) error {
	return s.update(key, func(entry *fileSession) {
		entry.User = &user
	})
}

// DeleteUser implements session.Mirror.
func (s *FileStore) DeleteUser(_ context.Context, key string) error {
	return s.update(key, func(entry *fileSession) {
		entry.User = nil
	})
}

// LoadCookies implements session.CookieStore.
func (s *FileStore) LoadCookies(_ context.Context, key string) ([]notesapi.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.read()
	if err != nil {
		return nil, err
	}
	return append([]notesapi.Cookie(nil), state.Sessions[key].Cookies...), nil
}

// SaveCookies implements session.CookieStore.
func (s *FileStore) SaveCookies(_ context.Context, key string, cookies []notesapi.Cookie) error {
	kept := make([]notesapi.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		if strings.TrimSpace(cookie.Name) != "" {
			kept = append(kept, cookie)
		}
	}
	return s.update(key, func(entry *fileSession) {
		entry.Cookies = kept
	})
}

// DeleteCookies implements session.CookieStore.
func (s *FileStore) DeleteCookies(_ context.Context, key string) error {
	return s.update(key, func(entry *fileSession) {
		entry.Cookies = nil
	})
}

func (s *FileStore) update(key string, fn func(*fileSession)) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("session key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.read()
	if err != nil {
		return err
	}
	entry := state.Sessions[key]
	fn(&entry)
	if entry.User == nil && len(entry.Cookies) == 0 {
		delete(state.Sessions, key)
	} else {
		state.Sessions[key] = entry
	}
	return s.write(state)
}

func (s *FileStore) read() (fileState, error) {
	state := fileState{Sessions: map[string]fileSession{}}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("read session file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return fileState{Sessions: map[string]fileSession{}}, fmt.Errorf("decode session file: %w", err)
	}
	if state.Sessions == nil {
		state.Sessions = map[string]fileSession{}
	}
	return state, nil
}

func (s *FileStore) write(state fileState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

var (
	_ session.Mirror      = (*FileStore)(nil)
	_ session.CookieStore = (*FileStore)(nil)
)

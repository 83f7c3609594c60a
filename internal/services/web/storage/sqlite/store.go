package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/tenantnotes/internal/notesapi"
	sqlitemigrate "github.com/louisbranch/tenantnotes/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/louisbranch/tenantnotes/internal/services/web/storage"
	"github.com/louisbranch/tenantnotes/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for web session mirrors.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a web session SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := store.runMigrations(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadUser returns the mirrored user of a session.
func (s *Store) LoadUser(ctx context.Context, sessionID string) (notesapi.User, bool, error) {
	if s == nil || s.sqlDB == nil {
		return notesapi.User{}, false, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return notesapi.User{}, false, fmt.Errorf("session id is required")
	}

	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT user_json FROM web_session_users WHERE session_id = ?`,
		sessionID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return notesapi.User{}, false, nil
	}
	if err != nil {
		return notesapi.User{}, false, fmt.Errorf("load session user: %w", err)
	}

	var user notesapi.User
	if err := json.Unmarshal(payload, &user); err != nil {
		// A record we cannot read is treated as absent; the next check rewrites it.
		return notesapi.User{}, false, nil
	}
	return user, true, nil
}

// SaveUser upserts the mirrored user of a session.
func (s *Store) SaveUser(ctx context.Context, sessionID string, user notesapi.User) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO web_session_users (session_id, user_json, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		    user_json = excluded.user_json,
		    updated_at = excluded.updated_at`,
		sessionID,
		payload,
		timeToUnixMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("save session user: %w", err)
	}
	return nil
}

// DeleteUser removes the mirrored user of a session.
func (s *Store) DeleteUser(ctx context.Context, sessionID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_session_users WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session user: %w", err)
	}
	return nil
}

// LoadCookies returns the persisted backend cookies of a session, ordered by name.
func (s *Store) LoadCookies(ctx context.Context, sessionID string) ([]notesapi.Cookie, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name, value FROM web_session_cookies WHERE session_id = ? ORDER BY name`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load session cookies: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	cookies := make([]notesapi.Cookie, 0)
	for rows.Next() {
		var cookie notesapi.Cookie
		if err := rows.Scan(&cookie.Name, &cookie.Value); err != nil {
			return nil, fmt.Errorf("scan session cookie: %w", err)
		}
		cookies = append(cookies, cookie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session cookies: %w", err)
	}
	return cookies, nil
}

// SaveCookies replaces the persisted backend cookies of a session.
func (s *Store) SaveCookies(ctx context.Context, sessionID string, cookies []notesapi.Cookie) (err error) {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save cookies: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM web_session_cookies WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear session cookies: %w", err)
	}
	updatedAt := timeToUnixMillis(s.now())
	for _, cookie := range cookies {
		name := strings.TrimSpace(cookie.Name)
		if name == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO web_session_cookies (session_id, name, value, updated_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(session_id, name) DO UPDATE SET
			    value = excluded.value,
			    updated_at = excluded.updated_at`,
			sessionID,
			name,
			cookie.Value,
			updatedAt,
		); err != nil {
			return fmt.Errorf("save session cookie: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit session cookies: %w", err)
	}
	return nil
}

// DeleteCookies removes every persisted backend cookie of a session.
func (s *Store) DeleteCookies(ctx context.Context, sessionID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_session_cookies WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session cookies: %w", err)
	}
	return nil
}

// PruneSessions deletes mirrors and cookies not touched since olderThan and
// returns how many session users were removed.
func (s *Store) PruneSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	cutoff := timeToUnixMillis(olderThan)
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_session_users WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune session users: %w", err)
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_session_cookies WHERE updated_at < ?`, cutoff); err != nil {
		return 0, fmt.Errorf("prune session cookies: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune session users: %w", err)
	}
	return removed, nil
}

// runMigrations applies embedded SQL migrations in filename order.
func (s *Store) runMigrations(ctx context.Context) error {
	return sqlitemigrate.ApplyMigrations(ctx, s.sqlDB, migrations.FS, "")
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

var _ webstorage.Store = (*Store)(nil)

// Package session persists the signed-in user between invocations so
// the app can skip the login screen while the token is still honored
// by the backend.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// ErrNoSession indicates no user is currently signed in.
var ErrNoSession = errors.New("no active session")

// Session is the locally persisted sign-in state.
type Session struct {
	Token   string
	User    domain.User
	SavedAt time.Time
}

// Store persists the session in the local SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store backed by conn.
func NewStore(conn *sql.DB) *Store {
	return &Store{db: conn}
}

// Save replaces the stored session with the given one.
func (s *Store) Save(ctx context.Context, token string, user domain.User) error {
	query := `INSERT OR REPLACE INTO session (id, token, user_id, email, full_name, role, branch_id, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		token,
		user.ID,
		user.Email,
		user.FullName,
		string(user.Role),
		user.BranchID,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Current returns the stored session, or ErrNoSession when signed out.
func (s *Store) Current(ctx context.Context) (*Session, error) {
	query := `SELECT token, user_id, email, full_name, role, branch_id, saved_at
		FROM session WHERE id = 1`
	row := s.db.QueryRowContext(ctx, query)

	var (
		sess    Session
		role    string
		savedAt string
	)
	err := row.Scan(
		&sess.Token,
		&sess.User.ID,
		&sess.User.Email,
		&sess.User.FullName,
		&role,
		&sess.User.BranchID,
		&savedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	sess.User.Role = domain.UserRole(role)
	if t, err := time.Parse(time.RFC3339, savedAt); err == nil {
		sess.SavedAt = t
	}
	return &sess, nil
}

// Clear removes the stored session. Clearing when signed out is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// SetPreference stores a named view preference.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	query := `INSERT OR REPLACE INTO preferences (key, value, updated_at) VALUES (?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving preference %s: %w", key, err)
	}
	return nil
}

// Preference returns a stored preference, or "" when unset.
func (s *Store) Preference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("reading preference %s: %w", key, err)
	}
	return value, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ignis_shield/internal/models"
)

type SessionSQLite struct {
	db     *sql.DB
	sealer *Sealer
}

func NewSessionSQLite(db *sql.DB, sealer *Sealer) *SessionSQLite {
	return &SessionSQLite{db: db, sealer: sealer}
}

// Ensure implementation of SessionRepo interface at compile time.
var _ SessionRepo = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `INSERT INTO sessions (id, token, user_json, created_at) VALUES (?, ?, ?, ?)`
	selectSessionSQL = `SELECT id, token, user_json, created_at FROM sessions WHERE id = ?`
	deleteSessionSQL = `DELETE FROM sessions WHERE id = ?`
)

// Create stores s with its token sealed. A zero CreatedAt is set to now.
func (r *SessionSQLite) Create(ctx context.Context, s models.Session) error {
	sealed, err := r.sealer.Seal(s.Token)
	if err != nil {
		return fmt.Errorf("seal token for session %q: %w", s.ID, err)
	}
	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("marshal user for session %q: %w", s.ID, err)
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if _, err := r.db.ExecContext(ctx, insertSessionSQL, s.ID, sealed, string(userJSON), createdAt.UTC()); err != nil {
		return fmt.Errorf("insert session %q: %w", s.ID, err)
	}
	return nil
}

func (r *SessionSQLite) Get(ctx context.Context, id string) (*models.Session, error) {
	var (
		s        models.Session
		sealed   string
		userJSON string
	)
	err := r.db.QueryRowContext(ctx, selectSessionSQL, id).Scan(&s.ID, &sealed, &userJSON, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session %q: %w", id, err)
	}

	if s.Token, err = r.sealer.Open(sealed); err != nil {
		return nil, fmt.Errorf("open token for session %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(userJSON), &s.User); err != nil {
		return nil, fmt.Errorf("unmarshal user for session %q: %w", id, err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (r *SessionSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, id); err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

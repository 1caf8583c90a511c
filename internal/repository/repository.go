package repository

import (
	"context"
	"database/sql"

	"ignis_shield/internal/models"
)

// SessionRepo persists browser sessions: the backend bearer token and the
// signed-in user.
type SessionRepo interface {
	Create(ctx context.Context, s models.Session) error
	// Get returns (nil, nil) when no session has the given id.
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Sessions SessionRepo
}

func NewRepository(db *sql.DB, sealer *Sealer) *Repository {
	return &Repository{
		Sessions: NewSessionSQLite(db, sealer),
	}
}

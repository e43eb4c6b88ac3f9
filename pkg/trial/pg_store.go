package trial

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allstories/studiokit/pkg/pg"
)

// pgStore persists trials in PostgreSQL. The trials table carries a
// unique constraint on user_id (see migrations), which is what makes
// Create race-safe across concurrent sessions and tabs.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Store backed by the given pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("trial: pgx pool is required")
	}
	return &pgStore{pool: pool}
}

func (s *pgStore) Get(ctx context.Context, userID uuid.UUID) (*Trial, error) {
	const q = `SELECT user_id, starts_at, ends_at, is_active FROM trials WHERE user_id = $1`

	var t Trial
	err := s.pool.QueryRow(ctx, q, userID).Scan(&t.UserID, &t.StartsAt, &t.EndsAt, &t.Active)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTrialNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &t, nil
}

func (s *pgStore) Create(ctx context.Context, t *Trial) error {
	const q = `INSERT INTO trials (user_id, starts_at, ends_at, is_active) VALUES ($1, $2, $3, $4)`

	if _, err := s.pool.Exec(ctx, q, t.UserID, t.StartsAt, t.EndsAt, t.Active); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrTrialExists
		}
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *pgStore) Deactivate(ctx context.Context, userID uuid.UUID) error {
	const q = `UPDATE trials SET is_active = FALSE WHERE user_id = $1`

	tag, err := s.pool.Exec(ctx, q, userID)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTrialNotFound
	}
	return nil
}

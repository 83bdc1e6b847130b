package cartstore

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a Store backed by the cart_blobs table.
// A single row per (user_id, key); writes are whole-blob upserts,
// last write wins.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Get(ctx context.Context, userID int32, key string) ([]byte, error) {
	var blob []byte
	query := `SELECT blob FROM cart_blobs WHERE user_id = $1 AND key = $2`
	err := s.db.QueryRowContext(ctx, query, userID, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (s *postgresStore) Set(ctx context.Context, userID int32, key string, blob []byte) error {
	query := `INSERT INTO cart_blobs (user_id, key, blob, updated_on) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, key) DO UPDATE SET blob = EXCLUDED.blob, updated_on = EXCLUDED.updated_on`
	_, err := s.db.ExecContext(ctx, query, userID, key, blob, time.Now().UTC())
	return err
}

func (s *postgresStore) Clear(ctx context.Context, userID int32, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_blobs WHERE user_id = $1 AND key = $2`, userID, key)
	return err
}

// PurgeOlderThan deletes blobs untouched since the cutoff and returns the
// number removed. Used by the stale-cart cron job.
func PurgeOlderThan(ctx context.Context, db *sql.DB, cutoff time.Time) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM cart_blobs WHERE updated_on < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const sessionSchema = `
	CREATE TABLE IF NOT EXISTS session_values (
		session_id TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      BYTEA       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (session_id, key)
	);
	CREATE INDEX IF NOT EXISTS idx_session_values_updated_at ON session_values (updated_at);
`

type SessionStore interface {
	session.Store
	session.Purger
	EnsureSchema(ctx context.Context) error
}

type sessionStoreImpl struct {
	db *database.DB
}

// NewSessionStore creates a session store backed by the session_values table.
func NewSessionStore(db *database.DB) SessionStore {
	return &sessionStoreImpl{db: db}
}

// EnsureSchema creates the session table when it does not exist yet.
func (s *sessionStoreImpl) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, sessionSchema); err != nil {
		return fmt.Errorf("failed to create session schema: %w", err)
	}
	return nil
}

func (s *sessionStoreImpl) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT value
		FROM session_values
		WHERE session_id = $1 AND key = $2
	`
	var value []byte
	err := q.QueryRow(ctx, query, sessionID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get session value %q: %w", key, err)
	}
	return value, nil
}

func (s *sessionStoreImpl) Set(ctx context.Context, sessionID, key string, value []byte) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO session_values (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := q.Exec(ctx, query, sessionID, key, value); err != nil {
		return fmt.Errorf("failed to set session value %q: %w", key, err)
	}
	return nil
}

func (s *sessionStoreImpl) SetMany(ctx context.Context, sessionID string, values map[string][]byte) error {
	return WithTransaction(ctx, s.db, func(txCtx context.Context, _ pgx.Tx) error {
		for key, value := range values {
			if err := s.Set(txCtx, sessionID, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sessionStoreImpl) Delete(ctx context.Context, sessionID, key string) error {
	q := GetQuerier(ctx, s.db)

	query := `DELETE FROM session_values WHERE session_id = $1 AND key = $2`
	if _, err := q.Exec(ctx, query, sessionID, key); err != nil {
		return fmt.Errorf("failed to delete session value %q: %w", key, err)
	}
	return nil
}

func (s *sessionStoreImpl) Clear(ctx context.Context, sessionID string) error {
	q := GetQuerier(ctx, s.db)

	query := `DELETE FROM session_values WHERE session_id = $1`
	if _, err := q.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *sessionStoreImpl) Touch(ctx context.Context, sessionID string) error {
	q := GetQuerier(ctx, s.db)

	query := `UPDATE session_values SET updated_at = NOW() WHERE session_id = $1`
	if _, err := q.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// PurgeStale deletes sessions whose newest value is older than olderThan.
func (s *sessionStoreImpl) PurgeStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		DELETE FROM session_values
		WHERE session_id IN (
			SELECT session_id
			FROM session_values
			GROUP BY session_id
			HAVING MAX(updated_at) < $1
		)
	`
	tag, err := q.Exec(ctx, query, time.Now().Add(-olderThan).UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

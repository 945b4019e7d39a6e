package session

import (
	"context"
	"time"
)

// Store is a key-value store scoped per session. Get returns ErrKeyNotFound
// for keys that were never set or have been cleared.
type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	// SetMany writes all values or none.
	SetMany(ctx context.Context, sessionID string, values map[string][]byte) error
	Delete(ctx context.Context, sessionID, key string) error
	Clear(ctx context.Context, sessionID string) error
	// Touch restarts the retention clock of a session without writing values.
	// Touching an unknown session is a no-op.
	Touch(ctx context.Context, sessionID string) error
}

// Purger is implemented by stores that do not expire sessions on their own.
type Purger interface {
	PurgeStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

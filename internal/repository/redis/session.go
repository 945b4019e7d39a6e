package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "absensi:session:"

// SessionStore keeps one hash per session. Every write pushes the expiry
// back, so idle sessions vanish without a purge job.
type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(client *goredis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *SessionStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	value, err := s.client.HGet(ctx, sessionKey(sessionID), key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, session.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session value %q: %w", key, err)
	}
	return value, nil
}

func (s *SessionStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	return s.SetMany(ctx, sessionID, map[string][]byte{key: value})
}

func (s *SessionStore) SetMany(ctx context.Context, sessionID string, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	fields := make([]any, 0, len(values)*2)
	for k, v := range values {
		fields = append(fields, k, v)
	}

	hash := sessionKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, hash, fields...)
		if s.ttl > 0 {
			pipe.Expire(ctx, hash, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set session values: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.HDel(ctx, sessionKey(sessionID), key).Err(); err != nil {
		return fmt.Errorf("failed to delete session value %q: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Touch(ctx context.Context, sessionID string) error {
	if s.ttl <= 0 {
		return nil
	}
	if err := s.client.Expire(ctx, sessionKey(sessionID), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

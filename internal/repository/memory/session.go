// Package memory holds in-process stores for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
)

type entry struct {
	values    map[string][]byte
	updatedAt time.Time
}

// SessionStore is a session.Store that lives as long as the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

var (
	_ session.Store  = (*SessionStore)(nil)
	_ session.Purger = (*SessionStore)(nil)
)

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

func (s *SessionStore) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, session.ErrKeyNotFound
	}
	value, ok := e.values[key]
	if !ok {
		return nil, session.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *SessionStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	return s.SetMany(ctx, sessionID, map[string][]byte{key: value})
}

func (s *SessionStore) SetMany(_ context.Context, sessionID string, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{values: make(map[string][]byte)}
		s.sessions[sessionID] = e
	}
	for k, v := range values {
		e.values[k] = append([]byte(nil), v...)
	}
	e.updatedAt = s.now()
	return nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[sessionID]; ok {
		delete(e.values, key)
	}
	return nil
}

func (s *SessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *SessionStore) Touch(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[sessionID]; ok {
		e.updatedAt = s.now()
	}
	return nil
}

func (s *SessionStore) PurgeStale(_ context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-olderThan)
	var purged int64
	for id, e := range s.sessions {
		if e.updatedAt.Before(cutoff) {
			purged += int64(len(e.values))
			delete(s.sessions, id)
		}
	}
	return purged, nil
}

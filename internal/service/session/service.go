package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
)

type SessionServiceImpl struct {
	store session.Store
}

func NewSessionService(store session.Store) session.SessionService {
	return &SessionServiceImpl{store: store}
}

// Load implements session.SessionService.
func (s *SessionServiceImpl) Load(ctx context.Context, sessionID string) (*session.Session, error) {
	sess := &session.Session{ID: sessionID, TypeFilter: attendance.FilterAll}

	var identity user.Identity
	found, err := s.get(ctx, sessionID, session.KeyIdentity, &identity)
	if err != nil {
		return nil, err
	}
	if found {
		sess.Identity = &identity
		// reads keep a logged-in session alive as much as writes do
		if err := s.store.Touch(ctx, sessionID); err != nil {
			slog.Warn("Failed to touch session", "session_id", sessionID, "error", err)
		}
	}

	if _, err := s.get(ctx, sessionID, session.KeyRecords, &sess.Records); err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, sessionID, session.KeyTypeFilter, &sess.TypeFilter); err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, sessionID, session.KeyDateFilter, &sess.DateFilter); err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, sessionID, session.KeyBackendURL, &sess.BackendURL); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetIdentity implements session.SessionService.
func (s *SessionServiceImpl) SetIdentity(ctx context.Context, sessionID string, identity user.Identity) error {
	return s.set(ctx, sessionID, map[string]any{session.KeyIdentity: identity})
}

// SetRecords implements session.SessionService.
func (s *SessionServiceImpl) SetRecords(ctx context.Context, sessionID string, records []attendance.Record) error {
	if records == nil {
		records = []attendance.Record{}
	}
	return s.set(ctx, sessionID, map[string]any{session.KeyRecords: records})
}

// SetFilters implements session.SessionService.
func (s *SessionServiceImpl) SetFilters(ctx context.Context, sessionID, typeFilter, dateFilter string) error {
	if typeFilter == "" {
		typeFilter = attendance.FilterAll
	}
	return s.set(ctx, sessionID, map[string]any{
		session.KeyTypeFilter: typeFilter,
		session.KeyDateFilter: dateFilter,
	})
}

// SetBackendURL implements session.SessionService. An empty url removes the
// override.
func (s *SessionServiceImpl) SetBackendURL(ctx context.Context, sessionID, url string) error {
	if url == "" {
		if err := s.store.Delete(ctx, sessionID, session.KeyBackendURL); err != nil {
			return fmt.Errorf("failed to reset backend url: %w", err)
		}
		return nil
	}
	return s.set(ctx, sessionID, map[string]any{session.KeyBackendURL: url})
}

// Clear implements session.SessionService.
func (s *SessionServiceImpl) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SessionServiceImpl) get(ctx context.Context, sessionID, key string, dst any) (bool, error) {
	raw, err := s.store.Get(ctx, sessionID, key)
	if errors.Is(err, session.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode session value %q: %w", key, err)
	}
	return true, nil
}

func (s *SessionServiceImpl) set(ctx context.Context, sessionID string, values map[string]any) error {
	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode session value %q: %w", key, err)
		}
		encoded[key] = raw
	}
	return s.store.SetMany(ctx, sessionID, encoded)
}

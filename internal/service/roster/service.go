package roster

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
)

// RosterServiceImpl caches the roster of the default backend. Session
// overrides pointing elsewhere are looked up without caching.
type RosterServiceImpl struct {
	directory  user.Directory
	defaultURL string

	mu     sync.RWMutex
	users  []user.Identity
	loaded bool

	// serializes refreshes so a burst of logins triggers one fetch
	refreshMu sync.Mutex
}

func NewRosterService(directory user.Directory, defaultURL string) *RosterServiceImpl {
	return &RosterServiceImpl{directory: directory, defaultURL: defaultURL}
}

var _ user.RosterService = (*RosterServiceImpl)(nil)

// Refresh implements user.RosterService.
func (s *RosterServiceImpl) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	return s.refresh(ctx)
}

func (s *RosterServiceImpl) refresh(ctx context.Context) error {
	users, err := s.directory.ListUsers(ctx, s.defaultURL)
	if err != nil {
		slog.Error("Failed to refresh roster, keeping previous roster", "error", err)
		return fmt.Errorf("%w: %w", user.ErrRosterUnavailable, err)
	}

	s.mu.Lock()
	s.users = users
	s.loaded = true
	s.mu.Unlock()

	slog.Info("Roster refreshed", "users", len(users))
	return nil
}

// Lookup implements user.RosterService.
func (s *RosterServiceImpl) Lookup(ctx context.Context, baseURL, email string) (user.Identity, error) {
	roster, err := s.roster(ctx, baseURL)
	if err != nil {
		return user.Identity{}, err
	}

	if identity, ok := user.Find(roster, email); ok {
		return identity, nil
	}
	if len(roster) == 0 {
		slog.Warn("Roster is empty, using fallback identity", "email", email)
		return user.FallbackIdentity(email), nil
	}
	return user.Identity{}, user.ErrEmailNotRegistered
}

func (s *RosterServiceImpl) roster(ctx context.Context, baseURL string) ([]user.Identity, error) {
	if baseURL != "" && baseURL != s.defaultURL {
		users, err := s.directory.ListUsers(ctx, baseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", user.ErrRosterUnavailable, err)
		}
		return users, nil
	}

	if users, ok := s.cached(); ok {
		return users, nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	// another caller may have loaded it while we waited
	if users, ok := s.cached(); ok {
		return users, nil
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	users, _ := s.cached()
	return users, nil
}

func (s *RosterServiceImpl) cached() ([]user.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users, s.loaded
}

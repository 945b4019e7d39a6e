package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
)

// RevocationPurger drops revoked tokens that have expired on their own.
type RevocationPurger interface {
	PurgeRevoked() int
}

// MaintenanceJobs keeps the roster warm and the session store bounded.
type MaintenanceJobs struct {
	roster           user.RosterService
	sessions         session.Purger
	tokens           RevocationPurger
	rosterInterval   time.Duration
	sessionRetention time.Duration
}

func NewMaintenanceJobs(roster user.RosterService, sessions session.Purger, tokens RevocationPurger, rosterInterval, sessionRetention time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		roster:           roster,
		sessions:         sessions,
		tokens:           tokens,
		rosterInterval:   rosterInterval,
		sessionRetention: sessionRetention,
	}
}

// RegisterJobs registers every maintenance job whose dependency is present.
func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	if j.roster != nil {
		scheduler.AddJob(Job{
			Name:     "refresh_roster",
			Interval: j.rosterInterval,
			Timeout:  time.Minute,
			Fn:       j.RefreshRoster,
		})
	}

	if j.sessions != nil && j.sessionRetention > 0 {
		scheduler.AddJob(Job{
			Name:     "purge_stale_sessions",
			Interval: time.Hour,
			Timeout:  time.Minute,
			Fn:       j.PurgeStaleSessions,
		})
	}

	if j.tokens != nil {
		scheduler.AddJob(Job{
			Name:     "purge_revoked_tokens",
			Interval: 30 * time.Minute,
			Fn:       j.PurgeRevokedTokens,
		})
	}
}

// RefreshRoster reloads the registered users from the default backend.
func (j *MaintenanceJobs) RefreshRoster(ctx context.Context) error {
	return j.roster.Refresh(ctx)
}

// PurgeStaleSessions removes sessions untouched for longer than the retention window.
func (j *MaintenanceJobs) PurgeStaleSessions(ctx context.Context) error {
	n, err := j.sessions.PurgeStale(ctx, j.sessionRetention)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Purged stale sessions", "count", n, "retention", j.sessionRetention)
	}
	return nil
}

func (j *MaintenanceJobs) PurgeRevokedTokens(ctx context.Context) error {
	if n := j.tokens.PurgeRevoked(); n > 0 {
		slog.Debug("Purged expired token revocations", "count", n)
	}
	return nil
}

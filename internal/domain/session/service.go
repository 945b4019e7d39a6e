package session

import (
	"context"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
)

type SessionService interface {
	// Load assembles the session from the store. Missing values take their
	// defaults; a session without an identity is returned as is.
	Load(ctx context.Context, sessionID string) (*Session, error)
	SetIdentity(ctx context.Context, sessionID string, identity user.Identity) error
	SetRecords(ctx context.Context, sessionID string, records []attendance.Record) error
	SetFilters(ctx context.Context, sessionID, typeFilter, dateFilter string) error
	SetBackendURL(ctx context.Context, sessionID, url string) error
	Clear(ctx context.Context, sessionID string) error
}

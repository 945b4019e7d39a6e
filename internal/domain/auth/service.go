package auth

import (
	"context"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// LoginWithGoogle signs in a Google-verified email against the roster.
	LoginWithGoogle(ctx context.Context, email string) (LoginResponse, error)
	Logout(ctx context.Context, sessionID string, token string, expiresAt int64) error
	Me(ctx context.Context, sessionID string) (user.ProfileResponse, error)
	UpdateBackendURL(ctx context.Context, sessionID string, req session.SetBackendURLRequest) (session.BackendURLResponse, error)
}

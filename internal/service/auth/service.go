package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

const (
	msgBackendURLSaved   = "URL Google Apps Script disimpan."
	msgBackendURLReset   = "URL Google Apps Script dikembalikan ke bawaan."
	msgBackendURLInvalid = "Format URL tidak valid. Mulai dengan http:// atau https://"
)

type AuthServiceImpl struct {
	roster     user.RosterService
	sessions   session.SessionService
	attendance attendance.AttendanceService
	notices    notice.NoticeService
	jwt.Service
	defaultBackendURL string
}

func NewAuthService(roster user.RosterService, sessions session.SessionService, attendanceService attendance.AttendanceService, notices notice.NoticeService, jwtService jwt.Service, defaultBackendURL string) auth.AuthService {
	return &AuthServiceImpl{
		roster:            roster,
		sessions:          sessions,
		attendance:        attendanceService,
		notices:           notices,
		Service:           jwtService,
		defaultBackendURL: defaultBackendURL,
	}
}

// Greeting is the banner shown right after a successful login.
func Greeting(identity user.Identity) string {
	return "Login berhasil! Selamat datang, " + identity.DisplayName()
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	identity, err := a.roster.Lookup(ctx, req.BackendURL, req.Email)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return a.startSession(ctx, identity, req.BackendURL)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string) (auth.LoginResponse, error) {
	return a.Login(ctx, auth.LoginRequest{Email: email})
}

// startSession creates a fresh session for identity, loads its history and
// issues the access token.
func (a *AuthServiceImpl) startSession(ctx context.Context, identity user.Identity, backendURL string) (auth.LoginResponse, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate session id: %w", err)
	}
	sessionID := id.String()

	if backendURL != "" {
		if err := a.sessions.SetBackendURL(ctx, sessionID, backendURL); err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to store backend url: %w", err)
		}
	}
	if err := a.sessions.SetIdentity(ctx, sessionID, identity); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store identity: %w", err)
	}

	greeting := Greeting(identity)
	a.notices.Success(sessionID, greeting)

	var resp auth.LoginResponse

	// A failed history load does not block the login. Its error banner
	// replaces the greeting and the user can refresh later.
	records, err := a.attendance.Refresh(ctx, sessionID)
	if err != nil {
		slog.Warn("Initial history fetch failed", "session_id", sessionID, "error", err)
	} else {
		resp.HistoryLoaded = true
		resp.RecordCount = len(records)
	}

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(sessionID, identity.Email)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	resp.User = user.NewProfileResponse(identity)
	resp.Greeting = greeting

	slog.Info("User logged in", "session_id", sessionID, "email", identity.Email, "history_loaded", resp.HistoryLoaded)
	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID string, token string, expiresAt int64) error {
	if err := a.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	a.notices.Clear(sessionID)
	if token != "" {
		a.Service.RevokeToken(token, expiresAt)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, sessionID string) (user.ProfileResponse, error) {
	sess, err := a.sessions.Load(ctx, sessionID)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !sess.LoggedIn() {
		return user.ProfileResponse{}, auth.ErrSessionRequired
	}
	return user.NewProfileResponse(*sess.Identity), nil
}

// UpdateBackendURL implements auth.AuthService.
func (a *AuthServiceImpl) UpdateBackendURL(ctx context.Context, sessionID string, req session.SetBackendURLRequest) (session.BackendURLResponse, error) {
	if err := req.Validate(); err != nil {
		a.notices.Error(sessionID, msgBackendURLInvalid)
		return session.BackendURLResponse{}, err
	}

	if err := a.sessions.SetBackendURL(ctx, sessionID, req.URL); err != nil {
		return session.BackendURLResponse{}, fmt.Errorf("failed to store backend url: %w", err)
	}

	if req.URL == "" {
		a.notices.Success(sessionID, msgBackendURLReset)
		return session.BackendURLResponse{URL: a.defaultBackendURL}, nil
	}
	a.notices.Success(sessionID, msgBackendURLSaved)
	return session.BackendURLResponse{URL: req.URL, Overridden: true}, nil
}

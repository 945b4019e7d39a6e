package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/absensi-backend-go/internal/repository/memory"
	noticesvc "github.com/cmlabs-hris/absensi-backend-go/internal/service/notice"
	"github.com/cmlabs-hris/absensi-backend-go/internal/service/roster"
	sessionsvc "github.com/cmlabs-hris/absensi-backend-go/internal/service/session"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-for-jwt"
	defaultURL = "https://default.example.com/exec"
)

type fakeDirectory struct {
	users map[string][]user.Identity
	err   error
}

func (f *fakeDirectory) ListUsers(_ context.Context, baseURL string) ([]user.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[baseURL], nil
}

// fakeAttendance only answers Refresh; login needs nothing else.
type fakeAttendance struct {
	attendance.AttendanceService
	records  []attendance.Record
	err      error
	sessions []string
}

func (f *fakeAttendance) Refresh(_ context.Context, sessionID string) ([]attendance.Record, error) {
	f.sessions = append(f.sessions, sessionID)
	return f.records, f.err
}

type fixture struct {
	svc        auth.AuthService
	jwt        *jwt.JWTService
	sessions   session.SessionService
	notices    notice.NoticeService
	attendance *fakeAttendance
}

func newFixture(t *testing.T, dir *fakeDirectory) fixture {
	t.Helper()
	sessions := sessionsvc.NewSessionService(memory.NewSessionStore())
	notices := noticesvc.NewNoticeService(sse.NewHub(4), noticesvc.Config{TTL: time.Minute})
	t.Cleanup(notices.Stop)
	jwtService := jwt.NewJWTService(testSecret, "1h")
	att := &fakeAttendance{records: []attendance.Record{{}, {}}}

	svc := NewAuthService(roster.NewRosterService(dir, defaultURL), sessions, att, notices, jwtService, defaultURL)
	return fixture{svc: svc, jwt: jwtService, sessions: sessions, notices: notices, attendance: att}
}

func registered() *fakeDirectory {
	return &fakeDirectory{users: map[string][]user.Identity{
		defaultURL:                      {{Name: "Budi Santoso", Email: "budi@example.com", Site: "Jakarta"}},
		"https://other.example.com/exec": {{Name: "Ani", Email: "ani@example.com"}},
	}}
}

func sessionOf(t *testing.T, f fixture, token string) string {
	t.Helper()
	decoded, err := jwtauth.VerifyToken(f.jwt.JWTAuth(), token)
	require.NoError(t, err)
	sessionID, err := jwt.SessionIDFrom(decoded.PrivateClaims())
	require.NoError(t, err)
	return sessionID
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t, registered())
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "  budi@example.com "})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Budi Santoso", resp.User.Name)
	assert.Equal(t, "B", resp.User.Initial)
	assert.Equal(t, "Login berhasil! Selamat datang, Budi Santoso", resp.Greeting)
	assert.True(t, resp.HistoryLoaded)
	assert.Equal(t, 2, resp.RecordCount)

	sessionID := sessionOf(t, f, resp.AccessToken)
	assert.True(t, validator.IsValidUUID(sessionID))
	assert.Equal(t, []string{sessionID}, f.attendance.sessions)

	sess, err := f.sessions.Load(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, sess.LoggedIn())
	assert.Equal(t, "budi@example.com", sess.Identity.Email)
	assert.Empty(t, sess.BackendURL)

	current, ok := f.notices.Current(sessionID)
	require.True(t, ok)
	assert.Equal(t, notice.KindSuccess, current.Kind)
}

func TestLogin_WithBackendOverride(t *testing.T) {
	f := newFixture(t, registered())
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "ani@example.com", BackendURL: "https://other.example.com/exec"})
	require.NoError(t, err)

	sess, err := f.sessions.Load(ctx, sessionOf(t, f, resp.AccessToken))
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/exec", sess.BackendURL)
}

func TestLogin_HistoryFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t, registered())
	f.attendance.err = errors.New("backend down")

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "budi@example.com"})
	require.NoError(t, err)
	assert.False(t, resp.HistoryLoaded)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name string
		dir  *fakeDirectory
		req  auth.LoginRequest
		want error
	}{
		{"unknown email", registered(), auth.LoginRequest{Email: "siti@example.com"}, user.ErrEmailNotRegistered},
		{"roster unavailable", &fakeDirectory{err: errors.New("timeout")}, auth.LoginRequest{Email: "budi@example.com"}, user.ErrRosterUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.dir)

			_, err := f.svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.attendance.sessions)
		})
	}
}

func TestLogin_ValidationError(t *testing.T) {
	f := newFixture(t, registered())

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email", BackendURL: "ftp://x"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestLogin_EmptyRosterFallsBack(t *testing.T) {
	f := newFixture(t, &fakeDirectory{users: map[string][]user.Identity{}})

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "guest@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "guest", resp.User.Name)
	assert.Equal(t, "-", resp.User.Site)
}

func TestLoginWithGoogle(t *testing.T) {
	f := newFixture(t, registered())

	resp, err := f.svc.LoginWithGoogle(context.Background(), "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", resp.User.Email)
}

func TestLogout_ClearsSessionAndRevokes(t *testing.T) {
	f := newFixture(t, registered())
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "budi@example.com"})
	require.NoError(t, err)
	sessionID := sessionOf(t, f, resp.AccessToken)

	require.NoError(t, f.svc.Logout(ctx, sessionID, resp.AccessToken, resp.AccessTokenExpiresIn))

	assert.True(t, f.jwt.IsTokenRevoked(resp.AccessToken))
	_, err = f.svc.Me(ctx, sessionID)
	assert.ErrorIs(t, err, auth.ErrSessionRequired)
	_, ok := f.notices.Current(sessionID)
	assert.False(t, ok)
}

func TestMe(t *testing.T) {
	f := newFixture(t, registered())
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "budi@example.com"})
	require.NoError(t, err)

	profile, err := f.svc.Me(ctx, sessionOf(t, f, resp.AccessToken))
	require.NoError(t, err)
	assert.Equal(t, "Jakarta", profile.Site)
	assert.Equal(t, "-", profile.Address)
}

func TestUpdateBackendURL(t *testing.T) {
	f := newFixture(t, registered())
	ctx := context.Background()

	resp, err := f.svc.UpdateBackendURL(ctx, "s1", session.SetBackendURLRequest{URL: " https://other.example.com/exec "})
	require.NoError(t, err)
	assert.Equal(t, session.BackendURLResponse{URL: "https://other.example.com/exec", Overridden: true}, resp)

	current, ok := f.notices.Current("s1")
	require.True(t, ok)
	assert.Equal(t, msgBackendURLSaved, current.Message)

	resp, err = f.svc.UpdateBackendURL(ctx, "s1", session.SetBackendURLRequest{URL: ""})
	require.NoError(t, err)
	assert.Equal(t, session.BackendURLResponse{URL: defaultURL}, resp)

	_, err = f.svc.UpdateBackendURL(ctx, "s1", session.SetBackendURLRequest{URL: "script.google.com"})
	assert.Error(t, err)
	current, _ = f.notices.Current("s1")
	assert.Equal(t, notice.KindError, current.Kind)
}

package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService("secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("sess-1", "budi@example.com")
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims := decoded.PrivateClaims()
	sessionID, err := SessionIDFrom(claims)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)
	assert.Equal(t, "budi@example.com", claims[ClaimEmail])
	assert.Equal(t, TokenTypeAccess, claims[ClaimType])
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("secret", "forever")

	_, _, err := svc.GenerateAccessToken("sess-1", "budi@example.com")
	assert.Error(t, err)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "1h")

	token, expiresIn, err := svc.GenerateSSEToken("sess-2")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	sessionID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-2", sessionID)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	access, _, err := svc.GenerateAccessToken("sess-1", "budi@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateSSEToken_RejectsForeignSignature(t *testing.T) {
	other := NewJWTService("other-secret", "1h")
	token, _, err := other.GenerateSSEToken("sess-1")
	require.NoError(t, err)

	_, err = NewJWTService("secret", "1h").ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestRevocation(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("expired", now.Add(-time.Minute).Unix())
	svc.RevokeToken("live", now.Add(time.Hour).Unix())

	assert.True(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
	assert.False(t, svc.IsTokenRevoked("never"))

	assert.Equal(t, 1, svc.PurgeRevoked())
	assert.False(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
}

func TestSessionIDFrom_Missing(t *testing.T) {
	_, err := SessionIDFrom(map[string]interface{}{})
	assert.ErrorIs(t, err, ErrMissingSession)

	_, err = SessionIDFrom(map[string]interface{}{ClaimSessionID: 42})
	assert.ErrorIs(t, err, ErrMissingSession)
}

package jwt

import (
	"errors"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim names carried in every token
const (
	ClaimSessionID = "session_id"
	ClaimEmail     = "email"
	ClaimType      = "type"

	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"
)

// SSETokenTTL bounds the lifetime of EventSource tokens.
const SSETokenTTL = 5 * time.Minute

var ErrWrongTokenType = errors.New("token has the wrong type")
var ErrMissingSession = errors.New("token carries no session")

type Service interface {
	GenerateAccessToken(sessionID string, email string) (token string, expiresAt int64, err error)
	GenerateSSEToken(sessionID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (sessionID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
	PurgeRevoked() int
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	// token -> expiry; entries are useless once the token expires
	revokedTokens map[string]int64
	mu            sync.RWMutex
	now           func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) *JWTService {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(sessionID string, email string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimSessionID: sessionID,
		ClaimEmail:     email,
		ClaimType:      TokenTypeAccess,
		"exp":          expiresAt,
	})
	return tokenString, expiresAt, err
}

// RevokeToken blocks a token until its own expiry passes.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PurgeRevoked drops revocations for tokens that have expired anyway.
func (j *JWTService) PurgeRevoked() int {
	now := j.now().Unix()
	j.mu.Lock()
	defer j.mu.Unlock()

	purged := 0
	for token, exp := range j.revokedTokens {
		if exp <= now {
			delete(j.revokedTokens, token)
			purged++
		}
	}
	return purged
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(sessionID string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(SSETokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimSessionID: sessionID,
		ClaimType:      TokenTypeSSE,
		"exp":          expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(SSETokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the session ID
func (j *JWTService) ValidateSSEToken(tokenString string) (sessionID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	if tokenType, ok := token.Get(ClaimType); !ok || tokenType != TokenTypeSSE {
		return "", ErrWrongTokenType
	}

	return SessionIDFrom(token.PrivateClaims())
}

// SessionIDFrom reads the session claim out of decoded claims.
func SessionIDFrom(claims map[string]interface{}) (string, error) {
	val, ok := claims[ClaimSessionID]
	if !ok {
		return "", ErrMissingSession
	}
	sessionID, ok := val.(string)
	if !ok || sessionID == "" {
		return "", ErrMissingSession
	}
	return sessionID, nil
}

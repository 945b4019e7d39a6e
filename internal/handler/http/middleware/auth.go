package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/absensi-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type ctxKey int

const (
	sessionIDKey ctxKey = iota
	accessTokenKey
)

// AccessToken is the raw bearer token of the request and its expiry.
type AccessToken struct {
	Raw       string
	ExpiresAt int64
}

// RevocationChecker reports whether a token was revoked by logout.
type RevocationChecker interface {
	IsTokenRevoked(token string) bool
}

// AuthRequired admits requests carrying a verified, unrevoked access token
// and stores its session id in the request context. It must run after
// jwtauth.Verifier.
func AuthRequired(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sessionID, err := jwt.SessionIDFrom(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if revocations.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			ctx = context.WithValue(ctx, accessTokenKey, AccessToken{Raw: raw, ExpiresAt: token.Expiration().Unix()})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// SessionID returns the session id stored by AuthRequired.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// Token returns the access token stored by AuthRequired.
func Token(ctx context.Context) (AccessToken, bool) {
	t, ok := ctx.Value(accessTokenKey).(AccessToken)
	return t, ok
}

// WithSession returns a context carrying sessionID, as AuthRequired would.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

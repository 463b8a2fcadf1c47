// Package middleware provides HTTP middlewares for authentication, logging,
// metrics, CORS and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/models"
)

type ctxKey string

const (
	claimsKey      ctxKey = "claims"
	requestInfoKey ctxKey = "request_info"
)

// Messages returned by BearerAuth.
const (
	MsgNoToken      = "Access denied. No token provided."
	MsgInvalidToken = "Invalid token"
)

// TokenVerifier checks an access token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*models.Claims, error)
}

// BearerAuth requires a valid "Authorization: Bearer <token>" header.
//
// A missing header, a header without the Bearer scheme or an empty token is
// rejected with 401 and MsgNoToken; a token that fails verification is
// rejected with 401 and MsgInvalidToken. On success the verified claims are
// stored in the request context, see ClaimsFromContext.
func BearerAuth(verifier TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				WriteError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Debug("token rejected", zap.String("path", r.URL.Path), zap.Error(err))
				WriteError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			if info := requestInfoFromContext(r.Context()); info != nil {
				info.userID = claims.ID
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// ClaimsFromContext returns the claims stored by BearerAuth, or nil when the
// request did not pass through it.
func ClaimsFromContext(ctx context.Context) *models.Claims {
	claims, _ := ctx.Value(claimsKey).(*models.Claims)
	return claims
}

// ContextWithClaims stores claims the way BearerAuth does. Useful in tests.
func ContextWithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/careerai/careerai-go/internal/crypto"
	"github.com/careerai/careerai-go/internal/model"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// JWTAuth returns middleware that validates a Bearer access token from the
// Authorization header and attaches its claims to the request context.
func JWTAuth(tokens *crypto.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeEnvelopeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeEnvelopeError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := tokens.VerifyAccessToken(token)
			if err != nil {
				writeEnvelopeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the authenticated claims from the context.
func ClaimsFromContext(ctx context.Context) (*crypto.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*crypto.Claims)
	return claims, ok
}

func writeEnvelopeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.Fail(msg))
}

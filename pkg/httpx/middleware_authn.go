package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/matchday/pkg/jwtx"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

// ClaimsCheck runs after signature and expiry validation. A non-nil error
// rejects the request with 401.
type ClaimsCheck func(ctx context.Context, c jwtx.Claims) error

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}

func AuthnMiddleware(v jwtx.Verifier, checks ...ClaimsCheck) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				WriteBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if errors.Is(err, jwtx.ErrExpired) {
				WriteBearerError(w, "token expired")
				return
			}
			if err != nil {
				WriteBearerError(w, "token verification failed")
				log.Warn("jwt verify failed", "err", err)
				return
			}

			for _, check := range checks {
				if err := check(ctx, claims); err != nil {
					WriteBearerError(w, "token rejected")
					log.Info("jwt rejected", "sub", claims.Subject, "err", err)
					return
				}
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteBearerError writes an RFC 6750 challenge alongside the JSON message body
// the session client expects.
func WriteBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteMessage(w, http.StatusUnauthorized, "Invalid or expired token")
}

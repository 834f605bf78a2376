// Package auth guards the catalog's mutating endpoints with HS256 JWT bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"magazine-catalog/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUser ctxKey = "user"

// Authenticator validates bearer tokens signed with a shared secret.
// With an empty secret, authentication is disabled and every request passes.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// NewAuthenticator creates an Authenticator. An empty secret disables checks
// and logs a warning so the misconfiguration is visible at startup.
func NewAuthenticator(secret string, logger *slog.Logger) *Authenticator {
	if secret == "" && logger != nil {
		logger.Warn("JWT_SECRET is empty; write endpoints are unauthenticated")
	}
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

// Enabled reports whether tokens are checked.
func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// RequireWriter requires a valid token with the admin or writer role for
// POST, PUT, PATCH and DELETE. Safe methods pass without a token.
func (a *Authenticator) RequireWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() || isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		user, role, err := a.validate(r.Header.Get("Authorization"))
		if err != nil {
			authDecisionsTotal.WithLabelValues("unauthorized").Inc()
			w.Header().Set("WWW-Authenticate", `Bearer realm="catalog"`)
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}
		if !canWrite(role) {
			authDecisionsTotal.WithLabelValues("forbidden").Inc()
			forbiddenAttempts.WithLabelValues(role, r.Method).Inc()
			respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
			return
		}

		authDecisionsTotal.WithLabelValues("allowed").Inc()
		ctx := context.WithValue(r.Context(), ctxUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated subject, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(ctxUser).(string)
	return user, ok
}

func (a *Authenticator) validate(authz string) (string, string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", "", errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("invalid sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", "", errors.New("invalid role claim")
	}
	return sub, role, nil
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/accounts-be/internal/models"
)

// Resolver looks up the user owning a session token. The boolean is false
// when no user holds the token; a non-nil error means the directory itself
// failed.
type Resolver interface {
	GetBySessionToken(token string) (models.User, bool, error)
}

// SessionMiddleware creates a middleware for protecting routes. It extracts
// the session token (Authorization header first, then the named cookie),
// resolves it against the user directory, and attaches the resolved user to
// the request context. Missing, malformed, and unknown tokens are all
// rejected the same way so the response leaks nothing about which case hit.
func SessionMiddleware(resolver Resolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cookieName)
			if token == "" {
				http.Error(w, "Invalid or missing session", http.StatusUnauthorized)
				return
			}

			user, found, err := resolver.GetBySessionToken(token)
			if err != nil {
				log.Error().Err(err).Msg("Session lookup failed")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if !found {
				http.Error(w, "Invalid or missing session", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireOwner creates a middleware that only lets the authenticated user
// through when the {id} route parameter is their own id. Comparison is by
// stable identifier, never by display name.
func RequireOwner() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Invalid or missing session", http.StatusUnauthorized)
				return
			}
			if chi.URLParam(r, "id") != user.ID {
				log.Warn().Str("user_id", user.ID).Str("target_id", chi.URLParam(r, "id")).Msg("Ownership check failed")
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken pulls the session token from the Authorization header or,
// failing that, from the session cookie.
func extractToken(r *http.Request, cookieName string) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, "Bearer ")
		if len(parts) == 2 {
			return strings.TrimSpace(parts[1])
		}
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

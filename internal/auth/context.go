package auth

import (
	"context"

	"github.com/isdelr/accounts-be/internal/models"
)

type contextKey string

// userKey is the context key under which the session middleware stores the
// resolved user.
const userKey = contextKey("authenticatedUser")

// WithUser returns a context carrying the resolved user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the user attached by the session middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
